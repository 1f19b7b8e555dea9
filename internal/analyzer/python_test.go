//go:build cgo

package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestPythonAnalyzeBranches(t *testing.T) {
	source := []byte(`def load(path):
    if not path:
        return None
    for line in path:
        handle(line)
`)

	m := NewPythonAnalyzer().Analyze(source, "load.py")

	if m.CyclomaticComplexity != 2 {
		t.Errorf("CyclomaticComplexity = %d, want 2", m.CyclomaticComplexity)
	}
	if m.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", m.FunctionCount)
	}
	if m.NestingDepth != 1 {
		t.Errorf("NestingDepth = %d, want 1 (siblings do not nest)", m.NestingDepth)
	}
	if m.TotalScore != 3 {
		t.Errorf("TotalScore = %d, want 3", m.TotalScore)
	}
}

func TestPythonAnalyzeNesting(t *testing.T) {
	source := []byte(`def scan(rows):
    for row in rows:
        if row.ok:
            while row.next():
                row.step()
`)

	m := NewPythonAnalyzer().Analyze(source, "scan.py")

	if m.NestingDepth != 3 {
		t.Errorf("NestingDepth = %d, want 3", m.NestingDepth)
	}
	if m.CyclomaticComplexity != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", m.CyclomaticComplexity)
	}
}

func TestPythonComprehensionsCountAsControlOnly(t *testing.T) {
	source := []byte(`def squares(xs):
    return [x * x for x in xs]
`)

	m := NewPythonAnalyzer().Analyze(source, "squares.py")

	if m.ControlStructures != 1 {
		t.Errorf("ControlStructures = %d, want 1", m.ControlStructures)
	}
	if m.CyclomaticComplexity != 0 {
		t.Errorf("CyclomaticComplexity = %d, want 0 (comprehensions are not branches)", m.CyclomaticComplexity)
	}
	if m.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", m.TotalScore)
	}
}

func TestPythonFunctionLengthPenalty(t *testing.T) {
	tests := []struct {
		name      string
		bodyLines int
		want      int
	}{
		{"short", 5, 0},
		{"over 20", 30, 1},
		{"over 50", 60, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			b.WriteString("def f():\n")
			for i := 0; i < tt.bodyLines; i++ {
				b.WriteString("    x = 1\n")
			}

			m := NewPythonAnalyzer().Analyze([]byte(b.String()), "f.py")
			if m.FunctionLengthPenalty != tt.want {
				t.Errorf("FunctionLengthPenalty = %d, want %d", m.FunctionLengthPenalty, tt.want)
			}
		})
	}
}

func TestPythonParseFailureFallsBackToHeuristic(t *testing.T) {
	source := []byte("def broken(:\n    if x:\n        pass\n")

	a := NewPythonAnalyzer()
	if _, err := a.analyzeTree(source); err == nil {
		t.Fatal("analyzeTree should fail on malformed source")
	}

	got := a.Analyze(source, "broken.py")
	want := heuristicScan(source, pythonHeuristic)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback metrics = %+v, want heuristic metrics %+v", got, want)
	}
}

func TestPythonMatches(t *testing.T) {
	a := NewPythonAnalyzer()
	if !a.Matches(".py") || !a.Matches(".pyw") {
		t.Error("python analyzer must match .py and .pyw")
	}
	if a.Matches(".js") {
		t.Error("python analyzer must not match .js")
	}
}
