package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestHeuristicScanPython(t *testing.T) {
	source := []byte(`def handler(request):
    if request.method == "POST":
        for item in request.items:
            while item.pending:
                process(item)
    return ok()
`)

	m := heuristicScan(source, pythonHeuristic)

	if m.ControlStructures != 3 {
		t.Errorf("ControlStructures = %d, want 3", m.ControlStructures)
	}
	if m.CyclomaticComplexity != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", m.CyclomaticComplexity)
	}
	if m.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", m.FunctionCount)
	}
	// process(item) sits at indent 16, four levels deep.
	if m.NestingDepth != 4 {
		t.Errorf("NestingDepth = %d, want 4", m.NestingDepth)
	}
	if m.TotalScore != m.CyclomaticComplexity+m.NestingDepth+m.FunctionLengthPenalty+m.FileSizePenalty {
		t.Errorf("TotalScore = %d, not the sum of its parts", m.TotalScore)
	}
}

func TestHeuristicScanBraces(t *testing.T) {
	source := []byte(`function run(items) {
  if (ready) {
    for (const item of items) {
      emit(item);
    }
  }
}
`)

	m := heuristicScan(source, jsHeuristic)

	if m.CyclomaticComplexity != 2 {
		t.Errorf("CyclomaticComplexity = %d, want 2", m.CyclomaticComplexity)
	}
	if m.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", m.FunctionCount)
	}
	if m.NestingDepth != 3 {
		t.Errorf("NestingDepth = %d, want 3", m.NestingDepth)
	}
}

func TestHeuristicScanUnbalancedBraces(t *testing.T) {
	// A diff hunk can open with closers; depth must not go negative.
	source := []byte("}\n}\nif (x) {\n")

	m := heuristicScan(source, jsHeuristic)

	if m.NestingDepth != 0 {
		t.Errorf("NestingDepth = %d, want 0 for unbalanced snippet", m.NestingDepth)
	}
	if m.CyclomaticComplexity != 1 {
		t.Errorf("CyclomaticComplexity = %d, want 1", m.CyclomaticComplexity)
	}
}

func TestHeuristicScanTabIndent(t *testing.T) {
	source := []byte("def f():\n\tif x:\n\t\treturn 1\n")

	m := heuristicScan(source, pythonHeuristic)

	if m.NestingDepth != 2 {
		t.Errorf("NestingDepth = %d, want 2 (tab counts as 4 columns)", m.NestingDepth)
	}
}

func TestHeuristicScanDeterministic(t *testing.T) {
	source := []byte("def f():\n    if a:\n        g()\n    elif b:\n        h()\n")

	first := heuristicScan(source, pythonHeuristic)
	second := heuristicScan(source, pythonHeuristic)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs: %+v vs %+v", first, second)
	}
}

func TestFileSizePenalty(t *testing.T) {
	tests := []struct {
		name     string
		nonBlank int
		blank    int
		want     int
	}{
		{"empty", 0, 0, 0},
		{"small", 50, 0, 0},
		{"medium", 51, 0, 2},
		{"medium with blanks", 51, 60, 2},
		{"exactly 100", 100, 0, 2},
		{"large", 101, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < tt.nonBlank; i++ {
				b.WriteString("x = 1\n")
			}
			for i := 0; i < tt.blank; i++ {
				b.WriteString("\n")
			}

			if got := fileSizePenalty([]byte(b.String())); got != tt.want {
				t.Errorf("fileSizePenalty = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestForPathDispatch(t *testing.T) {
	analyzers := DefaultAnalyzers()

	tests := []struct {
		path string
		want Language
	}{
		{"app/models.py", LangPython},
		{"app/views.PYW", LangPython},
		{"web/index.js", LangJavaScript},
		{"web/app.tsx", LangJavaScript},
		{"config.yaml", LangGeneric},
		{"Makefile", LangGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			a := ForPath(analyzers, tt.path)
			if a == nil {
				t.Fatal("ForPath returned nil")
			}
			if a.Language() != tt.want {
				t.Errorf("language = %s, want %s", a.Language(), tt.want)
			}
		})
	}
}

func TestGenericAnalyzerMatchesEverything(t *testing.T) {
	g := NewGenericAnalyzer()
	for _, ext := range []string{".py", ".go", ".weird", ""} {
		if !g.Matches(ext) {
			t.Errorf("generic analyzer must match %q", ext)
		}
	}
}

func TestAnalyzeEmptySource(t *testing.T) {
	for _, a := range DefaultAnalyzers() {
		m := a.Analyze(nil, "empty.py")
		if m.TotalScore != 0 {
			t.Errorf("%s: TotalScore = %d for empty source, want 0", a.Language(), m.TotalScore)
		}
	}
}
