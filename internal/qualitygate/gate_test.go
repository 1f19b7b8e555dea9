package qualitygate

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"reviewgate/internal/pr"
	"reviewgate/internal/slogutil"
)

func newTestGate(opts ...Option) *Gate {
	return New(slogutil.NewDiscardLogger(), opts...)
}

func analyzeOne(t *testing.T, g *Gate, path, content string) *Result {
	t.Helper()
	return g.AnalyzePR(context.Background(), []pr.ChangedFile{
		{Path: path, Content: content, Language: pr.DetectLanguage(path)},
	})
}

func TestGateCleanFilePasses(t *testing.T) {
	content := `def add(a: int, b: int) -> int:
    """Add two integers."""
    return a + b
`
	result := analyzeOne(t, newTestGate(), "lib/math_util.py", content)

	if !result.Passed {
		t.Errorf("clean file failed the gate: %+v", result)
	}
	if result.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", result.QualityScore)
	}
	if result.QualityPenalty != 0 {
		t.Errorf("QualityPenalty = %d, want 0", result.QualityPenalty)
	}
}

func TestGateBlocksHardcodedSecrets(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"password", `password = "hunter22"`},
		{"api key", `API_KEY = "sk-abcdef123456"`},
		{"secret", `client_secret = "deadbeefcafe"`},
		{"token", `auth_token = "ghp_0123456789"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzeOne(t, newTestGate(), "app/settings.ini", tt.line+"\n")

			if result.Passed {
				t.Fatal("gate passed with a hardcoded credential")
			}
			if len(result.Blocking) != 1 {
				t.Fatalf("Blocking has %d issues, want 1", len(result.Blocking))
			}
			if result.Blocking[0].LineNumber != 1 {
				t.Errorf("LineNumber = %d, want 1", result.Blocking[0].LineNumber)
			}
		})
	}
}

func TestGateBlocksSQLStringFormatting(t *testing.T) {
	tests := []string{
		`cursor.execute(f"SELECT * FROM users WHERE id={uid}")`,
		`db.query("SELECT * FROM t WHERE id=" + uid)`,
		`cursor.execute("DELETE FROM t WHERE id={}".format(uid))`,
	}

	for _, line := range tests {
		result := analyzeOne(t, newTestGate(), "app/db_access.txt", line+"\n")
		if result.Passed {
			t.Errorf("gate passed SQL string formatting: %s", line)
		}
	}
}

func TestGateBlocksUnsafeExec(t *testing.T) {
	result := analyzeOne(t, newTestGate(), "app/runner.txt", "eval(user_input)\n")
	if result.Passed {
		t.Error("gate passed an eval call")
	}
}

func TestGateTodoWarnings(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"bare todo", "# TODO handle the timeout case", 1},
		{"fixme", "# FIXME this leaks connections", 1},
		{"todo with ticket", "# TODO(SHOP-412) handle the timeout case", 0},
		{"todo with issue ref", "# TODO handle the timeout case, see #88", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzeOne(t, newTestGate(), "lib/notes.txt", tt.line+"\n")
			if len(result.Warnings) != tt.want {
				t.Errorf("Warnings = %d, want %d", len(result.Warnings), tt.want)
			}
			if !result.Passed {
				t.Error("TODO markers must not block")
			}
		})
	}
}

func TestGateDebugOutputWarning(t *testing.T) {
	content := "def run():\n    print(state)\n"
	result := analyzeOne(t, newTestGate(), "app/run_helper.txt", content)

	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %d, want 1", len(result.Warnings))
	}
	if result.Warnings[0].Category != "Debug" {
		t.Errorf("Category = %s, want Debug", result.Warnings[0].Category)
	}
}

func TestGateLongFunctionWarning(t *testing.T) {
	var b strings.Builder
	b.WriteString("def process(batch):\n")
	b.WriteString(`    """Process a batch."""` + "\n")
	for i := 0; i < 110; i++ {
		b.WriteString("    step_a(batch)\n")
	}

	result := analyzeOne(t, newTestGate(), "app/pipeline_steps.py", b.String())

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "100 lines") {
			found = true
		}
	}
	if !found {
		t.Errorf("no long-function warning in %+v", result.Warnings)
	}
}

func TestGatePythonAdvisories(t *testing.T) {
	content := "def fetchrows(conn, limit):\n    return conn.all(limit)\n"
	result := analyzeOne(t, newTestGate(), "app/rows.py", content)

	if !result.Passed {
		t.Fatal("advisories must not block")
	}
	if len(result.Advisories) != 2 {
		t.Fatalf("Advisories = %d, want 2 (docstring + type hints): %+v", len(result.Advisories), result.Advisories)
	}
}

func TestGatePythonAdvisoriesSatisfied(t *testing.T) {
	content := `def fetchrows(conn: Connection, limit: int) -> list:
    """Fetch up to limit rows."""
    return conn.all(limit)
`
	result := analyzeOne(t, newTestGate(), "app/rows.py", content)
	if len(result.Advisories) != 0 {
		t.Errorf("Advisories = %+v, want none", result.Advisories)
	}
}

func TestGateSelfReceiverNotUnannotated(t *testing.T) {
	content := `class Repo:
    def close(self) -> None:
        """Close the handle."""
        self.conn.close()
`
	result := analyzeOne(t, newTestGate(), "app/repo.py", content)

	for _, a := range result.Advisories {
		if strings.Contains(a.Message, "type hints") {
			t.Errorf("self-only signature flagged as unannotated: %+v", a)
		}
	}
}

func TestGateSkipsEmptyContent(t *testing.T) {
	g := newTestGate()
	result := g.AnalyzePR(context.Background(), []pr.ChangedFile{
		{Path: "deleted/old.py", Language: "python"},
	})

	if !result.Passed {
		t.Error("empty content must be skipped, not analyzed")
	}
	if result.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", result.QualityScore)
	}
}

func TestGateExtraPatterns(t *testing.T) {
	extra := Pattern{
		Name:     "internal_hostname",
		Category: "Security",
		Level:    LevelBlocking,
		Regex:    regexp.MustCompile(`corp\.internal`),
		Message:  "Internal hostname in source",
	}

	g := newTestGate(WithExtraPatterns([]Pattern{extra}))
	result := analyzeOne(t, g, "app/client_cfg.txt", "host = corp.internal\n")

	if result.Passed {
		t.Error("extra pattern did not block")
	}
}

func TestGateScoreAndPenaltyFormulas(t *testing.T) {
	// One blocking secret and one TODO warning in the same file.
	content := "password = \"hunter22\"\n# TODO rotate this\n"
	result := analyzeOne(t, newTestGate(), "app/creds_cfg.txt", content)

	// 100 - 50*1 - min(5*1, 40) - 0 = 45
	if result.QualityScore != 45 {
		t.Errorf("QualityScore = %d, want 45", result.QualityScore)
	}
	// min(20*1 + 5*1, 40) = 25
	if result.QualityPenalty != 25 {
		t.Errorf("QualityPenalty = %d, want 25", result.QualityPenalty)
	}
}
