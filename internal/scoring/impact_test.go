package scoring

import (
	"strings"
	"testing"

	"reviewgate/internal/pr"
)

func TestImpactPathWeights(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"db/migrations/0042_add_index.sql", 10},
		{"models/schema.py", 10},
		{"billing/payment_processor.py", 9},
		{"api/handlers.py", 8},
		{"auth/security.py", 8},
		{"settings/config.yaml", 6},
		{"tests/test_app.py", 2},
		{"docs/readme.md", 1},
		{"lib/util.py", 0},
	}

	s := NewImpactScorer()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := s.Score([]pr.ChangedFile{{Path: tt.path}})
			if got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestImpactFirstMatchWins(t *testing.T) {
	s := NewImpactScorer()

	// Path contains both "api" and "config"; only the first table entry
	// that matches contributes.
	got := s.Score([]pr.ChangedFile{{Path: "api/config.py"}})
	if got != 8 {
		t.Errorf("Score = %d, want 8 (api before config in the table)", got)
	}
}

func TestImpactImportCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString("import os\n")
	}

	s := NewImpactScorer()
	got := s.Score([]pr.ChangedFile{{Path: "lib/util.py", Content: b.String()}})
	if got != 2 {
		t.Errorf("Score = %d, want 2 (12 imports / 5)", got)
	}
}

func TestImpactImportCountCapped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("import os\n")
	}

	s := NewImpactScorer()
	got := s.Score([]pr.ChangedFile{{Path: "lib/util.py", Content: b.String()}})
	if got != 5 {
		t.Errorf("Score = %d, want 5 (import term cap)", got)
	}
}

func TestImpactContentSignalFlat(t *testing.T) {
	// Multiple signals in one file still add a single flat 3.
	content := "db.connect()\nresp = api.get()\nfetch(url)\n"

	s := NewImpactScorer()
	got := s.Score([]pr.ChangedFile{{Path: "lib/util.py", Content: content}})
	if got != 3 {
		t.Errorf("Score = %d, want 3 (flat content signal)", got)
	}
}

func TestImpactTotalCap(t *testing.T) {
	files := make([]pr.ChangedFile, 0, 5)
	for i := 0; i < 5; i++ {
		files = append(files, pr.ChangedFile{Path: "db/migrations/step.sql"})
	}

	s := NewImpactScorer()
	if got := s.Score(files); got != 30 {
		t.Errorf("Score = %d, want 30 (total cap)", got)
	}
}

func TestImpactCustomWeights(t *testing.T) {
	s := NewImpactScorerWithWeights([]PathWeight{{Keyword: "vendor", Weight: 12}})

	if got := s.Score([]pr.ChangedFile{{Path: "vendor/lib.js"}}); got != 12 {
		t.Errorf("Score = %d, want 12 with custom table", got)
	}
	// Custom table replaces the builtin one entirely.
	if got := s.Score([]pr.ChangedFile{{Path: "db/migrations/step.sql"}}); got != 0 {
		t.Errorf("Score = %d, want 0 (builtin keywords replaced)", got)
	}
}

func TestImpactEmptyWeightsFallBackToDefault(t *testing.T) {
	s := NewImpactScorerWithWeights(nil)

	if got := s.Score([]pr.ChangedFile{{Path: "models/schema.py"}}); got != 10 {
		t.Errorf("Score = %d, want 10 (default table)", got)
	}
}
