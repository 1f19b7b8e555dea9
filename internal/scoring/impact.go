package scoring

import (
	"regexp"
	"strings"

	"reviewgate/internal/pr"
)

// PathWeight maps a path keyword to an impact weight. The table is
// ordered: only the first matching keyword contributes for a given file.
type PathWeight struct {
	Keyword string
	Weight  int
}

// defaultPathWeights orders risk keywords from most to least sensitive.
var defaultPathWeights = []PathWeight{
	{"migration", 10},
	{"schema", 10},
	{"payment", 9},
	{"api", 8},
	{"security", 8},
	{"config", 6},
	{"test", 2},
	{"doc", 1},
}

// importLinePatterns match import/include statements across languages.
var importLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*import\s+`),
	regexp.MustCompile(`^\s*from\s+.*\s+import`),
	regexp.MustCompile(`^\s*#include\s+`),
	regexp.MustCompile(`^\s*using\s+`),
	regexp.MustCompile(`^\s*require\s*\(`),
}

// contentSignals are substrings whose presence suggests data or service
// coupling.
var contentSignals = []string{"database", "db.", "api.", "fetch(", "axios"}

// ImpactScorer scores files by path keywords, import fan-in, and content
// coupling signals.
type ImpactScorer struct {
	weights []PathWeight
}

// NewImpactScorer creates an impact scorer with the default weight table.
func NewImpactScorer() *ImpactScorer {
	return &ImpactScorer{weights: defaultPathWeights}
}

// NewImpactScorerWithWeights overrides the ordered weight table, for
// rules-file customization. An empty table falls back to the default.
func NewImpactScorerWithWeights(weights []PathWeight) *ImpactScorer {
	if len(weights) == 0 {
		weights = defaultPathWeights
	}
	return &ImpactScorer{weights: weights}
}

// Score sums per-file impact and caps the total.
func (s *ImpactScorer) Score(files []pr.ChangedFile) int {
	total := 0
	for _, f := range files {
		total += s.fileImpact(f)
	}
	return min(total, impactScoreCap)
}

// fileImpact adds the first matching path weight, an import-count term,
// and a flat content-signal term.
func (s *ImpactScorer) fileImpact(f pr.ChangedFile) int {
	score := 0

	path := strings.ToLower(f.Path)
	for _, w := range s.weights {
		if strings.Contains(path, w.Keyword) {
			score += w.Weight
			break
		}
	}

	if f.Content != "" {
		score += min(countImports(f.Content)/5, 5)

		content := strings.ToLower(f.Content)
		for _, signal := range contentSignals {
			if strings.Contains(content, signal) {
				score += 3
				break
			}
		}
	}

	return score
}

// countImports counts lines matching any import pattern.
func countImports(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		for _, p := range importLinePatterns {
			if p.MatchString(line) {
				count++
				break
			}
		}
	}
	return count
}
