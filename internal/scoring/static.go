package scoring

import (
	"reviewgate/internal/analyzer"
	"reviewgate/internal/cache"
	"reviewgate/internal/pr"
)

// StaticScorer aggregates per-file complexity metrics into a capped score.
type StaticScorer struct {
	cache *cache.Cache
}

// NewStaticScorer creates a static scorer over a metrics cache.
func NewStaticScorer(c *cache.Cache) *StaticScorer {
	return &StaticScorer{cache: c}
}

// Score sums per-file totals with each file capped before summing and the
// aggregate capped after, so neither one pathological file nor many
// moderate ones can exceed the cap. The per-file metrics are returned for
// the score breakdown.
func (s *StaticScorer) Score(files []pr.ChangedFile) (int, map[string]analyzer.Metrics) {
	perFile := make(map[string]analyzer.Metrics, len(files))

	total := 0
	for _, f := range files {
		m := s.FileMetrics(f)
		perFile[f.Path] = m
		total += min(m.TotalScore, staticPerFile)
	}

	return min(total, staticScoreCap), perFile
}

// FileMetrics returns the cached-or-computed metrics for one changed
// file: from its in-memory content when present, otherwise from the
// checkout on disk.
func (s *StaticScorer) FileMetrics(f pr.ChangedFile) analyzer.Metrics {
	if f.Content != "" {
		return s.cache.GetOrComputeSource(f.Path, []byte(f.Content))
	}
	return s.cache.GetOrCompute(f.Path)
}
