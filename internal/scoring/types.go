// Package scoring combines static complexity, impact heuristics, AI
// assessment, and the quality penalty into a cognitive score, a review
// tier, and an auto-merge decision.
package scoring

import "reviewgate/internal/analyzer"

// Review tiers. Tier 0 marks an auto-merge candidate by score; the
// auto-merge flag itself is a stricter, separate gate.
const (
	TierAutoMerge = 0
	TierStandard  = 1
	TierExpert    = 2
)

// Tier thresholds on the total score.
const (
	tier0Max = 35
	tier1Max = 65
)

// Per-dimension caps.
const (
	staticScoreCap  = 40
	staticPerFile   = 40
	impactScoreCap  = 30
	aiScoreCap      = 30
	autoMergeFiles  = 5
	autoMergeStatic = 15
)

// CognitiveScore is the scoring pipeline output for one PR evaluation.
// It is computed fresh each time and never cached. TotalScore is the
// plain sum of its addends and is unbounded above even though each
// addend is capped.
type CognitiveScore struct {
	StaticScore    int                         `json:"staticScore"`
	ImpactScore    int                         `json:"impactScore"`
	AIScore        int                         `json:"aiScore"`
	QualityPenalty int                         `json:"qualityPenalty"`
	TotalScore     int                         `json:"totalScore"`
	Tier           int                         `json:"tier"`
	AutoMerge      bool                        `json:"autoMerge"`
	Reasoning      string                      `json:"reasoning"`
	ASTMetrics     map[string]analyzer.Metrics `json:"astMetrics"`
}

// tierFor maps a total score onto a review tier. Monotonic: a higher
// total never yields a lower tier.
func tierFor(total int) int {
	switch {
	case total <= tier0Max:
		return TierAutoMerge
	case total <= tier1Max:
		return TierStandard
	default:
		return TierExpert
	}
}
