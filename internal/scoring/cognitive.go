package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reviewgate/internal/ai"
	"reviewgate/internal/cache"
	"reviewgate/internal/pr"
)

// riskyPathKeywords veto auto-merge regardless of score: changes to these
// file types always get human review.
var riskyPathKeywords = []string{"migration", "schema", "security", "payment"}

// CognitiveScorer runs the three scoring dimensions and combines them
// with the quality penalty into a tier and an auto-merge decision.
// There is no failure mode that aborts an evaluation; every dimension
// degrades independently.
type CognitiveScorer struct {
	static *StaticScorer
	impact *ImpactScorer
	ai     *AIScorer
	logger *slog.Logger
}

// NewCognitiveScorer wires the scorer over a shared metrics cache and an
// optional AI client (nil means AI-unavailable mode).
func NewCognitiveScorer(c *cache.Cache, aiClient ai.Client, logger *slog.Logger) *CognitiveScorer {
	return &CognitiveScorer{
		static: NewStaticScorer(c),
		impact: NewImpactScorer(),
		ai:     NewAIScorer(aiClient, logger),
		logger: logger,
	}
}

// SetImpactScorer replaces the impact scorer, for rules-file weight
// overrides.
func (s *CognitiveScorer) SetImpactScorer(impact *ImpactScorer) {
	s.impact = impact
}

// Analyze scores the changed files of a PR. Auto-merge eligibility is
// computed before tier assignment: eligibility can only refuse an
// auto-merge that the score alone would permit, never grant one.
func (s *CognitiveScorer) Analyze(ctx context.Context, files []pr.ChangedFile, qualityPenalty int) *CognitiveScore {
	eligible, veto := s.autoMergeEligible(files)

	staticScore, perFile := s.static.Score(files)
	impactScore := s.impact.Score(files)
	aiScore, viaAI := s.ai.Score(ctx, files)

	total := staticScore + impactScore + aiScore + qualityPenalty
	tier := tierFor(total)
	autoMerge := eligible && total <= tier0Max

	score := &CognitiveScore{
		StaticScore:    staticScore,
		ImpactScore:    impactScore,
		AIScore:        aiScore,
		QualityPenalty: qualityPenalty,
		TotalScore:     total,
		Tier:           tier,
		AutoMerge:      autoMerge,
		Reasoning:      buildReasoning(staticScore, impactScore, aiScore, qualityPenalty, viaAI, autoMerge, veto),
		ASTMetrics:     perFile,
	}

	s.logger.Info("Cognitive score computed",
		"total", total,
		"tier", tier,
		"autoMerge", autoMerge,
		"static", staticScore,
		"impact", impactScore,
		"ai", aiScore,
		"penalty", qualityPenalty,
	)
	return score
}

// autoMergeEligible applies the safety vetoes: file count, risky path
// keywords, and per-file static complexity recomputed via the same
// analyzer. Returns the first veto reason for the reasoning string.
func (s *CognitiveScorer) autoMergeEligible(files []pr.ChangedFile) (bool, string) {
	if len(files) > autoMergeFiles {
		return false, fmt.Sprintf("%d files changed (max %d for auto-merge)", len(files), autoMergeFiles)
	}

	for _, f := range files {
		path := strings.ToLower(f.Path)
		for _, keyword := range riskyPathKeywords {
			if strings.Contains(path, keyword) {
				return false, fmt.Sprintf("%s touches a %s path", f.Path, keyword)
			}
		}
	}

	for _, f := range files {
		if m := s.static.FileMetrics(f); m.TotalScore > autoMergeStatic {
			return false, fmt.Sprintf("%s static complexity %d exceeds %d", f.Path, m.TotalScore, autoMergeStatic)
		}
	}

	return true, ""
}

// buildReasoning renders a one-line explanation of the decision.
func buildReasoning(staticScore, impactScore, aiScore, penalty int, viaAI, autoMerge bool, veto string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("static %d/%d", staticScore, staticScoreCap))
	parts = append(parts, fmt.Sprintf("impact %d/%d", impactScore, impactScoreCap))

	if viaAI {
		parts = append(parts, fmt.Sprintf("ai %d/%d", aiScore, aiScoreCap))
	} else {
		parts = append(parts, fmt.Sprintf("ai %d/%d (heuristic)", aiScore, aiScoreCap))
	}
	if penalty > 0 {
		parts = append(parts, fmt.Sprintf("quality penalty %d", penalty))
	}

	reasoning := strings.Join(parts, ", ")
	if viaAI && aiScore > 15 {
		reasoning += "; AI flagged as complex"
	}
	if autoMerge {
		reasoning += "; eligible for auto-merge"
	} else if veto != "" {
		reasoning += "; auto-merge refused: " + veto
	}
	return reasoning
}
