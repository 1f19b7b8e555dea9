package scoring

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"reviewgate/internal/ai"
	"reviewgate/internal/pr"
)

// aiMaxFiles and aiMaxChars bound the excerpt sent for scoring.
const (
	aiMaxFiles = 3
	aiMaxChars = 2000
)

// Keyword sets for the deterministic fallback. Each set is checked once
// per file, not per occurrence.
var (
	complexityKeywords = []string{
		"algorithm", "recursive", "optimization", "performance",
		"threading", "async", "promise", "callback",
	}
	businessKeywords = []string{
		"pricing", "payment", "billing", "discount", "tax",
		"inventory", "order", "subscription",
	}
	dataStructureKeywords = []string{
		"nested", "recursive", "tree", "graph", "matrix",
	}
)

var firstIntPattern = regexp.MustCompile(`-?\d+`)

// AIScorer rates cognitive load 0-30 via an external completion service.
// Any failure — no client, network error, unparseable response — falls
// back to the deterministic keyword heuristic. This is a hard contract:
// Score never fails and never exceeds the cap.
type AIScorer struct {
	client ai.Client
	logger *slog.Logger
}

// NewAIScorer creates an AI scorer. A nil client means "AI unavailable";
// the heuristic path is used for every call.
func NewAIScorer(client ai.Client, logger *slog.Logger) *AIScorer {
	return &AIScorer{client: client, logger: logger}
}

// Available reports whether the external service path is configured.
func (s *AIScorer) Available() bool { return s.client != nil }

// Score returns a value in [0, 30] and whether the external service
// produced it.
func (s *AIScorer) Score(ctx context.Context, files []pr.ChangedFile) (int, bool) {
	if s.client == nil {
		return s.heuristicScore(files), false
	}

	prompt := buildScoringPrompt(files)
	if prompt == "" {
		return s.heuristicScore(files), false
	}

	response, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI scoring unavailable, using heuristic", "provider", s.client.Name(), "error", err)
		return s.heuristicScore(files), false
	}

	score, ok := parseScore(response)
	if !ok {
		s.logger.Warn("AI scoring response unparseable, using heuristic", "provider", s.client.Name())
		return s.heuristicScore(files), false
	}
	return score, true
}

// buildScoringPrompt assembles the rating instruction plus truncated
// excerpts of the first changed files.
func buildScoringPrompt(files []pr.ChangedFile) string {
	var b strings.Builder
	b.WriteString("Rate the cognitive load of reviewing this change on a scale of 0 to 30. ")
	b.WriteString("Respond with a single integer.\n")

	included := 0
	for _, f := range files {
		if f.Content == "" {
			continue
		}
		if included == aiMaxFiles {
			break
		}
		excerpt := f.Content
		if len(excerpt) > aiMaxChars {
			excerpt = excerpt[:aiMaxChars]
		}
		b.WriteString("\n--- ")
		b.WriteString(f.Path)
		b.WriteString(" ---\n")
		b.WriteString(excerpt)
		b.WriteString("\n")
		included++
	}

	if included == 0 {
		return ""
	}
	return b.String()
}

// parseScore extracts the first integer in the response and clamps it
// into [0, 30].
func parseScore(response string) (int, bool) {
	match := firstIntPattern.FindString(response)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	if n > aiScoreCap {
		n = aiScoreCap
	}
	return n, true
}

// heuristicScore is the deterministic fallback: per file, +5 for any
// complexity keyword, +3 for any business keyword, +2 for any
// data-structure keyword, capped at 30.
func (s *AIScorer) heuristicScore(files []pr.ChangedFile) int {
	total := 0
	for _, f := range files {
		content := strings.ToLower(f.Content)
		if content == "" {
			continue
		}
		if containsAny(content, complexityKeywords) {
			total += 5
		}
		if containsAny(content, businessKeywords) {
			total += 3
		}
		if containsAny(content, dataStructureKeywords) {
			total += 2
		}
	}
	return min(total, aiScoreCap)
}

func containsAny(content string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}
