package qualitygate

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"reviewgate/internal/ai"
	"reviewgate/internal/pr"
)

// aiReviewMaxFiles and aiReviewMaxChars bound the excerpt sent for review.
const (
	aiReviewMaxFiles = 3
	aiReviewMaxChars = 2000
)

// AIReviewer asks the LLM for structured quality issues. Every failure
// mode (unreachable service, malformed response) degrades to an empty
// issue list; the static detectors always run regardless.
type AIReviewer struct {
	client ai.Client
	logger *slog.Logger
}

// NewAIReviewer creates a reviewer over an AI client.
func NewAIReviewer(client ai.Client, logger *slog.Logger) *AIReviewer {
	return &AIReviewer{client: client, logger: logger}
}

// aiIssue is the wire shape of one issue in the AI response.
type aiIssue struct {
	Severity   string `json:"severity"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Suggestion string `json:"suggestion"`
}

// aiReviewResponse is the expected JSON envelope.
type aiReviewResponse struct {
	Issues []aiIssue `json:"issues"`
}

// Review returns AI-detected issues, or nil on any failure.
func (r *AIReviewer) Review(ctx context.Context, files []pr.ChangedFile) []Issue {
	if r == nil || r.client == nil {
		return nil
	}

	prompt := buildReviewPrompt(files)
	if prompt == "" {
		return nil
	}

	response, err := r.client.Complete(ctx, prompt)
	if err != nil {
		r.logger.Warn("AI review unavailable, using static detectors only", "error", err)
		return nil
	}

	parsed, ok := parseReviewResponse(response)
	if !ok {
		r.logger.Warn("AI review response unparseable, using static detectors only")
		return nil
	}

	issues := make([]Issue, 0, len(parsed.Issues))
	for _, item := range parsed.Issues {
		issues = append(issues, Issue{
			Level:      levelFromSeverity(item.Severity),
			Category:   item.Category,
			Message:    item.Message,
			FilePath:   item.FilePath,
			LineNumber: item.LineNumber,
			Suggestion: item.Suggestion,
		})
	}
	return issues
}

// buildReviewPrompt assembles the review instruction plus truncated
// excerpts of the first files with content.
func buildReviewPrompt(files []pr.ChangedFile) string {
	var b strings.Builder
	b.WriteString("Review the following changed files for quality issues. ")
	b.WriteString(`Respond with JSON only: {"issues":[{"severity","category","message","file_path","line_number","suggestion"}]}. `)
	b.WriteString("Severity must be blocking, warning, or advisory.\n")

	included := 0
	for _, f := range files {
		if f.Content == "" {
			continue
		}
		if included == aiReviewMaxFiles {
			break
		}
		excerpt := f.Content
		if len(excerpt) > aiReviewMaxChars {
			excerpt = excerpt[:aiReviewMaxChars]
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

// parseReviewResponse extracts the first JSON object from free text.
func parseReviewResponse(response string) (*aiReviewResponse, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var parsed aiReviewResponse
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, false
	}
	return &parsed, true
}

// levelFromSeverity maps AI severity strings onto gate levels. Unknown
// severities read as advisory so a confused model can never block a PR.
func levelFromSeverity(severity string) Level {
	switch strings.ToLower(severity) {
	case "blocking", "critical", "high":
		return LevelBlocking
	case "warning", "medium":
		return LevelWarning
	default:
		return LevelAdvisory
	}
}
