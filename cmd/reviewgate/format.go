package main

import (
	"fmt"
	"strings"

	"reviewgate/internal/history"
	"reviewgate/internal/output"
	"reviewgate/internal/qualitygate"
	"reviewgate/internal/scoring"
)

// encode renders v in the requested machine format.
func encode(v any, format string) (string, error) {
	switch format {
	case "json":
		data, err := output.EncodeJSON(v)
		return string(data), err
	case "yaml":
		data, err := output.EncodeYAML(v)
		return string(data), err
	default:
		return "", fmt.Errorf("unknown format %q (expected json, yaml, or human)", format)
	}
}

func tierName(tier int) string {
	switch tier {
	case scoring.TierAutoMerge:
		return "auto-merge candidate"
	case scoring.TierStandard:
		return "standard review"
	default:
		return "expert review"
	}
}

func formatScoreReport(report *ScoreReport, format string) (string, error) {
	if format != "human" {
		return encode(report, format)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%d files)\n\n", report.RunID, report.FileCount)
	fmt.Fprintf(&b, "Total score: %d  Tier %d (%s)\n",
		report.Score.TotalScore, report.Score.Tier, tierName(report.Score.Tier))
	fmt.Fprintf(&b, "  static:  %d\n", report.Score.StaticScore)
	fmt.Fprintf(&b, "  impact:  %d\n", report.Score.ImpactScore)
	fmt.Fprintf(&b, "  ai:      %d\n", report.Score.AIScore)
	fmt.Fprintf(&b, "  penalty: %d\n", report.Score.QualityPenalty)
	fmt.Fprintf(&b, "Auto-merge: %v\n", report.Score.AutoMerge)
	fmt.Fprintf(&b, "Reasoning: %s\n\n", report.Score.Reasoning)
	b.WriteString(renderQuality(report.Quality))
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatQualityResult(result *qualitygate.Result, format string) (string, error) {
	if format != "human" {
		return encode(result, format)
	}
	return strings.TrimRight(renderQuality(result), "\n"), nil
}

func renderQuality(result *qualitygate.Result) string {
	var b strings.Builder

	status := "PASSED"
	if !result.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "Quality gate: %s (score %d/100, penalty %d)\n",
		status, result.QualityScore, result.QualityPenalty)

	writeIssues(&b, "Blocking", result.Blocking)
	writeIssues(&b, "Warnings", result.Warnings)
	writeIssues(&b, "Advisories", result.Advisories)
	return b.String()
}

func writeIssues(b *strings.Builder, heading string, issues []qualitygate.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, issue := range issues {
		loc := issue.FilePath
		if issue.LineNumber > 0 {
			loc = fmt.Sprintf("%s:%d", issue.FilePath, issue.LineNumber)
		}
		fmt.Fprintf(b, "  [%s] %s  %s\n", issue.Category, loc, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(b, "      %s\n", issue.Suggestion)
		}
	}
}

func formatMetricsReports(reports []FileMetricsReport, format string) (string, error) {
	if format != "human" {
		return encode(reports, format)
	}

	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s)\n", r.File, r.Language)
		fmt.Fprintf(&b, "  cyclomatic:      %d\n", r.Metrics.CyclomaticComplexity)
		fmt.Fprintf(&b, "  nesting:         %d\n", r.Metrics.NestingDepth)
		fmt.Fprintf(&b, "  functions:       %d\n", r.Metrics.FunctionCount)
		fmt.Fprintf(&b, "  length penalty:  %d\n", r.Metrics.FunctionLengthPenalty)
		fmt.Fprintf(&b, "  size penalty:    %d\n", r.Metrics.FileSizePenalty)
		fmt.Fprintf(&b, "  total:           %d\n", r.Metrics.TotalScore)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatHistoryEntries(entries []history.Entry, format string) (string, error) {
	if format != "human" {
		return encode(entries, format)
	}

	if len(entries) == 0 {
		return "No evaluations recorded.", nil
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  total=%d tier=%d auto-merge=%v gate=%v files=%d  %s\n",
			e.CreatedAt.UTC().Format("2006-01-02 15:04"),
			e.TotalScore, e.Tier, e.AutoMerge, e.GatePassed, e.FileCount, e.RunID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
