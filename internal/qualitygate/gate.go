package qualitygate

import (
	"context"
	"log/slog"
	"strings"

	"reviewgate/internal/pr"
)

// longFunctionLines is the body length above which a function draws a
// warning.
const longFunctionLines = 100

// Gate runs the quality detectors over the changed files of a PR.
type Gate struct {
	logger   *slog.Logger
	patterns []Pattern
	reviewer *AIReviewer
}

// Option configures a Gate.
type Option func(*Gate)

// WithExtraPatterns appends detector patterns, typically loaded from a
// rules file.
func WithExtraPatterns(patterns []Pattern) Option {
	return func(g *Gate) {
		g.patterns = append(g.patterns, patterns...)
	}
}

// WithAIReviewer enables AI-assisted review. The reviewer degrades to
// nothing on any failure; it never blocks the gate.
func WithAIReviewer(r *AIReviewer) Option {
	return func(g *Gate) { g.reviewer = r }
}

// New creates a gate with the builtin detectors.
func New(logger *slog.Logger, opts ...Option) *Gate {
	g := &Gate{logger: logger}
	g.patterns = append(g.patterns, builtinSecretPatterns...)
	g.patterns = append(g.patterns, sqlInjectionPattern, unsafeExecPattern)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AnalyzePR inspects every changed file and returns the gate result.
// The gate passes iff no blocking issue was found.
func (g *Gate) AnalyzePR(ctx context.Context, files []pr.ChangedFile) *Result {
	result := &Result{}

	for _, f := range files {
		if f.Content == "" {
			continue
		}
		g.analyzeFile(f, result)
	}

	if g.reviewer != nil {
		for _, issue := range g.reviewer.Review(ctx, files) {
			result.add(issue)
		}
	}

	result.finalize()

	g.logger.Debug("Quality gate complete",
		"files", len(files),
		"blocking", len(result.Blocking),
		"warnings", len(result.Warnings),
		"advisories", len(result.Advisories),
		"penalty", result.QualityPenalty,
	)
	return result
}

// analyzeFile runs the line detectors, the long-function detector, and
// the Python-only advisories over one file.
func (g *Gate) analyzeFile(f pr.ChangedFile, result *Result) {
	lines := strings.Split(f.Content, "\n")

	for i, line := range lines {
		lineNo := i + 1

		for _, p := range g.patterns {
			if p.Regex.MatchString(line) {
				result.add(Issue{
					Level:      p.Level,
					Category:   p.Category,
					Message:    p.Message,
					FilePath:   f.Path,
					LineNumber: lineNo,
					Suggestion: p.Suggestion,
				})
			}
		}

		if todoPattern.MatchString(line) && !ticketRefPattern.MatchString(line) {
			result.add(Issue{
				Level:      LevelWarning,
				Category:   "Maintainability",
				Message:    "TODO/FIXME without a ticket reference",
				FilePath:   f.Path,
				LineNumber: lineNo,
				Suggestion: "Reference a tracking ticket, e.g. TODO(PROJ-123)",
			})
		}

		if debugPattern.MatchString(line) {
			result.add(Issue{
				Level:      LevelWarning,
				Category:   "Debug",
				Message:    "Leftover debug output",
				FilePath:   f.Path,
				LineNumber: lineNo,
				Suggestion: "Remove debug prints or route them through a logger",
			})
		}
	}

	for _, issue := range longFunctionIssues(f, lines) {
		result.add(issue)
	}

	if f.Language == "python" {
		for _, issue := range pythonAdvisories(f, lines) {
			result.add(issue)
		}
	}
}

// longFunctionIssues warns on functions whose body exceeds
// longFunctionLines. Extent is approximated by indentation for Python and
// by brace balance for brace languages.
func longFunctionIssues(f pr.ChangedFile, lines []string) []Issue {
	var issues []Issue

	for i, line := range lines {
		var length int
		if f.Language == "python" {
			m := pythonDefPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			length = pythonFunctionExtent(lines, i)
		} else {
			if !looksLikeFunctionStart(line) {
				continue
			}
			length = braceFunctionExtent(lines, i)
		}

		if length > longFunctionLines {
			issues = append(issues, Issue{
				Level:      LevelWarning,
				Category:   "Maintainability",
				Message:    "Function exceeds 100 lines",
				FilePath:   f.Path,
				LineNumber: i + 1,
				Suggestion: "Split the function into smaller units",
			})
		}
	}
	return issues
}

// pythonFunctionExtent counts lines from the def until indentation returns
// to the def's level.
func pythonFunctionExtent(lines []string, start int) int {
	defIndent := leadingWidth(lines[start])
	end := len(lines)
	for j := start + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		if leadingWidth(lines[j]) <= defIndent {
			end = j
			break
		}
	}
	return end - start
}

// braceFunctionExtent counts lines from a function start until the brace
// balance closes. Unbalanced snippets run to end of file.
func braceFunctionExtent(lines []string, start int) int {
	balance := 0
	opened := false
	for j := start; j < len(lines); j++ {
		for _, r := range lines[j] {
			switch r {
			case '{':
				balance++
				opened = true
			case '}':
				balance--
			}
		}
		if opened && balance <= 0 {
			return j - start + 1
		}
	}
	return len(lines) - start
}

// looksLikeFunctionStart is a loose match for brace-language function
// definitions.
func looksLikeFunctionStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "function ") || strings.HasPrefix(trimmed, "async function "):
		return true
	case strings.HasPrefix(trimmed, "func ") || strings.HasPrefix(trimmed, "fn "):
		return true
	case strings.Contains(trimmed, "=>") && strings.Contains(trimmed, "{"):
		return true
	}
	return false
}

// pythonAdvisories flags missing docstrings and missing type hints on
// Python function definitions.
func pythonAdvisories(f pr.ChangedFile, lines []string) []Issue {
	var issues []Issue

	for i, line := range lines {
		m := pythonDefPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, params, returns := m[1], m[2], m[3]
		lineNo := i + 1

		if !hasDocstring(lines, i) {
			issues = append(issues, Issue{
				Level:      LevelAdvisory,
				Category:   "Documentation",
				Message:    "Function " + name + " has no docstring",
				FilePath:   f.Path,
				LineNumber: lineNo,
				Suggestion: "Add a docstring describing behavior and parameters",
			})
		}

		if missingTypeHints(params, returns) {
			issues = append(issues, Issue{
				Level:      LevelAdvisory,
				Category:   "Typing",
				Message:    "Function " + name + " has no type hints",
				FilePath:   f.Path,
				LineNumber: lineNo,
				Suggestion: "Annotate parameters and the return type",
			})
		}
	}
	return issues
}

// hasDocstring reports whether the first non-blank line after a def opens
// a docstring.
func hasDocstring(lines []string, defLine int) bool {
	for j := defLine + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		return docstringPattern.MatchString(lines[j])
	}
	return false
}

// missingTypeHints reports whether a signature has neither parameter
// annotations nor a return annotation. Bare self/cls receivers do not
// count as unannotated parameters.
func missingTypeHints(params, returns string) bool {
	if returns != "" {
		return false
	}
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" || p == "self" || p == "cls" {
			continue
		}
		if strings.Contains(p, ":") {
			return false
		}
	}
	return true
}

// leadingWidth measures leading whitespace, counting a tab as 4 columns.
func leadingWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
