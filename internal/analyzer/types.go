// Package analyzer provides per-file complexity analysis for changed files.
// A closed set of language analyzers (Python AST, JS/TS heuristic, generic
// heuristic) turns source text into Metrics; selection is by file extension
// with the generic analyzer always matching last.
package analyzer

import (
	"path/filepath"
	"strings"
)

// Language identifies the analysis variant applied to a file.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangGeneric    Language = "generic"
)

// Metrics contains complexity numbers for a single file.
// TotalScore is derived; callers must never set it independently of its
// inputs. ControlStructures and FunctionCount are informational and are
// not part of the total.
type Metrics struct {
	// CyclomaticComplexity counts branch points (if/for/while/with/try
	// and exception handlers).
	CyclomaticComplexity int `json:"cyclomaticComplexity"`

	// NestingDepth is the maximum nesting of branch constructs within
	// any single function in the file.
	NestingDepth int `json:"nestingDepth"`

	// FunctionCount is the number of function definitions found.
	FunctionCount int `json:"functionCount"`

	// FunctionLengthPenalty sums per-function penalties for long bodies.
	FunctionLengthPenalty int `json:"functionLengthPenalty"`

	// ControlStructures counts all control-flow constructs, including
	// comprehensions that do not contribute to cyclomatic complexity.
	ControlStructures int `json:"controlStructures"`

	// FileSizePenalty penalizes large files by non-blank line count.
	FileSizePenalty int `json:"fileSizePenalty"`

	// TotalScore is cyclomatic + nesting + function-length + file-size.
	TotalScore int `json:"totalScore"`
}

// finalize computes the derived total from its inputs.
func (m *Metrics) finalize() {
	m.TotalScore = m.CyclomaticComplexity + m.NestingDepth + m.FunctionLengthPenalty + m.FileSizePenalty
}

// LanguageAnalyzer turns source text into Metrics. Analyze never fails:
// malformed input degrades to a heuristic line scan instead of an error.
type LanguageAnalyzer interface {
	// Language returns the analysis variant identifier.
	Language() Language

	// Matches reports whether this analyzer handles the extension.
	Matches(ext string) bool

	// Analyze computes metrics for the source text. Identical input
	// always yields identical metrics.
	Analyze(source []byte, path string) Metrics
}

// DefaultAnalyzers returns the analyzer set in dispatch priority order:
// language-specific analyzers first, the generic fallback last.
func DefaultAnalyzers() []LanguageAnalyzer {
	return []LanguageAnalyzer{
		NewPythonAnalyzer(),
		NewJSAnalyzer(),
		NewGenericAnalyzer(),
	}
}

// ForPath returns the first analyzer whose extension match succeeds.
// The generic analyzer matches every extension, so the result is never nil
// for the default set.
func ForPath(analyzers []LanguageAnalyzer, path string) LanguageAnalyzer {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range analyzers {
		if a.Matches(ext) {
			return a
		}
	}
	return nil
}

// fileSizePenalty returns 5 for files with more than 100 non-blank lines,
// 2 for more than 50, else 0.
func fileSizePenalty(source []byte) int {
	nonBlank := 0
	for _, line := range strings.Split(string(source), "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	switch {
	case nonBlank > 100:
		return 5
	case nonBlank > 50:
		return 2
	default:
		return 0
	}
}
