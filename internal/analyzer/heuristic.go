package analyzer

import "strings"

// heuristicProfile parameterizes the line-scanning fallback analysis.
type heuristicProfile struct {
	// controlTokens increment the control-structure count when a trimmed
	// line starts with one of them.
	controlTokens []string

	// functionTokens mark function definitions (informational count only).
	functionTokens []string

	// indentBased selects indentation-derived nesting depth (Python style)
	// over running brace balance.
	indentBased bool
}

var pythonHeuristic = heuristicProfile{
	controlTokens: []string{
		"if ", "if(", "elif ", "else:", "else ", "for ", "while ", "while(",
		"try:", "try ", "except", "finally:", "with ", "case ",
	},
	functionTokens: []string{"def ", "async def ", "lambda "},
	indentBased:    true,
}

var jsHeuristic = heuristicProfile{
	controlTokens: []string{
		"if ", "if(", "else if", "else {", "else{", "for ", "for(",
		"while ", "while(", "switch ", "switch(", "case ", "catch",
		"try ", "try{", "do ", "do{", "? ",
	},
	functionTokens: []string{"function ", "function(", "async function"},
}

var genericHeuristic = heuristicProfile{
	controlTokens: []string{
		"if ", "if(", "else", "elif ", "for ", "for(", "while ", "while(",
		"switch ", "switch(", "case ", "catch", "try", "except", "with ",
		"loop ", "match ", "when ",
	},
	functionTokens: []string{"def ", "func ", "fn ", "function ", "sub ", "proc "},
}

// heuristicScan approximates complexity without parsing: every line whose
// trimmed prefix matches a control token counts one control structure, and
// cyclomatic complexity is set equal to that count. Nesting depth comes from
// indentation (indent width / 4) or from the maximum running brace balance,
// clamped to >= 0 for unbalanced snippets.
func heuristicScan(source []byte, profile heuristicProfile) Metrics {
	var m Metrics

	maxDepth := 0
	balance := 0

	for _, raw := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		for _, tok := range profile.controlTokens {
			if strings.HasPrefix(trimmed, tok) {
				m.ControlStructures++
				break
			}
		}

		for _, tok := range profile.functionTokens {
			if strings.HasPrefix(trimmed, tok) || strings.Contains(trimmed, " "+tok) {
				m.FunctionCount++
				break
			}
		}

		if profile.indentBased {
			if depth := indentWidth(raw) / 4; depth > maxDepth {
				maxDepth = depth
			}
		} else {
			for _, r := range raw {
				switch r {
				case '{':
					balance++
					if balance > maxDepth {
						maxDepth = balance
					}
				case '}':
					balance--
				}
			}
		}
	}

	if maxDepth < 0 {
		maxDepth = 0
	}

	m.CyclomaticComplexity = m.ControlStructures
	m.NestingDepth = maxDepth
	m.FileSizePenalty = fileSizePenalty(source)
	m.finalize()
	return m
}

// indentWidth measures leading whitespace, counting a tab as 4 columns.
func indentWidth(line string) int {
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

// JSAnalyzer approximates complexity for JavaScript and TypeScript sources
// with a keyword and brace-balance scan. There is no parse step, so it
// cannot fail.
type JSAnalyzer struct{}

// NewJSAnalyzer creates the JavaScript/TypeScript heuristic analyzer.
func NewJSAnalyzer() *JSAnalyzer { return &JSAnalyzer{} }

// Language returns the analysis variant identifier.
func (a *JSAnalyzer) Language() Language { return LangJavaScript }

// Matches reports whether the extension is a JS/TS family extension.
func (a *JSAnalyzer) Matches(ext string) bool {
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

// Analyze scans the source line by line.
func (a *JSAnalyzer) Analyze(source []byte, path string) Metrics {
	return heuristicScan(source, jsHeuristic)
}

// GenericAnalyzer is the last-resort analyzer; it matches every extension.
type GenericAnalyzer struct{}

// NewGenericAnalyzer creates the generic fallback analyzer.
func NewGenericAnalyzer() *GenericAnalyzer { return &GenericAnalyzer{} }

// Language returns the analysis variant identifier.
func (a *GenericAnalyzer) Language() Language { return LangGeneric }

// Matches always returns true; the generic analyzer must be last in the
// dispatch order.
func (a *GenericAnalyzer) Matches(ext string) bool { return true }

// Analyze scans the source line by line.
func (a *GenericAnalyzer) Analyze(source []byte, path string) Metrics {
	return heuristicScan(source, genericHeuristic)
}
