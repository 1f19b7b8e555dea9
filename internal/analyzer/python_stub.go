//go:build !cgo

package analyzer

import "errors"

// ErrParse marks a failed syntax-tree parse. Without CGO there is no
// tree-sitter parser, so every Python input takes the heuristic path.
var ErrParse = errors.New("syntax tree parse failed")

// PythonAnalyzer is the non-CGO stub. It dispatches for Python extensions
// like the real analyzer but always degrades to the heuristic scan, the
// same behavior the CGO build has for a file with a syntax error.
type PythonAnalyzer struct{}

// NewPythonAnalyzer creates the stub Python analyzer.
func NewPythonAnalyzer() *PythonAnalyzer { return &PythonAnalyzer{} }

// Language returns the analysis variant identifier.
func (a *PythonAnalyzer) Language() Language { return LangPython }

// Matches reports whether the extension is a Python extension.
func (a *PythonAnalyzer) Matches(ext string) bool {
	return ext == ".py" || ext == ".pyw"
}

// Analyze scans the source line by line.
func (a *PythonAnalyzer) Analyze(source []byte, path string) Metrics {
	return heuristicScan(source, pythonHeuristic)
}
