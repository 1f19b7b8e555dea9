//go:build cgo

package analyzer

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrParse marks a failed syntax-tree parse. It never escapes the package:
// the analyzer consumes it by falling back to the heuristic scan, so Analyze
// always produces a value.
var ErrParse = errors.New("syntax tree parse failed")

// pythonBranchTypes contribute one cyclomatic unit each. Exception handlers
// are included; elif clauses count as their own if node.
var pythonBranchTypes = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
	"with_statement":  true,
	"try_statement":   true,
	"except_clause":   true,
}

// pythonComprehensionTypes count as control structures but not complexity.
var pythonComprehensionTypes = map[string]bool{
	"list_comprehension":       true,
	"set_comprehension":        true,
	"dictionary_comprehension": true,
	"generator_expression":     true,
}

// pythonNestingTypes increment nesting depth when entered inside a function.
var pythonNestingTypes = map[string]bool{
	"if_statement":    true,
	"for_statement":   true,
	"while_statement": true,
	"with_statement":  true,
	"try_statement":   true,
}

// PythonAnalyzer computes metrics from the Python syntax tree via
// tree-sitter. A source that fails to parse degrades to the heuristic
// line scan instead of returning an error.
type PythonAnalyzer struct {
	parser *sitter.Parser
}

// NewPythonAnalyzer creates the Python AST analyzer.
func NewPythonAnalyzer() *PythonAnalyzer {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &PythonAnalyzer{parser: p}
}

// Language returns the analysis variant identifier.
func (a *PythonAnalyzer) Language() Language { return LangPython }

// Matches reports whether the extension is a Python extension.
func (a *PythonAnalyzer) Matches(ext string) bool {
	return ext == ".py" || ext == ".pyw"
}

// Analyze parses the source and walks the tree. On a parse failure the
// heuristic fallback produces the metrics instead.
func (a *PythonAnalyzer) Analyze(source []byte, path string) Metrics {
	m, err := a.analyzeTree(source)
	if err != nil {
		return heuristicScan(source, pythonHeuristic)
	}
	return m
}

// analyzeTree is the Result-style inner analysis: a parse failure is an
// explicit error value, never a partial metric.
func (a *PythonAnalyzer) analyzeTree(source []byte) (Metrics, error) {
	tree, err := a.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return Metrics{}, ErrParse
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return Metrics{}, ErrParse
	}

	var m Metrics
	maxFunctionDepth := 0

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		t := node.Type()

		switch {
		case pythonBranchTypes[t]:
			m.CyclomaticComplexity++
			m.ControlStructures++
		case pythonComprehensionTypes[t]:
			m.ControlStructures++
		case t == "function_definition":
			m.FunctionCount++
			m.FunctionLengthPenalty += functionLengthPenalty(node)
			if d := maxNestingDepth(node, 0); d > maxFunctionDepth {
				maxFunctionDepth = d
			}
		}

		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)

	m.NestingDepth = maxFunctionDepth
	m.FileSizePenalty = fileSizePenalty(source)
	m.finalize()
	return m, nil
}

// functionLengthPenalty returns 3 for bodies spanning more than 50 lines,
// 1 for more than 20, else 0.
func functionLengthPenalty(fn *sitter.Node) int {
	lines := int(fn.EndPoint().Row) - int(fn.StartPoint().Row) + 1
	switch {
	case lines > 50:
		return 3
	case lines > 20:
		return 1
	default:
		return 0
	}
}

// maxNestingDepth walks a function subtree tracking how deeply branch
// constructs nest. Depth increments only on entering a branch node;
// siblings at the same level do not increment it.
func maxNestingDepth(node *sitter.Node, depth int) int {
	if node == nil {
		return depth
	}

	deepest := depth
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		childDepth := depth
		if pythonNestingTypes[child.Type()] {
			childDepth++
		}
		if d := maxNestingDepth(child, childDepth); d > deepest {
			deepest = d
		}
	}
	return deepest
}
