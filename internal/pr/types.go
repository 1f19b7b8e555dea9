// Package pr models the changed files of a pull request and loads them
// from GitHub or the local checkout.
package pr

import (
	"os"
	"path/filepath"
	"strings"
)

// ChangedFile is one changed file in a PR. Content may be empty when the
// file is binary, deleted, or could not be fetched; the scoring pipeline
// treats that as a normal condition.
type ChangedFile struct {
	Path     string `json:"path"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language"`
}

// DetectLanguage maps a file extension to a coarse language name.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw":
		return "python"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx", ".mts", ".cts":
		return "typescript"
	case ".go":
		return "go"
	case ".java":
		return "java"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".php":
		return "php"
	case ".sql":
		return "sql"
	case ".md", ".rst":
		return "markdown"
	case ".yml", ".yaml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// FromPaths builds changed-file records from local paths, reading content
// from the checkout. Unreadable or binary files yield empty content rather
// than an error.
func FromPaths(root string, paths []string) []ChangedFile {
	files := make([]ChangedFile, 0, len(paths))
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(p) && root != "" {
			abs = filepath.Join(root, p)
		}

		content := ""
		if data, err := os.ReadFile(abs); err == nil && isText(data) {
			content = string(data)
		}

		files = append(files, ChangedFile{
			Path:     p,
			Content:  content,
			Language: DetectLanguage(p),
		})
	}
	return files
}

// isText reports whether data looks like decodable text. A NUL byte marks
// binary content.
func isText(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return true
}
