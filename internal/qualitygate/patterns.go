package qualitygate

import "regexp"

// Pattern is a line-matching detector. Builtin patterns cover hardcoded
// secrets, SQL built by string formatting, and unsafe dynamic execution;
// extra patterns can be appended from a rules file.
type Pattern struct {
	Name       string
	Category   string
	Level      Level
	Regex      *regexp.Regexp
	Message    string
	Suggestion string
}

// builtinSecretPatterns match assignment-style hardcoded credentials.
var builtinSecretPatterns = []Pattern{
	{
		Name:       "hardcoded_password",
		Category:   "Security",
		Level:      LevelBlocking,
		Regex:      regexp.MustCompile(`(?i)password\s*[:=]\s*["'][^"']{4,}["']`),
		Message:    "Hardcoded password",
		Suggestion: "Load credentials from the environment or a secret manager",
	},
	{
		Name:       "hardcoded_api_key",
		Category:   "Security",
		Level:      LevelBlocking,
		Regex:      regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["'][^"']{8,}["']`),
		Message:    "Hardcoded API key",
		Suggestion: "Load credentials from the environment or a secret manager",
	},
	{
		Name:       "hardcoded_secret",
		Category:   "Security",
		Level:      LevelBlocking,
		Regex:      regexp.MustCompile(`(?i)secret\s*[:=]\s*["'][^"']{8,}["']`),
		Message:    "Hardcoded secret",
		Suggestion: "Load credentials from the environment or a secret manager",
	},
	{
		Name:       "hardcoded_token",
		Category:   "Security",
		Level:      LevelBlocking,
		Regex:      regexp.MustCompile(`(?i)token\s*[:=]\s*["'][^"']{8,}["']`),
		Message:    "Hardcoded token",
		Suggestion: "Load credentials from the environment or a secret manager",
	},
}

// sqlInjectionPattern matches string formatting or concatenation flowing
// into execute()/query() calls.
var sqlInjectionPattern = Pattern{
	Name:       "sql_string_formatting",
	Category:   "Security",
	Level:      LevelBlocking,
	Regex:      regexp.MustCompile(`(?i)(execute|query)\s*\(\s*(f["']|["'][^"']*["']\s*(%|\+)|.*\.format\(|.*%\s*\()`),
	Message:    "SQL built with string formatting",
	Suggestion: "Use parameterized queries instead of string interpolation",
}

// unsafeExecPattern matches dynamic code execution.
var unsafeExecPattern = Pattern{
	Name:       "unsafe_eval",
	Category:   "Security",
	Level:      LevelBlocking,
	Regex:      regexp.MustCompile(`\b(eval|exec)\s*\(`),
	Message:    "Unsafe dynamic code execution",
	Suggestion: "Avoid eval/exec on data that can be influenced by input",
}

// todoPattern flags TODO/FIXME markers; ticketRefPattern suppresses the
// warning when the marker carries a ticket reference.
var (
	todoPattern      = regexp.MustCompile(`(?i)\b(TODO|FIXME)\b`)
	ticketRefPattern = regexp.MustCompile(`([A-Z][A-Z0-9]+-\d+|#\d+)`)
)

// debugPattern matches leftover debug output calls.
var debugPattern = regexp.MustCompile(`(^|\s)(print\s*\(|console\.log\s*\()`)

// pythonDefPattern matches a Python function signature and captures the
// parameter list and the trailing annotation region.
var pythonDefPattern = regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)\s*(->\s*[^:]+)?:`)

// docstringPattern matches the opening of a Python docstring.
var docstringPattern = regexp.MustCompile(`^\s*(?:[rbu]{0,2})("""|''')`)
