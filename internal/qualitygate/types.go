// Package qualitygate detects code-quality issues in changed files and
// produces the quality score and penalty consumed by the cognitive scorer.
package qualitygate

// Level indicates how strongly an issue gates the PR. Only blocking
// issues fail the gate; warnings and advisories never block.
type Level string

const (
	LevelBlocking Level = "blocking"
	LevelWarning  Level = "warning"
	LevelAdvisory Level = "advisory"
)

// Issue is a single detected quality problem. Issues live for one
// AnalyzePR call and are not persisted.
type Issue struct {
	Level      Level  `json:"level"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	FilePath   string `json:"filePath"`
	LineNumber int    `json:"lineNumber,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Result is the outcome of a quality-gate analysis. QualityScore and
// QualityPenalty are computed from the same issue lists by independent
// formulas; neither is derived from the other.
type Result struct {
	Passed         bool    `json:"passed"`
	QualityScore   int     `json:"qualityScore"`
	Blocking       []Issue `json:"blockingIssues"`
	Warnings       []Issue `json:"warningIssues"`
	Advisories     []Issue `json:"advisoryIssues"`
	QualityPenalty int     `json:"qualityPenalty"`
}

// add routes an issue into the matching level list.
func (r *Result) add(issue Issue) {
	switch issue.Level {
	case LevelBlocking:
		r.Blocking = append(r.Blocking, issue)
	case LevelWarning:
		r.Warnings = append(r.Warnings, issue)
	default:
		r.Advisories = append(r.Advisories, issue)
	}
}

// finalize computes Passed, QualityScore, and QualityPenalty from the
// issue lists.
//
//	quality_score  = clamp(100 - 50*B - min(5*W, 40) - min(A, 10), 0, 100)
//	quality_penalty = min(20*B + 5*W, 40)
func (r *Result) finalize() {
	b := len(r.Blocking)
	w := len(r.Warnings)
	a := len(r.Advisories)

	r.Passed = b == 0

	score := 100 - 50*b - min(5*w, 40) - min(a, 10)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	r.QualityScore = score

	r.QualityPenalty = min(20*b+5*w, 40)
}
