package model

// ViolationCategory classifies what a validation finding is about.
type ViolationCategory string

const (
	ViolationKerf           ViolationCategory = "kerf"
	ViolationFeatureSize    ViolationCategory = "feature_size"
	ViolationHoleSize       ViolationCategory = "hole_size"
	ViolationFeatureSpacing ViolationCategory = "feature_spacing"
	ViolationStructural     ViolationCategory = "structural"
	ViolationDimensional    ViolationCategory = "dimensional"
	ViolationMaterial       ViolationCategory = "material"
)

// Severity ranks how much a violation endangers a successful cut.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ScoreWeight returns a severity's contribution to the manufacturability
// score deduction.
func (s Severity) ScoreWeight() int {
	switch s {
	case SeverityHigh:
		return 5
	case SeverityMedium:
		return 3
	default:
		return 1
	}
}

// Violation is a single manufacturability finding. Violations are data, not
// errors: a design full of violations is still a successfully validated
// design, just not a manufacturable one.
type Violation struct {
	Category     ViolationCategory `json:"category"`
	Severity     Severity          `json:"severity"`
	Message      string            `json:"message"`
	Bounds       Rect              `json:"bounds"`
	SuggestedFix string            `json:"suggested_fix,omitempty"`
}

// ValidationResult aggregates all findings for one design.
type ValidationResult struct {
	IsValid         bool        `json:"is_valid"`
	Violations      []Violation `json:"violations"`
	Recommendations []string    `json:"recommendations"`
	// Score is the 0-100 manufacturability score.
	Score int `json:"score"`
	// EstimatedSuccess is the 0-100 estimated probability of a clean cut.
	EstimatedSuccess int `json:"estimated_success"`
}

// CountBySeverity returns how many violations carry the given severity.
func (r ValidationResult) CountBySeverity(s Severity) int {
	var n int
	for _, v := range r.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}
