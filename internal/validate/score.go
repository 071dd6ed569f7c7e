package validate

import (
	"fmt"

	"github.com/makefab/lasernest/internal/catalog"
	"github.com/makefab/lasernest/internal/model"
)

// score computes the 0-100 manufacturability score: 100 minus the summed
// severity weights, floored at zero.
func score(violations []model.Violation) int {
	s := 100
	for _, v := range violations {
		s -= v.Severity.ScoreWeight()
	}
	if s < 0 {
		s = 0
	}
	return s
}

// estimateSuccess maps the violation profile to a 0-100 probability of a
// clean first cut. High-severity findings dominate; a clean design sits at
// 95 because material variation never allows a flat guarantee.
func estimateSuccess(r model.ValidationResult) int {
	high := r.CountBySeverity(model.SeverityHigh)
	medium := r.CountBySeverity(model.SeverityMedium)

	switch {
	case high > 0:
		return maxInt(20, 80-20*high)
	case medium > 0:
		return maxInt(60, 90-10*medium)
	default:
		return 95
	}
}

// categoryAdvice maps a violation category to retry guidance. The strings
// are the contract surface for callers that auto-fix and re-validate.
var categoryAdvice = map[model.ViolationCategory]string{
	model.ViolationKerf:           "enable kerf compensation or thicken narrow features",
	model.ViolationFeatureSize:    "scale up small features to the material minimum",
	model.ViolationHoleSize:       "enlarge undersized holes to the material minimum",
	model.ViolationFeatureSpacing: "spread tightly packed features apart",
	model.ViolationStructural:     "add supports or shorten unsupported spans",
	model.ViolationDimensional:    "relax the precision tier or split long cuts",
	model.ViolationMaterial:       "choose a different material or resize the design",
}

// adviceOrder fixes the ordering of recommendations so results stay
// deterministic regardless of violation mix.
var adviceOrder = []model.ViolationCategory{
	model.ViolationFeatureSize,
	model.ViolationHoleSize,
	model.ViolationFeatureSpacing,
	model.ViolationStructural,
	model.ViolationKerf,
	model.ViolationDimensional,
	model.ViolationMaterial,
}

// recommendations builds the free-text advisory list from the violations.
func recommendations(r model.ValidationResult, c catalog.ManufacturingConstraints) []string {
	if len(r.Violations) == 0 {
		return []string{fmt.Sprintf("design passes all checks for %s on %s; ready to cut",
			c.MaterialKey, c.MachineKey)}
	}

	present := make(map[model.ViolationCategory]bool)
	for _, v := range r.Violations {
		present[v.Category] = true
	}

	var recs []string
	for _, cat := range adviceOrder {
		if present[cat] {
			recs = append(recs, categoryAdvice[cat])
		}
	}
	if r.CountBySeverity(model.SeverityHigh) > 0 {
		recs = append(recs, "resolve high-severity violations before cutting; they usually ruin the part")
	}
	return recs
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
