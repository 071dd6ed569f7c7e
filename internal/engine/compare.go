package engine

import (
	"fmt"

	"github.com/makefab/lasernest/internal/model"
)

// ComparisonScenario defines a named set of nesting options to compare.
type ComparisonScenario struct {
	Name    string
	Options model.NestOptions
}

// ComparisonResult holds the nesting result and computed statistics for one
// scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.NestingResult
	SheetsUsed    int
	PartsPlaced   int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs the nesting for each scenario and returns the
// results in scenario order, enabling side-by-side comparison of algorithms,
// spacing, and rotation settings.
func CompareScenarios(scenarios []ComparisonScenario, parts []model.PartShape, sheets []model.MaterialSheet) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Options)
		result, err := opt.Optimize(parts, sheets)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			SheetsUsed:    result.Summary.SheetsUsed,
			PartsPlaced:   result.Summary.PartsPlaced,
			WastePercent:  100.0 - result.TotalEfficiency(),
			UnplacedCount: result.Summary.NotPlacedCount(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if scenarios from the given options:
// each alternative algorithm, halved spacing when there is room to halve,
// and rotation toggled on when it is off.
func BuildDefaultScenarios(base model.NestOptions) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Options: base},
	}

	for _, alg := range []model.Algorithm{model.AlgorithmSpeed, model.AlgorithmEfficiency, model.AlgorithmMinimalWaste} {
		if alg == base.Algorithm {
			continue
		}
		alt := base
		alt.Algorithm = alg
		scenarios = append(scenarios, ComparisonScenario{
			Name:    fmt.Sprintf("Algorithm: %s", alg),
			Options: alt,
		})
	}

	if base.MinimumSpacing > 1.0 {
		tight := base
		tight.MinimumSpacing = base.MinimumSpacing * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:    fmt.Sprintf("Spacing %.1fmm (half)", tight.MinimumSpacing),
			Options: tight,
		})
	}

	if !base.AllowRotation {
		rot := base
		rot.AllowRotation = true
		scenarios = append(scenarios, ComparisonScenario{
			Name:    "Rotation Allowed",
			Options: rot,
		})
	}

	return scenarios
}
