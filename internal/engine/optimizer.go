// Package engine lays out part shapes onto material sheets and accounts for
// the cost of doing so. Three strategies are available: a deterministic
// shelf packer (the baseline every build carries), a maximal-rectangles
// guillotine packer, and a genetic meta-heuristic. Infeasible input is never
// an error; parts that fit nowhere are reported in the result summary.
package engine

import (
	"fmt"

	"github.com/makefab/lasernest/internal/export"
	"github.com/makefab/lasernest/internal/model"
)

// Optimizer runs the 2D nesting algorithms.
type Optimizer struct {
	Options model.NestOptions
	Rates   model.CostRates

	iterations int
}

// New creates an optimizer with the given options and default cost rates.
func New(options model.NestOptions) *Optimizer {
	return &Optimizer{Options: options, Rates: model.DefaultCostRates()}
}

// Optimize lays out the requested parts across the candidate sheets and
// returns the full nesting result. It fails only on structurally malformed
// input; running out of sheet space is ordinary data in the summary.
func (o *Optimizer) Optimize(parts []model.PartShape, sheets []model.MaterialSheet) (model.NestingResult, error) {
	if err := model.ValidatePartShapes(parts); err != nil {
		return model.NestingResult{}, err
	}
	if err := model.ValidateMaterialSheets(sheets); err != nil {
		return model.NestingResult{}, err
	}

	o.iterations = 0
	instances := expandParts(parts)

	var layouts []model.SheetLayout
	var unplaced []model.PartShape
	algorithm := o.Options.Algorithm

	switch algorithm {
	case model.AlgorithmEfficiency:
		layouts, unplaced = o.layoutGuillotine(instances, sheets)
	case model.AlgorithmMinimalWaste:
		layouts, unplaced = o.layoutGenetic(instances, sheets)
	default:
		algorithm = model.AlgorithmSpeed
		layouts, unplaced = o.layoutShelf(instances, sheets)
	}

	for i := range layouts {
		layouts[i].CutPath = describeCutPath(layouts[i])
		layouts[i].CutTimeMinutes = model.EstimateLayoutCutTime(layouts[i], o.Rates.FeedRateMMPerMin)
	}

	result := model.NestingResult{Sheets: layouts}
	result.Summary = o.buildSummary(parts, layouts, unplaced)
	result.Cost = o.buildCostAnalysis(result.Summary, layouts)
	result.Summary.TotalCost = result.Cost.TotalProject
	result.Metrics = model.OptimizationMetrics{
		Algorithm:  algorithm,
		Iterations: o.iterations,
		Efficiency: result.TotalEfficiency(),
	}
	result.Offcuts = model.DetectAllOffcuts(result, o.Options.MinimumSpacing)
	result.Recommendations = o.buildRecommendations(result)
	if o.Options.Visualize {
		result.Visualization = export.LayoutSVG(result)
	}
	return result, nil
}

// expandParts turns each PartShape into Quantity individual instances.
func expandParts(parts []model.PartShape) []model.PartShape {
	var expanded []model.PartShape
	for _, p := range parts {
		for i := 0; i < p.Quantity; i++ {
			cp := p
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// buildSummary collapses unplaced instances back into per-part quantities
// and aggregates the layout statistics.
func (o *Optimizer) buildSummary(parts []model.PartShape, layouts []model.SheetLayout, unplaced []model.PartShape) model.NestingSummary {
	summary := model.NestingSummary{SheetsUsed: len(layouts)}

	for _, p := range parts {
		summary.PartsRequested += p.Quantity
	}
	for _, l := range layouts {
		summary.PartsPlaced += len(l.Placements)
		summary.TotalWasteArea += l.WasteArea()
		summary.AverageUtilization += l.Utilization()
	}
	if len(layouts) > 0 {
		summary.AverageUtilization /= float64(len(layouts))
	}

	// Preserve the input part order in the not-placed report.
	counts := make(map[string]int)
	for _, p := range unplaced {
		counts[p.ID]++
	}
	for _, p := range parts {
		if n := counts[p.ID]; n > 0 {
			summary.PartsNotPlaced = append(summary.PartsNotPlaced, model.UnplacedPart{
				Part:     p,
				Quantity: n,
			})
		}
	}
	return summary
}

// buildRecommendations produces human-readable advice about the layout.
func (o *Optimizer) buildRecommendations(result model.NestingResult) []string {
	var recs []string

	if n := result.Summary.NotPlacedCount(); n > 0 {
		recs = append(recs, fmt.Sprintf("%d parts did not fit; add sheets or use larger stock", n))
	}
	if result.Summary.SheetsUsed > 0 && result.Summary.AverageUtilization < 50 {
		recs = append(recs, fmt.Sprintf("average utilization is %.0f%%; consider smaller sheets or batching more parts",
			result.Summary.AverageUtilization))
	}
	if !o.Options.AllowRotation {
		recs = append(recs, "allowing rotation usually improves utilization")
	}
	if o.Options.Algorithm == model.AlgorithmSpeed && result.Summary.SheetsUsed > 1 {
		recs = append(recs, "the efficiency algorithm may reduce the sheet count for multi-sheet jobs")
	}
	if n := len(result.Offcuts); n > 0 {
		recs = append(recs, fmt.Sprintf("%d reusable offcuts left over (%.0f sq cm); shelve them for smaller jobs",
			n, model.TotalOffcutArea(result.Offcuts)/100))
	}
	for _, l := range result.Sheets {
		if l.Utilization() > l.Sheet.UsableArea {
			recs = append(recs, fmt.Sprintf("sheet %q is packed beyond its %.0f%% defect-free area; inspect the stock before cutting",
				l.Sheet.Name, l.Sheet.UsableArea))
			break
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "layout is ready to cut")
	}
	return recs
}
