package engine

import (
	"fmt"

	"github.com/makefab/lasernest/internal/model"
)

// buildCostAnalysis turns the layout statistics into money. Waste cost is
// derived from the measured utilization of this run, not a fixed factor.
func (o *Optimizer) buildCostAnalysis(summary model.NestingSummary, layouts []model.SheetLayout) model.CostAnalysis {
	var materialCosts float64
	for _, l := range layouts {
		materialCosts += l.Sheet.CostPerSheet
	}

	wasteFraction := 0.0
	if summary.SheetsUsed > 0 {
		wasteFraction = 1.0 - summary.AverageUtilization/100.0
		if wasteFraction < 0 {
			wasteFraction = 0
		}
	}

	cuttingTime := float64(summary.SheetsUsed) * o.Rates.PerSheetCutMinutes
	laborCosts := (cuttingTime / 60.0) * o.Rates.HourlyRate
	wasteCosts := materialCosts * wasteFraction

	analysis := model.CostAnalysis{
		MaterialCosts:      materialCosts,
		WasteCosts:         wasteCosts,
		CuttingTimeMinutes: cuttingTime,
		LaborCosts:         laborCosts,
		TotalProject:       materialCosts + wasteCosts + laborCosts,
	}
	if summary.PartsRequested > 0 {
		analysis.CostPerPart = materialCosts / float64(summary.PartsRequested)
	}
	analysis.Savings = savingsIdeas(summary, wasteFraction, layouts)
	return analysis
}

// savingsIdeas suggests ways to bring the project cost down.
func savingsIdeas(summary model.NestingSummary, wasteFraction float64, layouts []model.SheetLayout) []string {
	var ideas []string

	if wasteFraction > 0.4 && summary.SheetsUsed > 0 {
		ideas = append(ideas, fmt.Sprintf("%.0f%% of purchased material is waste; batching more parts per order would spread the cost",
			wasteFraction*100))
	}
	if summary.SheetsUsed > 1 {
		var cheapest, priciest float64
		for i, l := range layouts {
			c := l.Sheet.CostPerSheet
			if i == 0 || c < cheapest {
				cheapest = c
			}
			if c > priciest {
				priciest = c
			}
		}
		if priciest > cheapest && cheapest > 0 {
			ideas = append(ideas, "mixing sheet grades: moving parts onto the cheaper stock would lower material cost")
		}
	}
	if len(summary.PartsNotPlaced) == 0 && summary.SheetsUsed > 0 {
		last := layouts[len(layouts)-1]
		if last.Utilization() < 30 {
			ideas = append(ideas, fmt.Sprintf("the last sheet is only %.0f%% used; a smaller remnant or offcut would do",
				last.Utilization()))
		}
	}
	return ideas
}
