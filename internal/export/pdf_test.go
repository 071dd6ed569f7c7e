package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makefab/lasernest/internal/model"
)

// sampleResult builds a two-sheet nesting result for export tests.
func sampleResult() model.NestingResult {
	sheet1 := model.MaterialSheet{
		ID: "s1", Name: "Plywood A", Width: 300, Height: 200,
		Material: "plywood", Thickness: 3, CostPerSheet: 12.5, UsableArea: 100, EdgeMargin: 5,
	}
	sheet2 := model.MaterialSheet{
		ID: "s2", Name: "Plywood B", Width: 300, Height: 200,
		Material: "plywood", Thickness: 3, CostPerSheet: 12.5, UsableArea: 100,
	}

	partA := model.PartShape{ID: "a", Name: "Bracket", Width: 80, Height: 50, Quantity: 1, Material: "plywood"}
	partB := model.PartShape{ID: "b", Name: "Panel", Width: 120, Height: 90, Quantity: 1}

	result := model.NestingResult{
		Sheets: []model.SheetLayout{
			{
				Sheet: sheet1,
				Placements: []model.PlacedPart{
					{Part: partA, X: 5, Y: 5},
					{Part: partB, X: 90, Y: 5, Rotated: true, Rotation: 90},
				},
				CutPath:        "1. Bracket at (5.0, 5.0)\ntravel: 120 mm",
				CutTimeMinutes: 2.5,
			},
			{
				Sheet: sheet2,
				Placements: []model.PlacedPart{
					{Part: partA, X: 0, Y: 0},
				},
				CutTimeMinutes: 1.1,
			},
		},
	}
	result.Summary = model.NestingSummary{
		PartsRequested:     4,
		PartsPlaced:        3,
		SheetsUsed:         2,
		AverageUtilization: 22.4,
		TotalWasteArea:     93100,
		PartsNotPlaced: []model.UnplacedPart{
			{Part: partB, Quantity: 1},
		},
	}
	result.Metrics = model.OptimizationMetrics{Algorithm: model.AlgorithmEfficiency, Iterations: 7, Efficiency: 22.4}
	result.Cost = model.CostAnalysis{
		MaterialCosts:      25.0,
		WasteCosts:         19.4,
		CuttingTimeMinutes: 30,
		LaborCosts:         22.5,
		TotalProject:       66.9,
		CostPerPart:        6.25,
	}
	result.Recommendations = []string{"allowing rotation usually improves utilization"}
	return result
}

func TestExportPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	err := ExportPDF(path, sampleResult(), model.DefaultNestOptions())
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read exported PDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("exported PDF is empty")
	}
	if !strings.HasPrefix(string(data[:8]), "%PDF") {
		t.Errorf("file does not start with a PDF header: %q", data[:8])
	}
}

func TestExportPDFEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.NestingResult{}, model.DefaultNestOptions())
	if err == nil {
		t.Error("expected error for result with no sheets")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty result")
	}
}

func TestExportPDFSingleSheetNoCost(t *testing.T) {
	// A result without cost data must still export cleanly.
	result := sampleResult()
	result.Sheets = result.Sheets[:1]
	result.Cost = model.CostAnalysis{}
	result.Summary.PartsNotPlaced = nil

	path := filepath.Join(t.TempDir(), "single.pdf")
	if err := ExportPDF(path, result, model.NestOptions{Algorithm: model.AlgorithmSpeed}); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported PDF is empty")
	}
}

func TestLabelFontSizeShrinksWithPart(t *testing.T) {
	big := labelFontSize(200, 150)
	small := labelFontSize(20, 12)
	if small > big {
		t.Errorf("font for a small part (%.1f) should not exceed a large part's (%.1f)", small, big)
	}
	if small <= 0 {
		t.Errorf("font size must stay positive, got %.1f", small)
	}
}
