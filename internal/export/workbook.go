package export

import (
	"fmt"

	"github.com/makefab/lasernest/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportWorkbook writes the nesting result as an Excel workbook with a
// summary sheet (statistics and cost breakdown) and one sheet per material
// sheet listing its placements.
func ExportWorkbook(path string, result model.NestingResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	if err := writeSummarySheet(f, summarySheet, result); err != nil {
		return err
	}

	for i, layout := range result.Sheets {
		name := fmt.Sprintf("Sheet %d", i+1)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeLayoutSheet(f, name, layout); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, name string, result model.NestingResult) error {
	rows := [][]interface{}{
		{"Nesting Summary"},
		{},
		{"Sheets used", result.Summary.SheetsUsed},
		{"Parts requested", result.Summary.PartsRequested},
		{"Parts placed", result.Summary.PartsPlaced},
		{"Parts not placed", result.Summary.NotPlacedCount()},
		{"Average utilization (%)", result.Summary.AverageUtilization},
		{"Total waste area (mm2)", result.Summary.TotalWasteArea},
		{"Algorithm", string(result.Metrics.Algorithm)},
		{"Iterations", result.Metrics.Iterations},
		{},
		{"Cost Breakdown"},
		{"Material", result.Cost.MaterialCosts},
		{"Waste", result.Cost.WasteCosts},
		{"Labor", result.Cost.LaborCosts},
		{"Cutting time (min)", result.Cost.CuttingTimeMinutes},
		{"Total project", result.Cost.TotalProject},
		{"Cost per part", result.Cost.CostPerPart},
	}

	for _, up := range result.Summary.PartsNotPlaced {
		rows = append(rows, []interface{}{
			fmt.Sprintf("Unplaced: %s", up.Part.Name), up.Quantity,
		})
	}
	for _, rec := range result.Recommendations {
		rows = append(rows, []interface{}{"Recommendation", rec})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	return f.SetColWidth(name, "A", "A", 28)
}

func writeLayoutSheet(f *excelize.File, name string, layout model.SheetLayout) error {
	rows := [][]interface{}{
		{"Material", layout.Sheet.Name},
		{"Dimensions (mm)", fmt.Sprintf("%.0f x %.0f", layout.Sheet.Width, layout.Sheet.Height)},
		{"Utilization (%)", layout.Utilization()},
		{"Cut time (min)", layout.CutTimeMinutes},
		{},
		{"Part", "Width", "Height", "X", "Y", "Rotated"},
	}

	for _, p := range layout.Placements {
		rows = append(rows, []interface{}{
			p.Part.Name, p.Part.Width, p.Part.Height, p.X, p.Y, p.Rotated,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write layout row %d: %w", i+1, err)
		}
	}

	return f.SetColWidth(name, "A", "A", 24)
}
