package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	TotalPartArea     float64 `json:"total_part_area"`     // Total area of all parts (sq mm)
	TotalPartAreaM2   float64 `json:"total_part_area_m2"`  // Total area in square meters
	SheetArea         float64 `json:"sheet_area"`          // Usable area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	KerfWidth         float64 `json:"kerf_width"`          // Kerf width used in calculation
}

// sqmmPerSquareMeter converts square millimeters to square meters.
const sqmmPerSquareMeter = 1e6

// CalculatePurchaseEstimate computes how many sheets to buy for a given part
// list. It accounts for kerf loss around every part, an additional waste
// percentage, and the sheet's defect-free usable area.
func CalculatePurchaseEstimate(parts []PartShape, sheet MaterialSheet, kerfWidth, wastePercent float64) PurchaseEstimate {
	// Total part area including kerf allowance per part
	var totalPartArea float64
	for _, p := range parts {
		partW := p.Width + kerfWidth
		partH := p.Height + kerfWidth
		totalPartArea += partW * partH * float64(p.Quantity)
	}

	usable := sheet.UsableArea / 100.0
	if usable <= 0 {
		usable = 1.0
	}
	sheetArea := sheet.SheetArea() * usable
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPartArea:   totalPartArea,
			TotalPartAreaM2: totalPartArea / sqmmPerSquareMeter,
			WastePercent:    wastePercent,
			KerfWidth:       kerfWidth,
		}
	}

	exactSheets := totalPartArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPartArea:     totalPartArea,
		TotalPartAreaM2:   totalPartArea / sqmmPerSquareMeter,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * sheet.CostPerSheet,
		KerfWidth:         kerfWidth,
	}
}
