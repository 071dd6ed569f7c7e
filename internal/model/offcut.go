package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant area left over after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetName  string  `json:"sheet_name"`  // Which sheet it came from
	SheetIndex int     `json:"sheet_index"` // Index of the source sheet in the result
	X          float64 `json:"x"`           // Position on the sheet (mm from left)
	Y          float64 `json:"y"`           // Position on the sheet (mm from top)
	Width      float64 `json:"width"`       // Usable width (mm)
	Height     float64 `json:"height"`      // Usable height (mm)
	Cost       float64 `json:"cost"`        // Inherited cost proportional to area (0 if unpriced)
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToMaterialSheet converts an offcut into a stock sheet for reuse.
func (o Offcut) ToMaterialSheet(material string, thickness float64) MaterialSheet {
	sheet := NewMaterialSheet("Offcut "+o.SheetName, o.Width, o.Height)
	sheet.Material = material
	sheet.Thickness = thickness
	sheet.CostPerSheet = o.Cost
	return sheet
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts analyzes a SheetLayout and identifies rectangular remnant
// areas that are large enough to be reused on a later job. It looks for the
// full-height strip to the right of all parts and the strip below them.
func DetectOffcuts(sl SheetLayout, sheetIndex int, kerf float64) []Offcut {
	sheetW := sl.Sheet.Width
	sheetH := sl.Sheet.Height

	if len(sl.Placements) == 0 {
		return []Offcut{{
			ID:         uuid.New().String()[:8],
			SheetName:  sl.Sheet.Name,
			SheetIndex: sheetIndex,
			Width:      sheetW,
			Height:     sheetH,
			Cost:       sl.Sheet.CostPerSheet,
		}}
	}

	var maxPartRight, maxPartBottom float64
	for _, p := range sl.Placements {
		right := p.X + p.PlacedWidth() + kerf
		bottom := p.Y + p.PlacedHeight() + kerf
		if right > maxPartRight {
			maxPartRight = right
		}
		if bottom > maxPartBottom {
			maxPartBottom = bottom
		}
	}

	var offcuts []Offcut

	// Right strip: area to the right of all parts
	rightStripW := sheetW - maxPartRight
	if rightStripW >= MinOffcutDimension && sheetH >= MinOffcutDimension && rightStripW*sheetH >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetName:  sl.Sheet.Name,
			SheetIndex: sheetIndex,
			X:          maxPartRight,
			Y:          0,
			Width:      rightStripW,
			Height:     sheetH,
		})
	}

	// Bottom strip, only up to the right edge of parts to avoid overlap
	bottomStripH := sheetH - maxPartBottom
	usableBottomW := math.Min(maxPartRight, sheetW)
	if bottomStripH >= MinOffcutDimension && usableBottomW >= MinOffcutDimension && bottomStripH*usableBottomW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetName:  sl.Sheet.Name,
			SheetIndex: sheetIndex,
			X:          0,
			Y:          maxPartBottom,
			Width:      usableBottomW,
			Height:     bottomStripH,
		})
	}

	// Assign proportional cost to offcuts
	if sl.Sheet.CostPerSheet > 0 {
		totalSheetArea := sheetW * sheetH
		for i := range offcuts {
			offcuts[i].Cost = (offcuts[i].Area() / totalSheetArea) * sl.Sheet.CostPerSheet
		}
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets in a nesting result.
func DetectAllOffcuts(result NestingResult, kerf float64) []Offcut {
	var all []Offcut
	for i, sheet := range result.Sheets {
		all = append(all, DetectOffcuts(sheet, i, kerf)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
