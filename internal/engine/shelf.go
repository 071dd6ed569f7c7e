package engine

import (
	"sort"

	"github.com/makefab/lasernest/internal/model"
)

// layoutShelf is the baseline shelf packer. It walks each sheet left to
// right, top to bottom: parts go at the cursor, a part that overflows the
// row starts a new row, and a part that overflows the sheet closes the
// layout and opens the next sheet. It never calls out, never randomizes,
// and always produces the same layout for the same input, which makes it
// the correctness floor the fancier packers are measured against.
func (o *Optimizer) layoutShelf(instances []model.PartShape, sheets []model.MaterialSheet) ([]model.SheetLayout, []model.PartShape) {
	ordered := append([]model.PartShape(nil), instances...)
	if o.Options.PrioritizeOrder {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Priority > ordered[j].Priority
		})
	}

	var layouts []model.SheetLayout
	var unplaced []model.PartShape

	spacing := o.Options.MinimumSpacing
	sheetIdx := 0
	var layout model.SheetLayout
	var cursorX, cursorY, rowHeight float64
	active := false

	openSheet := func() bool {
		if sheetIdx >= len(sheets) {
			active = false
			return false
		}
		sheet := sheets[sheetIdx]
		sheetIdx++
		layout = model.SheetLayout{Sheet: sheet}
		cursorX = sheet.EdgeMargin
		cursorY = sheet.EdgeMargin
		rowHeight = 0
		active = true
		return true
	}
	closeSheet := func() {
		if active && len(layout.Placements) > 0 {
			layouts = append(layouts, layout)
		}
		active = false
	}

	openSheet()

	for _, part := range ordered {
		o.iterations++
		if !active {
			unplaced = append(unplaced, part)
			continue
		}

		sheet := layout.Sheet
		maxX := sheet.Width - sheet.EdgeMargin
		maxY := sheet.Height - sheet.EdgeMargin
		usableW := maxX - sheet.EdgeMargin
		usableH := maxY - sheet.EdgeMargin

		w, h := part.Width, part.Height
		rotated := false
		// Rotate up front when the part only fits the sheet sideways.
		if o.Options.AllowRotation && (w > usableW || h > usableH) && h <= usableW && w <= usableH {
			w, h = h, w
			rotated = true
		}
		if w > usableW || h > usableH {
			// The part cannot fit an empty sheet of this size at all.
			unplaced = append(unplaced, part)
			continue
		}

		for {
			if cursorX+w > maxX {
				// Row overflow: advance to a new row.
				cursorX = sheet.EdgeMargin
				cursorY += rowHeight + spacing
				rowHeight = 0
			}
			if cursorY+h > maxY {
				// Sheet overflow: close this layout and open the next sheet.
				closeSheet()
				if !openSheet() {
					unplaced = append(unplaced, part)
					break
				}
				sheet = layout.Sheet
				maxX = sheet.Width - sheet.EdgeMargin
				maxY = sheet.Height - sheet.EdgeMargin
				usableW = maxX - sheet.EdgeMargin
				usableH = maxY - sheet.EdgeMargin
				cursorX, cursorY, rowHeight = sheet.EdgeMargin, sheet.EdgeMargin, 0
				// Sheets may differ in size, so the fit decision has to be
				// remade for the new sheet.
				w, h = part.Width, part.Height
				rotated = false
				if o.Options.AllowRotation && (w > usableW || h > usableH) && h <= usableW && w <= usableH {
					w, h = h, w
					rotated = true
				}
				if w > usableW || h > usableH {
					unplaced = append(unplaced, part)
					break
				}
				continue
			}

			placement := model.PlacedPart{Part: part, X: cursorX, Y: cursorY, Rotated: rotated}
			if rotated {
				placement.Rotation = 90
			}
			layout.Placements = append(layout.Placements, placement)
			cursorX += w + spacing
			if h > rowHeight {
				rowHeight = h
			}
			break
		}
	}

	closeSheet()
	return layouts, unplaced
}
