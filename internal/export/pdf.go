// Package export renders nesting results to the formats a laser shop
// actually consumes: PDF layout sheets, part labels, DXF cut files, SVG
// previews, and cost workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/makefab/lasernest/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a nesting result. Each sheet layout
// gets its own page with a scaled drawing, followed by a summary page with
// statistics and the cost breakdown.
func ExportPDF(path string, result model.NestingResult, options model.NestOptions) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, layout := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, layout, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, options)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet layout on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, layout model.SheetLayout, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.0f x %.0f mm)", sheetNum, layout.Sheet.Name, layout.Sheet.Width, layout.Sheet.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f mm² | Utilization: %.1f%% | Est. cut time: %.1f min",
		len(layout.Placements), layout.UsedArea(), layout.Utilization(), layout.CutTimeMinutes)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/layout.Sheet.Width, drawHeight/layout.Sheet.Height)
	canvasW := layout.Sheet.Width * scale
	canvasH := layout.Sheet.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(235, 230, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawEdgeMargin(pdf, layout.Sheet, scale, offsetX, offsetY)

	for i, p := range layout.Placements {
		col := partColors[i%len(partColors)]
		pw := p.PlacedWidth() * scale
		ph := p.PlacedHeight() * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Part.Name
			dims := fmt.Sprintf("%.0fx%.0f", p.Part.Width, p.Part.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, layout.Sheet, scale, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, layout, offsetY+canvasH+5)
}

// drawEdgeMargin marks the clamping margin around the sheet where no part
// may be placed.
func drawEdgeMargin(pdf *fpdf.Fpdf, sheet model.MaterialSheet, scale, offsetX, offsetY float64) {
	if sheet.EdgeMargin <= 0 {
		return
	}
	m := sheet.EdgeMargin * scale
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	pdf.Rect(offsetX+m, offsetY+m, sheet.Width*scale-2*m, sheet.Height*scale-2*m, "D")
	pdf.SetDashPattern([]float64{}, 0)
}

// drawDimensionAnnotations adds width and height labels outside the sheet.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.MaterialSheet, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts below the sheet.
func drawPartsLegend(pdf *fpdf.Fpdf, layout model.SheetLayout, startY float64) {
	if len(layout.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range layout.Placements {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Part.Name, p.Part.Width, p.Part.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with statistics, the cost
// breakdown, and any unplaced parts.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.NestingResult, options model.NestOptions) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Sheets Used", fmt.Sprintf("%d", result.Summary.SheetsUsed)},
		{"Average Utilization", fmt.Sprintf("%.1f%%", result.Summary.AverageUtilization)},
		{"Parts Placed", fmt.Sprintf("%d of %d", result.Summary.PartsPlaced, result.Summary.PartsRequested)},
		{"Waste Area", fmt.Sprintf("%.0f mm²", result.Summary.TotalWasteArea)},
		{"Algorithm", string(result.Metrics.Algorithm)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 50, 30, 35, 50}
	headers := []string{"Sheet", "Material", "Dimensions", "Parts", "Utilization", "Cut Time"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layout := range result.Sheets {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			layout.Sheet.Name,
			fmt.Sprintf("%.0f x %.0f mm", layout.Sheet.Width, layout.Sheet.Height),
			fmt.Sprintf("%d", len(layout.Placements)),
			fmt.Sprintf("%.1f%%", layout.Utilization()),
			fmt.Sprintf("%.1f min", layout.CutTimeMinutes),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Summary.PartsNotPlaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, up := range result.Summary.PartsNotPlaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f mm (qty: %d)", up.Part.Name, up.Part.Width, up.Part.Height, up.Quantity)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cost Breakdown", "", 0, "L", false, 0, "")
	y += 9

	costItems := []struct {
		label string
		value string
	}{
		{"Material", fmt.Sprintf("%.2f", result.Cost.MaterialCosts)},
		{"Waste", fmt.Sprintf("%.2f", result.Cost.WasteCosts)},
		{"Labor", fmt.Sprintf("%.2f", result.Cost.LaborCosts)},
		{"Total Project", fmt.Sprintf("%.2f", result.Cost.TotalProject)},
		{"Per Part", fmt.Sprintf("%.2f", result.Cost.CostPerPart)},
		{"Min. Spacing", fmt.Sprintf("%.1f mm", options.MinimumSpacing)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range costItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LaserNest - Material Nesting Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for the rectangle size.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
