package export

import (
	"fmt"
	"strings"

	"github.com/makefab/lasernest/internal/model"
)

const svgSheetGap = 20.0

// LayoutSVG renders a nesting result as a single inline SVG document with
// the sheets stacked vertically. Coordinates are in millimeters, matching
// the layout, so the picture can be overlaid on the cut file.
func LayoutSVG(result model.NestingResult) string {
	if len(result.Sheets) == 0 {
		return ""
	}

	var totalH, maxW float64
	for _, layout := range result.Sheets {
		totalH += layout.Sheet.Height + svgSheetGap
		if layout.Sheet.Width > maxW {
			maxW = layout.Sheet.Width
		}
	}
	totalH -= svgSheetGap

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0fmm" height="%.0fmm" viewBox="0 0 %.2f %.2f">`+"\n",
		maxW, totalH, maxW, totalH)

	offsetY := 0.0
	for sheetIdx, layout := range result.Sheets {
		fmt.Fprintf(&b, `  <g id="sheet-%d">`+"\n", sheetIdx+1)
		fmt.Fprintf(&b, `    <rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="#ebe6dc" stroke="#646464" stroke-width="0.5"/>`+"\n",
			offsetY, layout.Sheet.Width, layout.Sheet.Height)

		if m := layout.Sheet.EdgeMargin; m > 0 {
			fmt.Fprintf(&b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#c80000" stroke-width="0.15" stroke-dasharray="1.5 1.5"/>`+"\n",
				m, offsetY+m, layout.Sheet.Width-2*m, layout.Sheet.Height-2*m)
		}

		for i, p := range layout.Placements {
			col := partColors[i%len(partColors)]
			fmt.Fprintf(&b, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="rgb(%d,%d,%d)" fill-opacity="0.8" stroke="#1e1e1e" stroke-width="0.3"/>`+"\n",
				p.X, offsetY+p.Y, p.PlacedWidth(), p.PlacedHeight(), col.R, col.G, col.B)

			if p.PlacedWidth() > 15 && p.PlacedHeight() > 8 {
				cx := p.X + p.PlacedWidth()/2
				cy := offsetY + p.Y + p.PlacedHeight()/2
				fmt.Fprintf(&b, `    <text x="%.2f" y="%.2f" font-size="4" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
					cx, cy, svgEscape(p.Part.Name))
			}
		}
		b.WriteString("  </g>\n")
		offsetY += layout.Sheet.Height + svgSheetGap
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func svgEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
