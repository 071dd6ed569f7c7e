package export

import (
	"fmt"
	"math"

	"github.com/makefab/lasernest/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

var (
	sheetLayerColor = color.Grey128
	cutLayerColor   = color.Red
)

// ExportDXF writes one DXF cut file per sheet layout, named
// <basePath>-sheet-N.dxf. The sheet boundary goes on its own layer so the
// operator can turn it off before cutting.
func ExportDXF(basePath string, result model.NestingResult) ([]string, error) {
	if len(result.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	var written []string
	for i, layout := range result.Sheets {
		path := fmt.Sprintf("%s-sheet-%d.dxf", basePath, i+1)
		if err := writeSheetDXF(path, layout); err != nil {
			return written, fmt.Errorf("sheet %d: %w", i+1, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// writeSheetDXF writes a single sheet layout as a DXF drawing.
func writeSheetDXF(path string, layout model.SheetLayout) error {
	d := dxf.NewDrawing()

	d.AddLayer("SHEET", sheetLayerColor, table.LT_CONTINUOUS, true)
	drawRect(d, 0, 0, layout.Sheet.Width, layout.Sheet.Height)

	d.AddLayer("CUT", cutLayerColor, table.LT_CONTINUOUS, true)
	for _, p := range layout.Placements {
		if len(p.Part.Outline) >= 3 {
			drawOutline(d, p)
			continue
		}
		drawRect(d, p.X, p.Y, p.PlacedWidth(), p.PlacedHeight())
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four LINE entities.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}

// drawOutline draws a part's polygon outline translated to its placement,
// honoring a 90 degree rotation.
func drawOutline(d *drawing.Drawing, p model.PlacedPart) {
	outline := p.Part.Outline
	if p.Rotated {
		outline = outline.Rotate(math.Pi / 2)
	}
	outline = outline.Translate(p.X, p.Y)

	n := len(outline)
	for i := 0; i < n; i++ {
		a := outline[i]
		b := outline[(i+1)%n]
		d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
	}
}
