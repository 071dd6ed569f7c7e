package export

import (
	"strings"
	"testing"

	"github.com/makefab/lasernest/internal/model"
)

func TestLayoutSVGEmptyResult(t *testing.T) {
	if svg := LayoutSVG(model.NestingResult{}); svg != "" {
		t.Errorf("expected empty string for no sheets, got %q", svg)
	}
}

func TestLayoutSVGStructure(t *testing.T) {
	svg := LayoutSVG(sampleResult())

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("missing svg root element: %q", svg[:20])
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("svg document not closed")
	}
	if !strings.Contains(svg, `<g id="sheet-1">`) {
		t.Error("missing group for sheet 1")
	}
	if !strings.Contains(svg, `<g id="sheet-2">`) {
		t.Error("missing group for sheet 2")
	}
	// Sheet 1 carries a 5mm edge margin; the dashed guide rect must show it.
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("missing dashed edge margin rect")
	}
	if !strings.Contains(svg, ">Bracket</text>") {
		t.Error("missing part label text")
	}
}

func TestLayoutSVGRotatedPartUsesPlacedSize(t *testing.T) {
	// A 120x90 part rotated 90 degrees occupies 90x120 on the sheet.
	svg := LayoutSVG(sampleResult())
	if !strings.Contains(svg, `width="90.00" height="120.00"`) {
		t.Error("rotated part should be drawn with swapped dimensions")
	}
}

func TestLayoutSVGEscapesNames(t *testing.T) {
	part := model.PartShape{Name: "A<B>&C", Width: 50, Height: 50, Quantity: 1}
	result := model.NestingResult{
		Sheets: []model.SheetLayout{{
			Sheet:      model.NewMaterialSheet("S", 100, 100),
			Placements: []model.PlacedPart{{Part: part, X: 0, Y: 0}},
		}},
	}

	svg := LayoutSVG(result)

	if strings.Contains(svg, "A<B>") {
		t.Error("part name not escaped")
	}
	if !strings.Contains(svg, "A&lt;B&gt;&amp;C") {
		t.Error("expected escaped part name in output")
	}
}
