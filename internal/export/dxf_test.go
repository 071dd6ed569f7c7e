package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makefab/lasernest/internal/model"
)

func TestExportDXFWritesOneFilePerSheet(t *testing.T) {
	base := filepath.Join(t.TempDir(), "job")

	written, err := ExportDXF(base, sampleResult())
	if err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %d", len(written))
	}
	if written[0] != base+"-sheet-1.dxf" {
		t.Errorf("unexpected file name %q", written[0])
	}

	for _, path := range written {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("cannot read %s: %v", path, err)
		}
		content := string(data)
		if !strings.Contains(content, "SHEET") {
			t.Errorf("%s missing the sheet boundary layer", path)
		}
		if !strings.Contains(content, "CUT") {
			t.Errorf("%s missing the cut layer", path)
		}
		if !strings.Contains(content, "LINE") {
			t.Errorf("%s contains no line entities", path)
		}
	}
}

func TestExportDXFEmptyResult(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty")
	if _, err := ExportDXF(base, model.NestingResult{}); err == nil {
		t.Error("expected error for result with no sheets")
	}
}

func TestExportDXFOutlinePart(t *testing.T) {
	// A triangular part must be drawn from its outline, not its bounding box.
	part := model.PartShape{
		Name: "Tri", Width: 60, Height: 40, Quantity: 1,
		Outline: model.Outline{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 30, Y: 40}},
	}
	result := model.NestingResult{
		Sheets: []model.SheetLayout{{
			Sheet:      model.NewMaterialSheet("S", 100, 100),
			Placements: []model.PlacedPart{{Part: part, X: 10, Y: 10}},
		}},
	}

	base := filepath.Join(t.TempDir(), "tri")
	written, err := ExportDXF(base, result)
	if err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}
	data, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Error("DXF file is empty")
	}
}
