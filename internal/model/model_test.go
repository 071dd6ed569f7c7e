package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewPartShapeDefaults(t *testing.T) {
	p := NewPartShape("Bracket", 60, 30, 2)

	if p.ID == "" {
		t.Error("expected generated ID")
	}
	if p.Name != "Bracket" {
		t.Errorf("expected name 'Bracket', got %q", p.Name)
	}
	if p.Width != 60 || p.Height != 30 {
		t.Errorf("expected 60x30, got %.0fx%.0f", p.Width, p.Height)
	}
	if p.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", p.Quantity)
	}
	if p.Priority != 5 {
		t.Errorf("expected default priority 5, got %d", p.Priority)
	}
}

func TestPartShapeIDsAreUnique(t *testing.T) {
	a := NewPartShape("A", 10, 10, 1)
	b := NewPartShape("B", 10, 10, 1)
	if a.ID == b.ID {
		t.Errorf("two parts share ID %q", a.ID)
	}
}

func TestPartAreaRectangle(t *testing.T) {
	p := NewPartShape("Rect", 60, 40, 1)
	if p.PartArea() != 2400 {
		t.Errorf("expected area 2400, got %.1f", p.PartArea())
	}
}

func TestPartAreaOutline(t *testing.T) {
	// A right triangle inside a 60x40 bounding box has half the box area.
	p := NewPartShape("Tri", 60, 40, 1)
	p.Outline = Outline{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 0, Y: 40}}
	if math.Abs(p.PartArea()-1200) > 0.001 {
		t.Errorf("expected outline area 1200, got %.1f", p.PartArea())
	}
}

func TestCutLength(t *testing.T) {
	p := NewPartShape("Rect", 60, 40, 1)
	if p.CutLength() != 200 {
		t.Errorf("expected perimeter 200, got %.1f", p.CutLength())
	}

	p.Outline = RectOutline(0, 0, 10, 10)
	if math.Abs(p.CutLength()-40) > 0.001 {
		t.Errorf("expected outline perimeter 40, got %.1f", p.CutLength())
	}
}

func TestNewMaterialSheetDefaults(t *testing.T) {
	s := NewMaterialSheet("Ply", 600, 400)

	if s.ID == "" {
		t.Error("expected generated ID")
	}
	if s.UsableArea != 100 {
		t.Errorf("expected fully usable sheet, got %.1f%%", s.UsableArea)
	}
	if s.SheetArea() != 240000 {
		t.Errorf("expected area 240000, got %.1f", s.SheetArea())
	}
}

func TestValidatePartShapes(t *testing.T) {
	good := []PartShape{NewPartShape("A", 10, 10, 1)}
	if err := ValidatePartShapes(good); err != nil {
		t.Errorf("unexpected error for valid parts: %v", err)
	}

	cases := []PartShape{
		{Name: "NegW", Width: -1, Height: 10, Quantity: 1},
		{Name: "ZeroH", Width: 10, Height: 0, Quantity: 1},
		{Name: "NoQty", Width: 10, Height: 10, Quantity: 0},
	}
	for _, bad := range cases {
		err := ValidatePartShapes([]PartShape{bad})
		if err == nil {
			t.Errorf("expected error for part %q", bad.Name)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("part %q: error should wrap ErrInvalidInput, got %v", bad.Name, err)
		}
	}
}

func TestValidateMaterialSheets(t *testing.T) {
	good := []MaterialSheet{NewMaterialSheet("S", 100, 100)}
	if err := ValidateMaterialSheets(good); err != nil {
		t.Errorf("unexpected error for valid sheet: %v", err)
	}

	bad := NewMaterialSheet("Bad", 100, 100)
	bad.EdgeMargin = -2
	if err := ValidateMaterialSheets([]MaterialSheet{bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative margin, got %v", err)
	}

	bad = NewMaterialSheet("Bad", 100, 100)
	bad.UsableArea = 120
	if err := ValidateMaterialSheets([]MaterialSheet{bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for usable area over 100, got %v", err)
	}
}

func TestValidateFeatures(t *testing.T) {
	good := []Feature{
		Hole{Center: Point2D{X: 5, Y: 5}, Diameter: 3},
		Line{Start: Point2D{}, End: Point2D{X: 10}},
	}
	if err := ValidateFeatures(good); err != nil {
		t.Errorf("unexpected error for valid features: %v", err)
	}

	if err := ValidateFeatures([]Feature{nil}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil feature, got %v", err)
	}
	if err := ValidateFeatures([]Feature{Hole{Diameter: 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero-diameter hole, got %v", err)
	}
	if err := ValidateFeatures([]Feature{Slot{Length: 10, Width: -1}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative slot width, got %v", err)
	}
	if err := ValidateFeatures([]Feature{Beam{Length: 0, Width: 5}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero-length beam, got %v", err)
	}
}

func TestDefaultNestOptions(t *testing.T) {
	o := DefaultNestOptions()
	if o.Algorithm != AlgorithmEfficiency {
		t.Errorf("expected efficiency default, got %s", o.Algorithm)
	}
	if !o.AllowRotation {
		t.Error("rotation should default on")
	}
	if o.MinimumSpacing != 2.0 {
		t.Errorf("expected 2mm default spacing, got %.1f", o.MinimumSpacing)
	}
}

func TestDefaultCostRates(t *testing.T) {
	r := DefaultCostRates()
	if r.HourlyRate != 45.0 {
		t.Errorf("expected hourly rate 45, got %.1f", r.HourlyRate)
	}
	if r.PerSheetCutMinutes != 15.0 {
		t.Errorf("expected 15 minutes per sheet, got %.1f", r.PerSheetCutMinutes)
	}
	if r.FeedRateMMPerMin != 600.0 {
		t.Errorf("expected 600 mm/min feed, got %.1f", r.FeedRateMMPerMin)
	}
}
