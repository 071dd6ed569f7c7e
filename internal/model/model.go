package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidInput reports structurally malformed geometry or part/sheet
// records, such as negative dimensions or a zero quantity. Design-quality
// findings are never reported through this error; they come back as
// Violations or unplaced parts.
var ErrInvalidInput = errors.New("invalid input")

func errInvalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// PartShape represents one nestable part to be cut.
type PartShape struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Outline  Outline `json:"outline,omitempty"` // Non-rectangular source geometry; nil for rectangles
	Width    float64 `json:"width"`             // mm (bounding box width for outline parts)
	Height   float64 `json:"height"`            // mm (bounding box height for outline parts)
	Quantity int     `json:"quantity"`
	Rotation float64 `json:"rotation"` // Preferred rotation in degrees
	Priority int     `json:"priority"` // 1 (lowest) to 10 (highest)

	Material  string  `json:"material"`  // Material type, e.g. "plywood"
	Thickness float64 `json:"thickness"` // mm
}

// NewPartShape creates a PartShape with a generated ID and default priority.
func NewPartShape(name string, w, h float64, qty int) PartShape {
	return PartShape{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    w,
		Height:   h,
		Quantity: qty,
		Priority: 5,
	}
}

// PartArea returns the area of a single instance of the part in square mm.
// Outline parts use their polygon area; rectangles use width x height.
func (p PartShape) PartArea() float64 {
	if len(p.Outline) >= 3 {
		return p.Outline.Area()
	}
	return p.Width * p.Height
}

// CutLength returns the cut path length for a single instance in mm.
func (p PartShape) CutLength() float64 {
	if len(p.Outline) >= 2 {
		return p.Outline.Perimeter()
	}
	return 2 * (p.Width + p.Height)
}

// MaterialSheet represents one candidate stock sheet.
type MaterialSheet struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Width        float64 `json:"width"`  // mm
	Height       float64 `json:"height"` // mm
	Thickness    float64 `json:"thickness"`
	Material     string  `json:"material"`
	CostPerSheet float64 `json:"cost_per_sheet"`
	UsableArea   float64 `json:"usable_area"` // Percent of the sheet free of defects (0-100)
	EdgeMargin   float64 `json:"edge_margin"` // mm kept clear around all edges
}

// NewMaterialSheet creates a MaterialSheet with a generated ID and a fully
// usable surface.
func NewMaterialSheet(name string, w, h float64) MaterialSheet {
	return MaterialSheet{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Width:      w,
		Height:     h,
		UsableArea: 100,
	}
}

// SheetArea returns the raw sheet area in square mm.
func (s MaterialSheet) SheetArea() float64 {
	return s.Width * s.Height
}

// Algorithm selects the nesting strategy.
type Algorithm string

const (
	// AlgorithmSpeed is the deterministic shelf packer. It is the baseline
	// every build carries and the fallback for unknown algorithm values.
	AlgorithmSpeed Algorithm = "speed"
	// AlgorithmEfficiency is the guillotine maximal-rectangles packer.
	AlgorithmEfficiency Algorithm = "efficiency"
	// AlgorithmMinimalWaste is the genetic meta-heuristic packer.
	AlgorithmMinimalWaste Algorithm = "minimal_waste"
)

// NestOptions controls a single nesting run.
type NestOptions struct {
	Algorithm       Algorithm `json:"algorithm"`
	AllowRotation   bool      `json:"allow_rotation"`
	MinimumSpacing  float64   `json:"minimum_spacing"`  // mm between adjacent parts
	PrioritizeOrder bool      `json:"prioritize_order"` // Place high-priority parts first
	Visualize       bool      `json:"visualize"`        // Attach a layout drawing to the result
}

// DefaultNestOptions returns the options used when the caller does not care.
func DefaultNestOptions() NestOptions {
	return NestOptions{
		Algorithm:      AlgorithmEfficiency,
		AllowRotation:  true,
		MinimumSpacing: 2.0,
	}
}

// CostRates holds the shop rates used for cost accounting.
type CostRates struct {
	HourlyRate         float64 `json:"hourly_rate"`           // Labor cost per hour
	PerSheetCutMinutes float64 `json:"per_sheet_cut_minutes"` // Setup plus handling per sheet
	FeedRateMMPerMin   float64 `json:"feed_rate_mm_per_min"`  // Cutting speed for time estimates
}

// DefaultCostRates returns typical small-shop laser rates.
func DefaultCostRates() CostRates {
	return CostRates{
		HourlyRate:         45.0,
		PerSheetCutMinutes: 15.0,
		FeedRateMMPerMin:   600.0,
	}
}

// ValidatePartShapes checks that all parts are structurally well formed.
func ValidatePartShapes(parts []PartShape) error {
	for _, p := range parts {
		if p.Width <= 0 || p.Height <= 0 {
			return errInvalidf("part %q has non-positive dimensions %.2fx%.2f", p.Name, p.Width, p.Height)
		}
		if p.Quantity <= 0 {
			return errInvalidf("part %q has non-positive quantity %d", p.Name, p.Quantity)
		}
	}
	return nil
}

// ValidateMaterialSheets checks that all sheets are structurally well formed.
func ValidateMaterialSheets(sheets []MaterialSheet) error {
	for _, s := range sheets {
		if s.Width <= 0 || s.Height <= 0 {
			return errInvalidf("sheet %q has non-positive dimensions %.2fx%.2f", s.Name, s.Width, s.Height)
		}
		if s.EdgeMargin < 0 {
			return errInvalidf("sheet %q has negative edge margin %.2f", s.Name, s.EdgeMargin)
		}
		if s.UsableArea < 0 || s.UsableArea > 100 {
			return errInvalidf("sheet %q has usable area %.1f%% outside 0-100", s.Name, s.UsableArea)
		}
	}
	return nil
}

// ValidateFeatures checks that all features are structurally well formed.
func ValidateFeatures(features []Feature) error {
	for i, f := range features {
		if f == nil {
			return errInvalidf("feature %d is nil", i)
		}
		b := f.Bounds()
		if b.W < 0 || b.H < 0 {
			return errInvalidf("feature %d (%s) has negative bounds %.2fx%.2f", i, f.Kind(), b.W, b.H)
		}
		switch v := f.(type) {
		case Hole:
			if v.Diameter <= 0 {
				return errInvalidf("feature %d (hole) has non-positive diameter %.2f", i, v.Diameter)
			}
		case Slot:
			if v.Length <= 0 || v.Width <= 0 {
				return errInvalidf("feature %d (slot) has non-positive size %.2fx%.2f", i, v.Length, v.Width)
			}
		case Beam:
			if v.Length <= 0 || v.Width <= 0 {
				return errInvalidf("feature %d (beam) has non-positive size %.2fx%.2f", i, v.Length, v.Width)
			}
		case Cantilever:
			if v.Length <= 0 || v.Width <= 0 {
				return errInvalidf("feature %d (cantilever) has non-positive size %.2fx%.2f", i, v.Length, v.Width)
			}
		case Joint:
			if v.Width <= 0 || v.Depth <= 0 {
				return errInvalidf("feature %d (joint) has non-positive size %.2fx%.2f", i, v.Width, v.Depth)
			}
		}
	}
	return nil
}
