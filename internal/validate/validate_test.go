package validate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/makefab/lasernest/internal/catalog"
	"github.com/makefab/lasernest/internal/model"
)

func testConstraints(t *testing.T, material, machine, precision string) catalog.ManufacturingConstraints {
	t.Helper()
	c, err := catalog.New().ResolveConstraints(material, machine, precision)
	if err != nil {
		t.Fatalf("resolve constraints: %v", err)
	}
	return c
}

// ─── Hole Checks ───

func TestValidateUndersizedHole(t *testing.T) {
	c := testConstraints(t, "acrylic-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 50, Y: 50}, Diameter: 1.0},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsValid {
		t.Error("a 1.0mm hole in acrylic should not validate")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected exactly 1 violation, got %d: %v", len(result.Violations), result.Violations)
	}
	v := result.Violations[0]
	if v.Category != model.ViolationHoleSize || v.Severity != model.SeverityMedium {
		t.Errorf("expected medium hole-size violation, got %+v", v)
	}
	if result.Score != 97 {
		t.Errorf("expected score 97, got %d", result.Score)
	}
	if result.EstimatedSuccess != 80 {
		t.Errorf("expected 80%% success with one medium finding, got %d", result.EstimatedSuccess)
	}
	if len(result.Recommendations) == 0 || !strings.Contains(result.Recommendations[0], "hole") {
		t.Errorf("expected hole advice, got %v", result.Recommendations)
	}
}

func TestValidateAdequateHolePasses(t *testing.T) {
	c := testConstraints(t, "acrylic-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 50, Y: 50}, Diameter: 5.0},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid || len(result.Violations) != 0 {
		t.Errorf("a 5mm hole should pass, got %v", result.Violations)
	}
	if result.Score != 100 || result.EstimatedSuccess != 95 {
		t.Errorf("clean design should score 100/95, got %d/%d", result.Score, result.EstimatedSuccess)
	}
	if len(result.Recommendations) != 1 || !strings.Contains(result.Recommendations[0], "ready to cut") {
		t.Errorf("expected a ready-to-cut note, got %v", result.Recommendations)
	}
}

// ─── Structural Checks ───

func TestValidateBeamSpanTooLong(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Beam{Origin: model.Point2D{X: 0, Y: 0}, Length: 300, Width: 20},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsValid {
		t.Error("a 300mm unsupported span in 3mm plywood should fail")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	v := result.Violations[0]
	if v.Category != model.ViolationStructural || v.Severity != model.SeverityHigh {
		t.Errorf("expected high structural violation, got %+v", v)
	}
	if result.EstimatedSuccess != 60 {
		t.Errorf("expected 60%% success with one high finding, got %d", result.EstimatedSuccess)
	}
	// High-severity findings always add the stop advisory at the end.
	last := result.Recommendations[len(result.Recommendations)-1]
	if !strings.Contains(last, "high-severity") {
		t.Errorf("expected high-severity advisory, got %v", result.Recommendations)
	}
}

func TestValidateShortBeamPasses(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Beam{Origin: model.Point2D{X: 0, Y: 0}, Length: 100, Width: 20},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Errorf("100mm span is under the 120mm plywood-3mm limit: %v", result.Violations)
	}
}

func TestValidateCantileverLimit(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Cantilever{Origin: model.Point2D{X: 0, Y: 0}, Length: 60, Width: 20},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Error("a 60mm cantilever exceeds the 40mm plywood-3mm limit")
	}
	if result.Violations[0].Category != model.ViolationStructural {
		t.Errorf("expected structural violation, got %+v", result.Violations[0])
	}
}

func TestMaxSafeSpanNeverBelowCatalogFloor(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")

	if got := maxSafeSpan(20, c); got < c.Structural.MaxSpanWithoutSupport {
		t.Errorf("span ceiling %.1f fell below the cataloged %.1f floor",
			got, c.Structural.MaxSpanWithoutSupport)
	}
	// Degenerate width still returns the cataloged limit.
	if got := maxSafeSpan(0, c); got != c.Structural.MaxSpanWithoutSupport {
		t.Errorf("expected the cataloged floor for zero width, got %.1f", got)
	}
}

// ─── Spacing Checks ───

func TestValidateTightSpacing(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	// 0.2mm edge-to-edge, below the 0.30mm needed for a 0.15mm kerf.
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 5},
		model.Hole{Center: model.Point2D{X: 15.2, Y: 10}, Diameter: 5},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Violations) != 2 {
		t.Fatalf("both neighbors should be flagged, got %v", result.Violations)
	}
	for _, v := range result.Violations {
		if v.Category != model.ViolationFeatureSpacing || v.Severity != model.SeverityHigh {
			t.Errorf("expected high spacing violation, got %+v", v)
		}
	}
	if result.Score != 90 {
		t.Errorf("expected score 90 after two high findings, got %d", result.Score)
	}
	if result.EstimatedSuccess != 40 {
		t.Errorf("expected 40%% success, got %d", result.EstimatedSuccess)
	}
}

func TestValidateGenerousSpacingPasses(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 5},
		model.Hole{Center: model.Point2D{X: 30, Y: 10}, Diameter: 5},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Errorf("15mm apart is plenty for a 0.15mm kerf: %v", result.Violations)
	}
}

// ─── Kerf Checks ───

func TestValidateKerfDominatedFeature(t *testing.T) {
	// Constraints with a coarse kerf and no feature-size floor so the kerf
	// check is isolated.
	c := catalog.ManufacturingConstraints{
		MaterialKey: "test",
		Kerf:        catalog.KerfProperties{Width: 1.0},
		Structural:  catalog.StructuralLimits{SafetyFactor: 2.0},
	}
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 1.5},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", result.Violations)
	}
	v := result.Violations[0]
	if v.Category != model.ViolationKerf || v.Severity != model.SeverityLow {
		t.Errorf("expected low kerf violation, got %+v", v)
	}
	if result.Score != 99 {
		t.Errorf("low findings deduct 1 point, got score %d", result.Score)
	}
	// Low findings alone do not dent the success estimate.
	if result.EstimatedSuccess != 95 {
		t.Errorf("expected 95%% success, got %d", result.EstimatedSuccess)
	}
}

// ─── Dimensional and Material Checks ───

func TestValidateLongCutExceedsTier(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-100w", "high-precision")
	// 600mm diagonal against the 500mm high-precision single-cut limit.
	features := []model.Feature{
		model.Line{Start: model.Point2D{X: 0, Y: 0}, End: model.Point2D{X: 600, Y: 0}},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Category == model.ViolationDimensional {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a dimensional violation, got %v", result.Violations)
	}
}

func TestValidateNarrowSlot(t *testing.T) {
	c := testConstraints(t, "acrylic-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Slot{Origin: model.Point2D{X: 10, Y: 10}, Length: 20, Width: 1.0},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Category == model.ViolationMaterial && strings.Contains(v.Message, "slot") {
			found = true
		}
	}
	if !found {
		t.Errorf("a 1.0mm slot is below the 1.5mm acrylic minimum: %v", result.Violations)
	}
}

func TestValidateOutsideWorkArea(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 600, Y: 50}, Diameter: 10},
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, v := range result.Violations {
		if v.Category == model.ViolationMaterial && strings.Contains(v.Message, "work area") {
			found = true
		}
	}
	if !found {
		t.Errorf("a hole at x=600 is outside the 500x300 co2-40w bed: %v", result.Violations)
	}
}

// ─── Result Shape ───

func TestValidateDeterministic(t *testing.T) {
	c := testConstraints(t, "acrylic-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 50, Y: 50}, Diameter: 1.0},
		model.Beam{Origin: model.Point2D{X: 0, Y: 100}, Length: 200, Width: 20},
		model.Hole{Center: model.Point2D{X: 100, Y: 50}, Diameter: 5},
	}

	first, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical results")
	}
}

func TestValidateScoreFloorsAtZero(t *testing.T) {
	c := testConstraints(t, "acrylic-3mm", "co2-40w", "standard")
	// A crowd of undersized holes packed together racks up deductions well
	// past 100 points.
	var features []model.Feature
	for i := 0; i < 15; i++ {
		features = append(features, model.Hole{
			Center:   model.Point2D{X: float64(i) * 1.1, Y: 10},
			Diameter: 1.0,
		})
	}

	result, err := Validate(features, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("expected the score floored at 0, got %d", result.Score)
	}
	if result.EstimatedSuccess < 20 {
		t.Errorf("success estimate should never drop below 20, got %d", result.EstimatedSuccess)
	}
}

func TestValidateEmptyFeatureList(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")

	result, err := Validate(nil, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid || result.Score != 100 {
		t.Errorf("nothing to check means nothing wrong: %+v", result)
	}
}

// ─── Input Errors ───

func TestValidateRejectsMalformedFeature(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	features := []model.Feature{
		model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 0},
	}

	_, err := Validate(features, c)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a zero-diameter hole, got %v", err)
	}
}

func TestValidateRejectsNegativeKerf(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	c.Kerf.Width = -0.1

	_, err := Validate([]model.Feature{model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 5}}, c)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative kerf, got %v", err)
	}
}

func TestValidateRejectsBadSafetyFactor(t *testing.T) {
	c := testConstraints(t, "plywood-3mm", "co2-40w", "standard")
	c.Structural.SafetyFactor = 0

	_, err := Validate([]model.Feature{model.Hole{Center: model.Point2D{X: 10, Y: 10}, Diameter: 5}}, c)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero safety factor, got %v", err)
	}
}
