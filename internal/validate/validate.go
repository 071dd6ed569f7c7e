// Package validate checks parsed design geometry against a resolved
// manufacturing constraint set. A bad design is never an error: every
// finding comes back as a Violation inside the ValidationResult. Only
// structurally malformed input (negative dimensions, nil features) is
// reported through model.ErrInvalidInput.
package validate

import (
	"fmt"
	"math"

	"github.com/makefab/lasernest/internal/catalog"
	"github.com/makefab/lasernest/internal/model"
)

// Validate runs every manufacturability check for the given features and
// returns the aggregated verdict. For fixed inputs the result is always
// identical: features are processed in input order and each check emits in
// a fixed sequence.
func Validate(features []model.Feature, c catalog.ManufacturingConstraints) (model.ValidationResult, error) {
	if err := model.ValidateFeatures(features); err != nil {
		return model.ValidationResult{}, err
	}
	if err := checkConstraints(c); err != nil {
		return model.ValidationResult{}, err
	}

	var violations []model.Violation
	for i, f := range features {
		violations = append(violations, checkFeatureSize(f, c)...)
		violations = append(violations, checkHoleSize(f, c)...)
		violations = append(violations, checkSpacing(i, features, c)...)
		violations = append(violations, checkStructural(f, c)...)
		violations = append(violations, checkKerf(f, c)...)
		violations = append(violations, checkDimensionalLimits(f, c)...)
		violations = append(violations, checkMaterialLimits(f, c)...)
	}

	result := model.ValidationResult{
		IsValid:    len(violations) == 0,
		Violations: violations,
	}
	result.Score = score(violations)
	result.EstimatedSuccess = estimateSuccess(result)
	result.Recommendations = recommendations(result, c)
	return result, nil
}

// checkConstraints rejects malformed constraint sets up front.
func checkConstraints(c catalog.ManufacturingConstraints) error {
	if c.Kerf.Width < 0 || c.Kerf.Variation < 0 {
		return fmt.Errorf("%w: negative kerf in constraints for %q", model.ErrInvalidInput, c.MaterialKey)
	}
	if c.Material.MinFeatureSize < 0 || c.Material.MinHoleSize < 0 || c.Material.Thickness < 0 {
		return fmt.Errorf("%w: negative material limits for %q", model.ErrInvalidInput, c.MaterialKey)
	}
	if c.Structural.SafetyFactor <= 0 {
		return fmt.Errorf("%w: non-positive safety factor for %q", model.ErrInvalidInput, c.MaterialKey)
	}
	return nil
}

// checkFeatureSize flags features smaller than the material's minimum
// cuttable feature size.
func checkFeatureSize(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	min := c.Material.MinFeatureSize
	if min <= 0 || f.MinDimension() >= min {
		return nil
	}
	return []model.Violation{{
		Category: model.ViolationFeatureSize,
		Severity: model.SeverityHigh,
		Message: fmt.Sprintf("%s is %.2fmm across, below the %.2fmm minimum for %s",
			f.Kind(), f.MinDimension(), min, c.MaterialKey),
		Bounds:       f.Bounds(),
		SuggestedFix: fmt.Sprintf("enlarge the %s to at least %.2fmm", f.Kind(), min),
	}}
}

// checkHoleSize flags holes below the material's minimum hole diameter.
func checkHoleSize(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	hole, ok := f.(model.Hole)
	if !ok {
		return nil
	}
	min := c.Material.MinHoleSize
	if min <= 0 || hole.Diameter >= min {
		return nil
	}
	return []model.Violation{{
		Category: model.ViolationHoleSize,
		Severity: model.SeverityMedium,
		Message: fmt.Sprintf("hole diameter %.2fmm is below the %.2fmm minimum for %s",
			hole.Diameter, min, c.MaterialKey),
		Bounds:       hole.Bounds(),
		SuggestedFix: fmt.Sprintf("increase the hole diameter to at least %.2fmm", min),
	}}
}

// checkSpacing flags the feature when its nearest neighbor sits closer than
// twice the kerf width. Neighbor candidates are features within three kerf
// widths edge to edge.
func checkSpacing(i int, features []model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	kerf := c.Kerf.Width
	if kerf <= 0 {
		return nil
	}

	bounds := features[i].Bounds()
	nearest := math.Inf(1)
	for j, other := range features {
		if j == i {
			continue
		}
		gap := bounds.Gap(other.Bounds())
		if gap <= 3*kerf && gap < nearest {
			nearest = gap
		}
	}

	if math.IsInf(nearest, 1) || nearest >= 2*kerf {
		return nil
	}
	return []model.Violation{{
		Category: model.ViolationFeatureSpacing,
		Severity: model.SeverityHigh,
		Message: fmt.Sprintf("%s is %.2fmm from its nearest neighbor, below the %.2fmm needed for a %.2fmm kerf",
			features[i].Kind(), nearest, 2*kerf, kerf),
		Bounds:       bounds,
		SuggestedFix: fmt.Sprintf("move features at least %.2fmm apart", 2*kerf),
	}}
}

// checkStructural applies the span ceiling to beams and the cantilever
// limit to cantilevers.
func checkStructural(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	switch v := f.(type) {
	case model.Beam:
		ceiling := maxSafeSpan(v.Width, c)
		if v.Length <= ceiling {
			return nil
		}
		return []model.Violation{{
			Category: model.ViolationStructural,
			Severity: model.SeverityHigh,
			Message: fmt.Sprintf("beam span %.1fmm exceeds the %.1fmm safe limit for %s",
				v.Length, ceiling, c.MaterialKey),
			Bounds:       v.Bounds(),
			SuggestedFix: fmt.Sprintf("shorten the span to %.0fmm or add a support", ceiling),
		}}
	case model.Cantilever:
		limit := c.Structural.MaxCantileverLength
		if limit <= 0 || v.Length <= limit {
			return nil
		}
		return []model.Violation{{
			Category: model.ViolationStructural,
			Severity: model.SeverityHigh,
			Message: fmt.Sprintf("cantilever %.1fmm exceeds the %.1fmm limit for %s",
				v.Length, limit, c.MaterialKey),
			Bounds:       v.Bounds(),
			SuggestedFix: fmt.Sprintf("shorten the cantilever to %.0fmm or anchor its free end", limit),
		}}
	default:
		return nil
	}
}

// checkKerf flags features so narrow the kerf consumes a large share of
// them. Cutting removes kerf width of material on each pass, so anything
// under two kerf widths loses a significant fraction of its body.
func checkKerf(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	kerf := c.Kerf.Width
	if kerf <= 0 || f.MinDimension() >= 2*kerf {
		return nil
	}
	return []model.Violation{{
		Category: model.ViolationKerf,
		Severity: model.SeverityLow,
		Message: fmt.Sprintf("%s is %.2fmm across; a %.2fmm kerf removes a large share of it",
			f.Kind(), f.MinDimension(), kerf),
		Bounds:       f.Bounds(),
		SuggestedFix: fmt.Sprintf("keep features above %.2fmm or enable kerf compensation", 2*kerf),
	}}
}

// checkDimensionalLimits enforces the precision tier's single-cut length
// and corner radius floors where the feature exposes them.
func checkDimensionalLimits(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	var violations []model.Violation
	d := c.Dimensional

	if d.MaxCutLength > 0 {
		var cutLen float64
		switch v := f.(type) {
		case model.Line:
			cutLen = math.Hypot(v.End.X-v.Start.X, v.End.Y-v.Start.Y)
		case model.Curve:
			cutLen = v.Points.Perimeter()
		}
		if cutLen > d.MaxCutLength {
			violations = append(violations, model.Violation{
				Category: model.ViolationDimensional,
				Severity: model.SeverityMedium,
				Message: fmt.Sprintf("cut length %.0fmm exceeds the %.0fmm single-cut limit for the %s tier",
					cutLen, d.MaxCutLength, c.PrecisionKey),
				Bounds:       f.Bounds(),
				SuggestedFix: "split the path into shorter cuts",
			})
		}
	}

	if hole, ok := f.(model.Hole); ok && d.MinCornerRadius > 0 && hole.Diameter/2 < d.MinCornerRadius {
		violations = append(violations, model.Violation{
			Category: model.ViolationDimensional,
			Severity: model.SeverityMedium,
			Message: fmt.Sprintf("hole radius %.2fmm is below the %.2fmm minimum radius for the %s tier",
				hole.Diameter/2, d.MinCornerRadius, c.PrecisionKey),
			Bounds:       hole.Bounds(),
			SuggestedFix: fmt.Sprintf("use a radius of at least %.2fmm", d.MinCornerRadius),
		})
	}

	return violations
}

// checkMaterialLimits enforces slot width, aspect ratio, and machine work
// area bounds.
func checkMaterialLimits(f model.Feature, c catalog.ManufacturingConstraints) []model.Violation {
	var violations []model.Violation

	if slot, ok := f.(model.Slot); ok && c.Material.MinSlotWidth > 0 && slot.Width < c.Material.MinSlotWidth {
		violations = append(violations, model.Violation{
			Category: model.ViolationMaterial,
			Severity: model.SeverityMedium,
			Message: fmt.Sprintf("slot width %.2fmm is below the %.2fmm minimum for %s",
				slot.Width, c.Material.MinSlotWidth, c.MaterialKey),
			Bounds:       slot.Bounds(),
			SuggestedFix: fmt.Sprintf("widen the slot to at least %.2fmm", c.Material.MinSlotWidth),
		})
	}

	if c.Material.MaxAspectRatio > 0 {
		b := f.Bounds()
		if b.MinDimension() > 0 {
			ratio := b.MaxDimension() / b.MinDimension()
			if ratio > c.Material.MaxAspectRatio {
				violations = append(violations, model.Violation{
					Category: model.ViolationMaterial,
					Severity: model.SeverityMedium,
					Message: fmt.Sprintf("%s aspect ratio %.1f exceeds the %.1f limit for %s",
						f.Kind(), ratio, c.Material.MaxAspectRatio, c.MaterialKey),
					Bounds:       b,
					SuggestedFix: "widen the feature or break it into shorter segments",
				})
			}
		}
	}

	if c.Machine.WorkAreaWidth > 0 && c.Machine.WorkAreaHeight > 0 {
		b := f.Bounds()
		if b.X < 0 || b.Y < 0 || b.X+b.W > c.Machine.WorkAreaWidth || b.Y+b.H > c.Machine.WorkAreaHeight {
			violations = append(violations, model.Violation{
				Category: model.ViolationMaterial,
				Severity: model.SeverityMedium,
				Message: fmt.Sprintf("%s extends outside the %.0fx%.0fmm work area of %s",
					f.Kind(), c.Machine.WorkAreaWidth, c.Machine.WorkAreaHeight, c.MachineKey),
				Bounds:       b,
				SuggestedFix: "move the feature inside the machine work area",
			})
		}
	}

	return violations
}
