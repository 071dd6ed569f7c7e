package validate

import (
	"math"

	"github.com/makefab/lasernest/internal/catalog"
	"github.com/makefab/lasernest/internal/model"
)

// Compensate offsets a closed outline to account for kerf. Inside shrinks
// the path by half the kerf width (for holes and slots, where the laser eats
// into the surrounding material), outside grows it (for part perimeters),
// and center or none leaves the path untouched.
//
// This is a true polygon offset with mitered corners, not a bounding-box
// scale: every edge is shifted along its outward normal and adjacent offset
// edges are re-intersected, so non-rectangular outlines keep their shape.
func Compensate(outline model.Outline, mode catalog.CompensationMode, kerfWidth float64) model.Outline {
	switch mode {
	case catalog.CompensationInside:
		return offsetPolygon(outline, -kerfWidth/2)
	case catalog.CompensationOutside:
		return offsetPolygon(outline, kerfWidth/2)
	default:
		out := make(model.Outline, len(outline))
		copy(out, outline)
		return out
	}
}

// offsetPolygon shifts every edge of a closed polygon by dist along its
// outward normal and rebuilds the vertices from the intersections of
// adjacent offset edges. Positive dist grows the polygon, negative shrinks.
func offsetPolygon(outline model.Outline, dist float64) model.Outline {
	n := len(outline)
	if n < 3 || dist == 0 {
		out := make(model.Outline, n)
		copy(out, outline)
		return out
	}

	// Outward depends on winding: for counter-clockwise polygons the
	// outward normal of edge (p->q) is (dy, -dx).
	sign := 1.0
	if outline.SignedArea() < 0 {
		sign = -1.0
	}

	type line struct {
		px, py float64 // point on the offset line
		dx, dy float64 // direction
	}
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		p := outline[i]
		q := outline[(i+1)%n]
		dx := q.X - p.X
		dy := q.Y - p.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			// Degenerate edge; reuse the previous direction
			if i > 0 {
				lines[i] = lines[i-1]
				continue
			}
			dx, dy, length = 1, 0, 1
		}
		nx := sign * dy / length
		ny := sign * -dx / length
		lines[i] = line{
			px: p.X + nx*dist,
			py: p.Y + ny*dist,
			dx: dx,
			dy: dy,
		}
	}

	const parallelEps = 1e-9
	result := make(model.Outline, n)
	for i := 0; i < n; i++ {
		prev := lines[(i+n-1)%n]
		cur := lines[i]

		// Intersect prev and cur offset lines; the solution replaces vertex i.
		denom := prev.dx*cur.dy - prev.dy*cur.dx
		if math.Abs(denom) < parallelEps {
			// Nearly collinear edges: offset the original vertex directly.
			length := math.Hypot(cur.dx, cur.dy)
			nx := sign * cur.dy / length
			ny := sign * -cur.dx / length
			result[i] = model.Point2D{X: outline[i].X + nx*dist, Y: outline[i].Y + ny*dist}
			continue
		}
		t := ((cur.px-prev.px)*cur.dy - (cur.py-prev.py)*cur.dx) / denom
		result[i] = model.Point2D{
			X: prev.px + prev.dx*t,
			Y: prev.py + prev.dy*t,
		}
	}
	return result
}

// JointTolerance returns the clearance in mm to apply to a mating joint:
// the material's stored tolerance for the fit class plus the kerf width and
// its variation, since both eat into the mating surfaces.
func JointTolerance(mat catalog.MaterialProperties, kerf catalog.KerfProperties, fit model.JointFit) float64 {
	var base float64
	switch fit {
	case model.FitPress:
		base = mat.PressFitTolerance
	case model.FitSliding:
		base = mat.SlidingFitTolerance
	default:
		base = mat.LooseFitTolerance
	}
	return base + kerf.Width + kerf.Variation
}
