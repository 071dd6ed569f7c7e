package validate

import (
	"math"

	"github.com/makefab/lasernest/internal/catalog"
)

// referenceLoadNPerMM is the assumed uniform line load used for the span
// estimate: 0.5 N per mm of span, roughly a hand resting on a shelf-sized
// part. The estimate is a conservative sizing heuristic, not an engineering
// calculation; it exists so two runs over the same design always agree.
const referenceLoadNPerMM = 0.5

// maxSafeSpan returns the effective span ceiling in mm for a beam of the
// given width in the constraint set's material.
//
// The deflection bound treats the beam as a rectangular section with
// I = w*t^3/12 and solves 5*q*L^4/(384*E*I) <= t/100 / safetyFactor for L.
// Whichever is larger, this bound or the cataloged unsupported-span limit,
// becomes the ceiling, so the catalog value acts as a floor for stiff
// materials where the deflection model is overly pessimistic.
func maxSafeSpan(beamWidth float64, c catalog.ManufacturingConstraints) float64 {
	t := c.Material.Thickness
	e := c.Material.ElasticModulus // MPa == N/mm^2
	safety := c.Structural.SafetyFactor

	deflectionSpan := 0.0
	if t > 0 && e > 0 && beamWidth > 0 && safety > 0 {
		inertia := beamWidth * math.Pow(t, 3) / 12.0
		allow := (0.01 * t) / safety
		deflectionSpan = math.Pow(384.0*e*inertia*allow/(5.0*referenceLoadNPerMM), 0.25)
	}

	return math.Max(deflectionSpan, c.Structural.MaxSpanWithoutSupport)
}
