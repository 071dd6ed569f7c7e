package model

import "math"

// FeatureKind identifies the variant of a parsed design feature.
type FeatureKind string

const (
	FeatureLine       FeatureKind = "line"
	FeatureCurve      FeatureKind = "curve"
	FeatureHole       FeatureKind = "hole"
	FeatureSlot       FeatureKind = "slot"
	FeatureBeam       FeatureKind = "beam"
	FeatureCantilever FeatureKind = "cantilever"
	FeatureJoint      FeatureKind = "joint"
)

// Feature is one unit of parsed design geometry. Each variant carries the
// dimensions that are meaningful for its kind, so a Hole always has a
// diameter and a Beam always has a length and width.
type Feature interface {
	Kind() FeatureKind
	// Bounds returns the feature's bounding box on the design canvas.
	Bounds() Rect
	// MinDimension returns the smallest cut dimension of the feature.
	MinDimension() float64
	// Area returns the enclosed area in square mm, or zero for open paths.
	Area() float64
}

// Line is an open straight cut segment.
type Line struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

func (l Line) Kind() FeatureKind { return FeatureLine }

func (l Line) Bounds() Rect {
	return Outline{l.Start, l.End}.Bounds()
}

func (l Line) MinDimension() float64 {
	return l.Bounds().MaxDimension()
}

func (l Line) Area() float64 { return 0 }

// Curve is an open curved cut path, stored as a flattened polyline.
type Curve struct {
	Points Outline `json:"points"`
}

func (c Curve) Kind() FeatureKind { return FeatureCurve }

func (c Curve) Bounds() Rect { return c.Points.Bounds() }

func (c Curve) MinDimension() float64 {
	return c.Bounds().MaxDimension()
}

func (c Curve) Area() float64 { return 0 }

// Hole is a circular cutout.
type Hole struct {
	Center   Point2D `json:"center"`
	Diameter float64 `json:"diameter"`
}

func (h Hole) Kind() FeatureKind { return FeatureHole }

func (h Hole) Bounds() Rect {
	r := h.Diameter / 2
	return Rect{X: h.Center.X - r, Y: h.Center.Y - r, W: h.Diameter, H: h.Diameter}
}

func (h Hole) MinDimension() float64 { return h.Diameter }

func (h Hole) Area() float64 {
	r := h.Diameter / 2
	return math.Pi * r * r
}

// Slot is an elongated cutout with a length and a nominal width.
type Slot struct {
	Origin Point2D `json:"origin"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	// Vertical indicates the slot runs along the Y axis.
	Vertical bool `json:"vertical"`
}

func (s Slot) Kind() FeatureKind { return FeatureSlot }

func (s Slot) Bounds() Rect {
	if s.Vertical {
		return Rect{X: s.Origin.X, Y: s.Origin.Y, W: s.Width, H: s.Length}
	}
	return Rect{X: s.Origin.X, Y: s.Origin.Y, W: s.Length, H: s.Width}
}

func (s Slot) MinDimension() float64 { return s.Width }

func (s Slot) Area() float64 { return s.Length * s.Width }

// Beam is a load-bearing strip of material supported at both ends.
type Beam struct {
	Origin Point2D `json:"origin"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

func (b Beam) Kind() FeatureKind { return FeatureBeam }

func (b Beam) Bounds() Rect {
	return Rect{X: b.Origin.X, Y: b.Origin.Y, W: b.Length, H: b.Width}
}

func (b Beam) MinDimension() float64 { return b.Width }

func (b Beam) Area() float64 { return b.Length * b.Width }

// Cantilever is a strip of material supported at one end only.
type Cantilever struct {
	Origin Point2D `json:"origin"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

func (c Cantilever) Kind() FeatureKind { return FeatureCantilever }

func (c Cantilever) Bounds() Rect {
	return Rect{X: c.Origin.X, Y: c.Origin.Y, W: c.Length, H: c.Width}
}

func (c Cantilever) MinDimension() float64 { return c.Width }

func (c Cantilever) Area() float64 { return c.Length * c.Width }

// JointFit selects one of the three stored fit tolerances of a material.
type JointFit string

const (
	FitPress   JointFit = "press"
	FitLoose   JointFit = "loose"
	FitSliding JointFit = "sliding"
)

// Joint is a mating feature such as a finger or tab-and-slot connection.
type Joint struct {
	Origin Point2D  `json:"origin"`
	Width  float64  `json:"width"`
	Depth  float64  `json:"depth"`
	Fit    JointFit `json:"fit"`
}

func (j Joint) Kind() FeatureKind { return FeatureJoint }

func (j Joint) Bounds() Rect {
	return Rect{X: j.Origin.X, Y: j.Origin.Y, W: j.Width, H: j.Depth}
}

func (j Joint) MinDimension() float64 { return j.Width }

func (j Joint) Area() float64 { return j.Width * j.Depth }
