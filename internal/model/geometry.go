package model

import "math"

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box in mm.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the rectangle area in square mm.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// MinDimension returns the shorter side of the rectangle.
func (r Rect) MinDimension() float64 {
	return math.Min(r.W, r.H)
}

// MaxDimension returns the longer side of the rectangle.
func (r Rect) MaxDimension() float64 {
	return math.Max(r.W, r.H)
}

// Gap returns the edge-to-edge distance between two rectangles.
// Overlapping or touching rectangles have a gap of zero.
func (r Rect) Gap(other Rect) float64 {
	dx := math.Max(math.Abs(r.Center().X-other.Center().X)-(r.W+other.W)/2, 0)
	dy := math.Max(math.Abs(r.Center().Y-other.Center().Y)-(r.H+other.H)/2, 0)
	if dx > 0 && dy > 0 {
		return math.Hypot(dx, dy)
	}
	return math.Max(dx, dy)
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Bounds returns the bounding box of the outline as a Rect.
func (o Outline) Bounds() Rect {
	min, max := o.BoundingBox()
	return Rect{X: min.X, Y: min.Y, W: max.X - min.X, H: max.Y - min.Y}
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Rotate rotates the outline around its centroid by the given angle in radians
// and translates the result so its bounding box starts at the origin.
func (o Outline) Rotate(angle float64) Outline {
	if len(o) == 0 {
		return o
	}
	c := o.Centroid()
	sin, cos := math.Sincos(angle)
	result := make(Outline, len(o))
	for i, p := range o {
		dx := p.X - c.X
		dy := p.Y - c.Y
		result[i] = Point2D{
			X: c.X + dx*cos - dy*sin,
			Y: c.Y + dx*sin + dy*cos,
		}
	}
	min, _ := result.BoundingBox()
	return result.Translate(-min.X, -min.Y)
}

// SignedArea returns the signed area of the polygon (shoelace formula).
// Positive for counter-clockwise winding, negative for clockwise.
func (o Outline) SignedArea() float64 {
	if len(o) < 3 {
		return 0
	}
	var sum float64
	for i, p := range o {
		q := o[(i+1)%len(o)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the absolute polygon area in square mm.
func (o Outline) Area() float64 {
	return math.Abs(o.SignedArea())
}

// Perimeter returns the closed path length of the outline in mm.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var sum float64
	for i, p := range o {
		q := o[(i+1)%len(o)]
		sum += math.Hypot(q.X-p.X, q.Y-p.Y)
	}
	return sum
}

// Centroid returns the average of the outline's vertices.
func (o Outline) Centroid() Point2D {
	if len(o) == 0 {
		return Point2D{}
	}
	var c Point2D
	for _, p := range o {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(o))
	c.Y /= float64(len(o))
	return c
}

// RectOutline builds a rectangular outline with the given origin and size.
func RectOutline(x, y, w, h float64) Outline {
	return Outline{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}
