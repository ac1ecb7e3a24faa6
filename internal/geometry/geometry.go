// Package geometry holds the small set of 2D value types shared by the
// dimension observer, the beam calculator and the layout engine.
//
// All coordinates are in CSS pixels (or terminal micro-pixels in the preview)
// with the origin at the top-left corner and Y growing downwards.
package geometry

import (
	"math"
	"strconv"
)

// Point is a coordinate relative to some origin, usually a container's
// top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: p.X + (q.X-p.X)/2, Y: p.Y + (q.Y-p.Y)/2}
}

// Dimension is a rendered width and height. The zero value means "not yet
// measured".
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Max returns the larger of the two sides.
func (d Dimension) Max() float64 { return math.Max(d.Width, d.Height) }

// IsZero reports whether both sides are zero.
func (d Dimension) IsZero() bool { return d.Width == 0 && d.Height == 0 }

// Rect is an axis-aligned bounding box. X and Y are the top-left corner.
type Rect struct {
	X      float64 `json:"x" validate:"gte=-100000,lte=100000"`
	Y      float64 `json:"y" validate:"gte=-100000,lte=100000"`
	Width  float64 `json:"width" validate:"gte=0,lte=100000"`
	Height float64 `json:"height" validate:"gte=0,lte=100000"`
}

// RectFromSize builds a rectangle anchored at the origin.
func RectFromSize(d Dimension) Rect {
	return Rect{Width: d.Width, Height: d.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimension. Negative sides are clamped to zero.
func (r Rect) Size() Dimension {
	return Dimension{Width: math.Max(0, r.Width), Height: math.Max(0, r.Height)}
}

// Center returns the center point in the rectangle's own coordinate frame.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Relative expresses p in the frame whose origin is r's top-left corner.
func (r Rect) Relative(p Point) Point {
	return p.Sub(r.Origin())
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// FormatNumber renders v with the fewest digits that round-trip, which is
// also how a browser stringifies numbers inside a template literal.
func FormatNumber(v float64) string {
	if v == 0 {
		// avoids "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
