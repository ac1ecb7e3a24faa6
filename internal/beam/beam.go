// Package beam computes the curved connector drawn between two elements of a
// diagram. Compute is the pure geometry; Calculator keeps a beam current while
// the elements and their container move.
package beam

import (
	"fmt"
	"math"

	"github.com/nfrund/ytu/internal/geometry"
)

// Curve selects how curvature displaces the control point.
type Curve string

const (
	// CurveVertical lifts the control point straight up by the curvature.
	CurveVertical Curve = "vertical"
	// CurvePerpendicular pushes the control point along the left-hand
	// normal of the from→to direction.
	CurvePerpendicular Curve = "perpendicular"
)

// ParseCurve maps a configuration string to a Curve. The empty string is the
// vertical default.
func ParseCurve(s string) (Curve, error) {
	switch Curve(s) {
	case "", CurveVertical:
		return CurveVertical, nil
	case CurvePerpendicular:
		return CurvePerpendicular, nil
	}
	return "", fmt.Errorf("unknown curve mode %q", s)
}

// Options shape a beam.
type Options struct {
	// Curvature offsets the control point; 0 draws a straight line and
	// negative values bend the other way.
	Curvature float64
	// Reverse swaps the reported Start and End. The path is unaffected.
	Reverse bool
	Curve   Curve
}

// Geometry is a computed beam in container-relative coordinates.
type Geometry struct {
	Path          string             `json:"path"`
	Start         geometry.Point     `json:"start"`
	End           geometry.Point     `json:"end"`
	Control       geometry.Point     `json:"control"`
	ContainerSize geometry.Dimension `json:"containerSize"`
}

// Compute returns the beam between the centers of from and to, all three
// boxes given in the same (viewport) coordinate space.
func Compute(from, to, container geometry.Rect, opts Options) Geometry {
	start := container.Relative(from.Center())
	end := container.Relative(to.Center())
	control := ControlPoint(start, end, opts)

	g := Geometry{
		Path:          geometry.QuadBez{P0: start, P1: control, P2: end}.Path(),
		Start:         start,
		End:           end,
		Control:       control,
		ContainerSize: container.Size(),
	}
	if opts.Reverse {
		g.Start, g.End = g.End, g.Start
	}
	return g
}

// ControlPoint returns the quadratic control point for a beam from a to b.
func ControlPoint(a, b geometry.Point, opts Options) geometry.Point {
	mid := geometry.Midpoint(a, b)
	if opts.Curvature == 0 {
		return mid
	}
	if opts.Curve == CurvePerpendicular {
		d := b.Sub(a)
		n := math.Hypot(d.X, d.Y)
		if n == 0 {
			return mid
		}
		normal := geometry.Point{X: d.Y / n, Y: -d.X / n}
		return mid.Add(normal.Scale(opts.Curvature))
	}
	return geometry.Point{X: mid.X, Y: mid.Y - opts.Curvature}
}

// Bezier returns the curve of g, always oriented from the from-element to
// the to-element.
func (g Geometry) Bezier(reverse bool) geometry.QuadBez {
	start, end := g.Start, g.End
	if reverse {
		start, end = end, start
	}
	return geometry.QuadBez{P0: start, P1: g.Control, P2: end}
}
