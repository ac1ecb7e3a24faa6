package geometry

import (
	"math"
	"strings"
)

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns the point on the curve at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*q.P0.X + b*q.P1.X + c*q.P2.X,
		Y: a*q.P0.Y + b*q.P1.Y + c*q.P2.Y,
	}
}

// Sample returns n+1 evenly spaced points along the curve, including both
// ends. n below 1 is treated as 1.
func (q QuadBez) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, q.Eval(float64(i)/float64(n)))
	}
	return pts
}

// ApproxLength estimates the arc length by summing chord lengths.
func (q QuadBez) ApproxLength() float64 {
	pts := q.Sample(32)
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}

// Path renders the curve as an SVG path command string:
//
//	M{x0},{y0} Q{x1},{y1} {x2},{y2}
func (q QuadBez) Path() string {
	var b strings.Builder
	b.Grow(48)
	b.WriteByte('M')
	writePoint(&b, q.P0)
	b.WriteString(" Q")
	writePoint(&b, q.P1)
	b.WriteByte(' ')
	writePoint(&b, q.P2)
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatNumber(p.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(p.Y))
}
