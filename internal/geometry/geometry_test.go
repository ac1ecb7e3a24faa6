package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		150:    "150",
		-50:    "-50",
		200.5:  "200.5",
		1.0 / 4: "0.25",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "input %v", in)
	}
}

func TestRectCenterAndRelative(t *testing.T) {
	container := Rect{X: 100, Y: 40, Width: 400, Height: 300}
	node := Rect{X: 120, Y: 60, Width: 60, Height: 20}

	assert.Equal(t, Point{X: 150, Y: 70}, node.Center())
	assert.Equal(t, Point{X: 50, Y: 30}, container.Relative(node.Center()))
	assert.True(t, container.Contains(node.Center()))
	assert.False(t, container.Contains(Point{X: 0, Y: 0}))
}

func TestRectSizeClampsNegativeSides(t *testing.T) {
	assert.Equal(t, Dimension{Width: 0, Height: 5}, Rect{Width: -3, Height: 5}.Size())
}

func TestQuadBezPath(t *testing.T) {
	q := QuadBez{P0: Point{50, 150}, P1: Point{200, 100}, P2: Point{350, 150}}
	assert.Equal(t, "M50,150 Q200,100 350,150", q.Path())
}

func TestQuadBezEvalEndpoints(t *testing.T) {
	q := QuadBez{P0: Point{0, 0}, P1: Point{50, -50}, P2: Point{100, 0}}

	assert.Equal(t, q.P0, q.Eval(0))
	assert.Equal(t, q.P2, q.Eval(1))
	assert.Equal(t, Point{X: 50, Y: -25}, q.Eval(0.5))

	pts := q.Sample(4)
	assert.Len(t, pts, 5)
	assert.Equal(t, q.P2, pts[4])
}

func TestQuadBezStraightLineLength(t *testing.T) {
	q := QuadBez{P0: Point{0, 0}, P1: Point{50, 0}, P2: Point{100, 0}}
	assert.InDelta(t, 100, q.ApproxLength(), 1e-9)
}
