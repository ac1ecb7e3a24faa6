// Package layout places learning-path nodes the way the rendered page does:
// a padded container holding a centered responsive grid of fixed-size cards.
package layout

import (
	"math"

	"github.com/nfrund/ytu/internal/geometry"
)

// Breakpoint switches the column count once the viewport is at least
// MinWidth wide.
type Breakpoint struct {
	MinWidth float64
	Columns  int
}

// Grid describes the container and its node grid.
type Grid struct {
	Padding     float64
	Gap         float64
	NodeWidth   float64
	NodeHeight  float64
	MinHeight   float64
	Breakpoints []Breakpoint
}

// Default matches the learning-path page styles.
func Default() Grid {
	return Grid{
		Padding:    24,
		Gap:        32,
		NodeWidth:  220,
		NodeHeight: 148,
		MinHeight:  500,
		Breakpoints: []Breakpoint{
			{MinWidth: 0, Columns: 1},
			{MinWidth: 640, Columns: 2},
			{MinWidth: 768, Columns: 3},
		},
	}
}

// Scaled returns g with every length multiplied by k.
func (g Grid) Scaled(k float64) Grid {
	s := g
	s.Padding *= k
	s.Gap *= k
	s.NodeWidth *= k
	s.NodeHeight *= k
	s.MinHeight *= k
	s.Breakpoints = make([]Breakpoint, len(g.Breakpoints))
	for i, bp := range g.Breakpoints {
		s.Breakpoints[i] = Breakpoint{MinWidth: bp.MinWidth * k, Columns: bp.Columns}
	}
	return s
}

// Columns returns the column count for a viewport width.
func (g Grid) Columns(viewport float64) int {
	cols := 1
	for _, bp := range g.Breakpoints {
		if viewport >= bp.MinWidth && bp.Columns > 0 {
			cols = bp.Columns
		}
	}
	return cols
}

// Placement is the result of laying out n nodes.
type Placement struct {
	Container geometry.Rect
	Nodes     []geometry.Rect
	Columns   int
	Rows      int
}

// Place lays out n nodes in a container whose top-left corner is origin and
// whose width is width. Nodes are placed row-major; the grid is centered in
// the container and the container grows to fit it.
func (g Grid) Place(origin geometry.Point, width, viewport float64, n int) Placement {
	cols := g.Columns(viewport)
	if n > 0 && cols > n {
		cols = n
	}
	rows := 0
	if n > 0 {
		rows = (n + cols - 1) / cols
	}

	inner := math.Max(0, width-2*g.Padding)
	cell := g.NodeWidth
	if full := float64(cols)*g.NodeWidth + float64(cols-1)*g.Gap; full > inner {
		cell = math.Max(0, (inner-float64(cols-1)*g.Gap)/float64(cols))
	}
	gridW := float64(cols)*cell + float64(cols-1)*g.Gap
	gridH := 0.0
	if rows > 0 {
		gridH = float64(rows)*g.NodeHeight + float64(rows-1)*g.Gap
	}

	height := math.Max(g.MinHeight, gridH+2*g.Padding)
	container := geometry.Rect{X: origin.X, Y: origin.Y, Width: width, Height: height}

	left := origin.X + (width-gridW)/2
	top := origin.Y + (height-gridH)/2

	nodes := make([]geometry.Rect, n)
	for i := range n {
		row, col := i/cols, i%cols
		nodes[i] = geometry.Rect{
			X:      left + float64(col)*(cell+g.Gap),
			Y:      top + float64(row)*(g.NodeHeight+g.Gap),
			Width:  cell,
			Height: g.NodeHeight,
		}
	}

	return Placement{Container: container, Nodes: nodes, Columns: cols, Rows: rows}
}
