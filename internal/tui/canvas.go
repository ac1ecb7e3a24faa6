package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/ytu/internal/geometry"
)

// Ink selects the style of a cell. Later strokes win.
type Ink uint8

const (
	InkNone Ink = iota
	InkNode
	InkBeam
	InkMarker
	InkLabel
)

// Canvas is a braille drawing surface: every terminal cell holds 2x4
// micro-pixels.
type Canvas struct {
	w, h   int // in cells
	mask   [][]uint8
	ink    [][]Ink
	labels [][]rune
}

// NewCanvas creates a canvas of w x h cells.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{w: w, h: h}
	c.mask = make([][]uint8, h)
	c.ink = make([][]Ink, h)
	c.labels = make([][]rune, h)
	for i := range h {
		c.mask[i] = make([]uint8, w)
		c.ink[i] = make([]Ink, w)
		c.labels[i] = make([]rune, w)
	}
	return c
}

// MicroSize is the canvas size in micro-pixels.
func (c *Canvas) MicroSize() (int, int) { return c.w * 2, c.h * 4 }

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Set lights one micro-pixel. Points outside the canvas are ignored.
func (c *Canvas) Set(mx, my int, ink Ink) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.mask[cy][cx] |= brailleBits[mx%2][my%4]
	c.ink[cy][cx] = ink
}

// Line draws a straight line between two micro-pixels using Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int, ink Ink) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect outlines r, given in micro-pixels.
func (c *Canvas) Rect(r geometry.Rect, ink Ink) {
	x0, y0 := round(r.X), round(r.Y)
	x1, y1 := round(r.X+r.Width)-1, round(r.Y+r.Height)-1
	if x1 < x0 || y1 < y0 {
		return
	}
	c.Line(x0, y0, x1, y0, ink)
	c.Line(x1, y0, x1, y1, ink)
	c.Line(x1, y1, x0, y1, ink)
	c.Line(x0, y1, x0, y0, ink)
}

// Curve draws a quadratic curve as a polyline of steps segments.
func (c *Canvas) Curve(q geometry.QuadBez, steps int, ink Ink) {
	pts := q.Sample(steps)
	for i := 1; i < len(pts); i++ {
		c.Line(round(pts[i-1].X), round(pts[i-1].Y), round(pts[i].X), round(pts[i].Y), ink)
	}
}

// Dot draws a 2x2 micro-pixel block centered on p.
func (c *Canvas) Dot(p geometry.Point, ink Ink) {
	x, y := round(p.X), round(p.Y)
	for dx := -1; dx <= 0; dx++ {
		for dy := -1; dy <= 0; dy++ {
			c.Set(x+dx, y+dy, ink)
		}
	}
}

// Text writes s starting at cell (col, row), replacing the braille there.
// Text running past the right edge is cut.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.h {
		return
	}
	for _, r := range s {
		if col >= c.w {
			return
		}
		if col >= 0 {
			c.labels[row][col] = r
			c.ink[row][col] = InkLabel
		}
		col++
	}
}

// Lines returns the canvas as plain text, one string per row.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := range c.h {
		row := make([]rune, c.w)
		for x := range c.w {
			row[x] = c.cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// Render returns the canvas with every run of equally inked cells styled.
func (c *Canvas) Render(styles map[Ink]lipgloss.Style) string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var runInk Ink
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := styles[runInk]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := range c.w {
			ink := c.ink[y][x]
			if ink != runInk {
				flush()
				runInk = ink
			}
			run = append(run, c.cell(x, y))
		}
		flush()
	}
	return b.String()
}

func (c *Canvas) cell(x, y int) rune {
	if r := c.labels[y][x]; r != 0 {
		return r
	}
	if m := c.mask[y][x]; m != 0 {
		return rune(0x2800 + int(m))
	}
	return ' '
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }
