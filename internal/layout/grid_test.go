package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/ytu/internal/geometry"
)

func TestGrid_Columns(t *testing.T) {
	g := Default()
	assert.Equal(t, 1, g.Columns(375))
	assert.Equal(t, 2, g.Columns(640))
	assert.Equal(t, 2, g.Columns(767))
	assert.Equal(t, 3, g.Columns(1280))
}

func TestGrid_PlaceThreeColumns(t *testing.T) {
	g := Default()
	p := g.Place(geometry.Point{X: 100, Y: 50}, 1000, 1280, 6)

	require.Len(t, p.Nodes, 6)
	assert.Equal(t, 3, p.Columns)
	assert.Equal(t, 2, p.Rows)
	assert.Equal(t, 500.0, p.Container.Height, "min height wins")

	// grid is 3*220+2*32 = 724 wide, centered in 1000
	assert.Equal(t, 100+138.0, p.Nodes[0].X)
	assert.Equal(t, p.Nodes[0].X+220+32, p.Nodes[1].X)
	assert.Equal(t, p.Nodes[0].Y, p.Nodes[2].Y)
	assert.Equal(t, p.Nodes[0].Y+148+32, p.Nodes[3].Y)

	// vertically centered: grid 328 tall in a 500 container
	assert.Equal(t, 50+86.0, p.Nodes[0].Y)
}

func TestGrid_PlaceSingleColumnGrows(t *testing.T) {
	g := Default()
	p := g.Place(geometry.Point{}, 360, 375, 6)

	assert.Equal(t, 1, p.Columns)
	assert.Equal(t, 6, p.Rows)
	assert.Equal(t, 6*148+5*32+48.0, p.Container.Height)
	for _, n := range p.Nodes {
		assert.Equal(t, 220.0, n.Width)
		assert.Equal(t, 70.0, n.X)
	}
}

func TestGrid_NarrowContainerShrinksCells(t *testing.T) {
	g := Default()
	p := g.Place(geometry.Point{}, 600, 800, 3)

	assert.Equal(t, 3, p.Columns)
	want := (600 - 48 - 64) / 3.0
	assert.InDelta(t, want, p.Nodes[0].Width, 1e-9)
	assert.InDelta(t, 24, p.Nodes[0].X, 1e-9)
}

func TestGrid_Scaled(t *testing.T) {
	g := Default().Scaled(0.5)
	assert.Equal(t, 110.0, g.NodeWidth)
	assert.Equal(t, 2, g.Columns(320))
}

func TestCircles_Deterministic(t *testing.T) {
	d := geometry.Dimension{Width: 300, Height: 140}
	colors := []string{"#3B82F6", "#60A5FA", "#93C5FD"}
	seed := SeedFor("Learning Streak")

	a := Circles(d, colors, seed)
	b := Circles(d, colors, seed)
	assert.Equal(t, a, b)

	for i, c := range a {
		assert.Equal(t, colors[i], c.Color)
		assert.GreaterOrEqual(t, c.Size, 150.0)
		assert.Less(t, c.Size, 300.0)
		assert.GreaterOrEqual(t, c.Top, 0.0)
		assert.Less(t, c.Left, 50.0)
	}
}
