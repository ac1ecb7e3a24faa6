package diagram

import (
	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
)

// Snapshot is a fully computed diagram in container-relative coordinates.
type Snapshot struct {
	Path      *catalog.Path
	Style     beam.Style
	Placement layout.Placement
	// Nodes are node boxes relative to the container, in path order.
	Nodes []geometry.Rect
	Beams []Beam
}

// Static lays out path with grid for a container of the given width and
// viewport and computes every beam synchronously. Gradient ids are derived
// from the path id so repeated renders produce identical markup.
func Static(path *catalog.Path, grid layout.Grid, width, viewport float64) Snapshot {
	p := grid.Place(geometry.Point{}, width, viewport, len(path.Nodes))
	ids := beam.Sequence("beam-" + path.ID)

	snap := Snapshot{
		Path:      path,
		Style:     path.BeamStyle(),
		Placement: p,
		Nodes:     make([]geometry.Rect, len(p.Nodes)),
	}
	for i, n := range p.Nodes {
		snap.Nodes[i] = n.Translate(-p.Container.X, -p.Container.Y)
	}

	for _, conn := range path.Connections {
		fi, ti := path.NodeIndex(conn.From), path.NodeIndex(conn.To)
		if fi < 0 || ti < 0 {
			continue
		}
		g := beam.Compute(p.Nodes[fi], p.Nodes[ti], p.Container, path.BeamOptions(conn))
		snap.Beams = append(snap.Beams, Beam{
			Key:      conn.Key(),
			ID:       ids(),
			From:     conn.From,
			To:       conn.To,
			Reverse:  conn.Reverse,
			Geometry: g,
		})
	}
	return snap
}
