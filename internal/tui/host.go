package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/dimension"
	"github.com/nfrund/ytu/internal/eventloop"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

// Frame is one laid-out diagram in micro-pixels, ready to draw.
type Frame struct {
	Path  *catalog.Path
	Style beam.Style
	Size  geometry.Dimension
	Nodes []geometry.Rect
	Beams []diagram.Beam
}

type frameMsg Frame

// host owns the diagram state. Every method runs on the loop goroutine; the
// bubbletea model only talks to it through loop posts and receives frames
// through send.
type host struct {
	loop   *eventloop.Loop
	grid   layout.Grid
	send   func(tea.Msg)
	logger *slog.Logger

	resize   *signal.Signal
	window   *surface.Ref
	observer *dimension.Observer
	scene    *diagram.Scene
	flush    *signal.Invalidator
}

func newHost(loop *eventloop.Loop, grid layout.Grid, delay time.Duration, send func(tea.Msg), logger *slog.Logger) *host {
	h := &host{
		loop:   loop,
		grid:   grid,
		send:   send,
		logger: logger,
		resize: signal.New(),
		window: surface.NewRef("terminal"),
	}
	h.flush = signal.NewInvalidator(loop, h.sendFrame)
	h.observer = dimension.New(h.window, h.resize, loop,
		dimension.WithDelay(delay),
		dimension.WithOnChange(h.relayout),
		dimension.WithLogger(logger),
	)
	return h
}

// resizeTo records the drawable area. The first size is measured at once;
// later sizes go through the debounced resize signal.
func (h *host) resizeTo(size geometry.Dimension) {
	h.window.Set(geometry.RectFromSize(size))
	if !h.observer.Mounted() {
		h.observer.Mount()
		return
	}
	h.resize.Emit()
}

// show replaces the diagram with path.
func (h *host) show(path *catalog.Path) {
	if h.scene != nil {
		h.scene.Unmount()
	}
	h.scene = diagram.NewScene(path, h.loop,
		diagram.WithIDGenerator(beam.Sequence("tui-"+path.ID)),
		diagram.WithOnChange(func(diagram.Beam) { h.flush.Invalidate() }),
		diagram.WithLogger(h.logger),
	)
	h.relayout(h.observer.Dimension())
	h.scene.Mount()
	h.flush.Invalidate()
}

// relayout fills the measured area with the node grid.
func (h *host) relayout(dim geometry.Dimension) {
	if h.scene == nil || dim.IsZero() {
		return
	}
	g := h.grid
	g.MinHeight = dim.Height
	h.scene.Apply(g.Place(geometry.Point{}, dim.Width, dim.Width, len(h.scene.NodeIDs())))
	h.flush.Invalidate()
}

func (h *host) sendFrame() {
	if h.scene == nil {
		return
	}
	box, ok := h.scene.Container().Box()
	if !ok {
		return
	}
	f := Frame{
		Path:  h.scene.Path(),
		Style: h.scene.Style(),
		Size:  box.Size(),
		Beams: h.scene.Snapshot(),
	}
	for _, id := range h.scene.NodeIDs() {
		if r, ok := h.scene.Node(id).Box(); ok {
			f.Nodes = append(f.Nodes, r.Translate(-box.X, -box.Y))
		}
	}
	h.send(frameMsg(f))
}

func (h *host) close() {
	h.observer.Unmount()
	if h.scene != nil {
		h.scene.Unmount()
	}
	h.flush.Cancel()
}
