// Package diagram assembles a learning-path diagram: one surface per node,
// a container surface and a beam calculator per connection.
package diagram

import (
	"log/slog"
	"sync"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

// Beam is the rendered state of one connection.
type Beam struct {
	Key      string        `json:"key"`
	ID       string        `json:"id"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Reverse  bool          `json:"reverse"`
	Geometry beam.Geometry `json:"geometry"`
}

// Scene binds a learning path to live surfaces.
type Scene struct {
	path      *catalog.Path
	style     beam.Style
	container *surface.Ref
	nodes     map[string]*surface.Ref
	order     []string
	calcs     []*beam.Calculator
	conns     []catalog.Connection
	logger    *slog.Logger

	mu       sync.Mutex
	onChange func(Beam)
	mounted  bool
}

// Option configures a Scene.
type Option func(*sceneConfig)

type sceneConfig struct {
	ids      beam.IDGenerator
	onChange func(Beam)
	logger   *slog.Logger
}

// WithIDGenerator sets the gradient id source for the scene's beams.
func WithIDGenerator(gen beam.IDGenerator) Option {
	return func(c *sceneConfig) {
		c.ids = gen
	}
}

// WithOnChange is called with every beam whose geometry changed.
func WithOnChange(fn func(Beam)) Option {
	return func(c *sceneConfig) {
		c.onChange = fn
	}
}

// WithLogger sets the scene logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sceneConfig) {
		c.logger = logger
	}
}

// NewScene creates an unmounted scene for path. Recomputations are posted
// to p, normally the owning host's event loop.
func NewScene(path *catalog.Path, p signal.Poster, opts ...Option) *Scene {
	cfg := sceneConfig{ids: beam.UUIDs()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default().With("component", "diagram", "path", path.ID)
	}

	s := &Scene{
		path:      path,
		style:     path.BeamStyle(),
		container: surface.NewRef("container"),
		nodes:     make(map[string]*surface.Ref, len(path.Nodes)),
		onChange:  cfg.onChange,
		logger:    cfg.logger,
	}
	for _, n := range path.Nodes {
		s.nodes[n.ID] = surface.NewRef(n.ID)
		s.order = append(s.order, n.ID)
	}

	for _, conn := range path.Connections {
		from, to := s.nodes[conn.From], s.nodes[conn.To]
		if from == nil || to == nil {
			s.logger.Warn("Skipping connection with unknown node", "connection", conn.Key())
			continue
		}
		idx := len(s.calcs)
		calc := beam.NewCalculator(from, to, s.container, p, path.BeamOptions(conn),
			beam.WithIDGenerator(cfg.ids),
			beam.WithLogger(s.logger),
			beam.WithOnChange(func(g beam.Geometry) { s.emit(idx, g) }),
		)
		s.calcs = append(s.calcs, calc)
		s.conns = append(s.conns, conn)
	}
	return s
}

func (s *Scene) emit(i int, g beam.Geometry) {
	s.mu.Lock()
	fn, mounted := s.onChange, s.mounted
	s.mu.Unlock()
	if fn == nil || !mounted {
		return
	}
	fn(s.beam(i, g))
}

func (s *Scene) beam(i int, g beam.Geometry) Beam {
	c := s.conns[i]
	return Beam{
		Key:      c.Key(),
		ID:       s.calcs[i].ID(),
		From:     c.From,
		To:       c.To,
		Reverse:  c.Reverse,
		Geometry: g,
	}
}

// Path returns the scene's learning path.
func (s *Scene) Path() *catalog.Path { return s.path }

// Style returns the beam style of the scene.
func (s *Scene) Style() beam.Style { return s.style }

// Container returns the container surface.
func (s *Scene) Container() *surface.Ref { return s.container }

// Node returns the surface of a node, or nil.
func (s *Scene) Node(id string) *surface.Ref { return s.nodes[id] }

// NodeIDs lists node ids in path order.
func (s *Scene) NodeIDs() []string { return s.order }

// SetBoxes records measured boxes. Nodes absent from nodes keep their
// previous box; a nil container leaves the container untouched.
func (s *Scene) SetBoxes(container *geometry.Rect, nodes map[string]geometry.Rect) {
	if container != nil {
		s.container.Set(*container)
	}
	for id, box := range nodes {
		if ref := s.nodes[id]; ref != nil {
			ref.Set(box)
		}
	}
}

// Apply records the boxes of a computed layout. Nodes are matched to
// placement slots in path order.
func (s *Scene) Apply(p layout.Placement) {
	boxes := make(map[string]geometry.Rect, len(s.order))
	for i, id := range s.order {
		if i < len(p.Nodes) {
			boxes[id] = p.Nodes[i]
		}
	}
	s.SetBoxes(&p.Container, boxes)
}

// Mount starts every beam calculator.
func (s *Scene) Mount() {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	for _, c := range s.calcs {
		c.Mount()
	}
}

// Unmount stops every calculator and detaches all surfaces. No change
// callback runs afterwards.
func (s *Scene) Unmount() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = false
	s.mu.Unlock()

	for _, c := range s.calcs {
		c.Unmount()
	}
	for _, ref := range s.nodes {
		ref.Unmount()
	}
	s.container.Unmount()
}

// Snapshot returns every beam computed so far, in connection order.
func (s *Scene) Snapshot() []Beam {
	out := make([]Beam, 0, len(s.calcs))
	for i, c := range s.calcs {
		if g, ok := c.Geometry(); ok {
			out = append(out, s.beam(i, g))
		}
	}
	return out
}

// Pending reports whether any recomputation is queued.
func (s *Scene) Pending() bool {
	for _, c := range s.calcs {
		if c.Pending() {
			return true
		}
	}
	return false
}
