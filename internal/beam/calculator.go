package beam

import (
	"log/slog"
	"sync"

	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

// Calculator keeps the geometry of one beam up to date. The container and
// both endpoints are observed; any of them changing schedules a single
// recomputation on the host's loop.
type Calculator struct {
	from, to, container surface.Observable
	opts                Options
	id                  string
	onChange            func(Geometry)
	logger              *slog.Logger

	inv *signal.Invalidator

	mu       sync.Mutex
	geom     Geometry
	computed bool
	mounted  bool
	releases []func()
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithOnChange registers a callback receiving every recomputed geometry that
// differs from the previous one.
func WithOnChange(fn func(Geometry)) CalculatorOption {
	return func(c *Calculator) {
		c.onChange = fn
	}
}

// WithIDGenerator sets the source of the calculator's gradient id.
func WithIDGenerator(gen IDGenerator) CalculatorOption {
	return func(c *Calculator) {
		c.id = gen()
	}
}

// WithLogger sets the calculator's logger.
func WithLogger(logger *slog.Logger) CalculatorOption {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator creates an unmounted calculator. Recomputations triggered by
// layout changes are posted to p; a nil p recomputes synchronously.
func NewCalculator(from, to, container surface.Observable, p signal.Poster, opts Options, copts ...CalculatorOption) *Calculator {
	c := &Calculator{
		from:      from,
		to:        to,
		container: container,
		opts:      opts,
	}
	for _, opt := range copts {
		opt(c)
	}
	if c.id == "" {
		c.id = UUIDs()()
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "beam")
	}
	c.inv = signal.NewInvalidator(p, c.Recompute)
	return c
}

// ID returns the gradient id assigned at construction.
func (c *Calculator) ID() string { return c.id }

// Options returns the beam's options.
func (c *Calculator) Options() Options { return c.opts }

// Mount computes the beam and starts observing the three surfaces.
func (c *Calculator) Mount() {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.mu.Unlock()

	c.Recompute()

	releases := []func(){
		c.container.Observe(c.inv.Invalidate),
		c.from.Observe(c.inv.Invalidate),
		c.to.Observe(c.inv.Invalidate),
	}

	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		for _, release := range releases {
			release()
		}
		return
	}
	c.releases = releases
	c.mu.Unlock()
}

// Unmount releases the observers and drops any queued recomputation.
func (c *Calculator) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	releases := c.releases
	c.releases = nil
	c.mu.Unlock()

	for _, release := range releases {
		release()
	}
	c.inv.Cancel()
}

// Recompute reads the three boxes and updates the geometry. If any surface
// is unmounted the previous geometry is kept.
func (c *Calculator) Recompute() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	containerBox, okC := c.container.Box()
	fromBox, okF := c.from.Box()
	toBox, okT := c.to.Box()
	if !okC || !okF || !okT {
		c.mu.Unlock()
		return
	}

	g := Compute(fromBox, toBox, containerBox, c.opts)
	changed := !c.computed || g != c.geom
	c.geom = g
	c.computed = true
	onChange := c.onChange
	c.mu.Unlock()

	if changed {
		c.logger.Debug("beam recomputed", "id", c.id, "path", g.Path)
		if onChange != nil {
			onChange(g)
		}
	}
}

// Geometry returns the latest geometry; ok is false until the first
// successful computation.
func (c *Calculator) Geometry() (g Geometry, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geom, c.computed
}

// Pending reports whether a recomputation is queued.
func (c *Calculator) Pending() bool {
	return c.inv.Pending()
}
