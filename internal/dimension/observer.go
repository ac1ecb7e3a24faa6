// Package dimension tracks the rendered size of a surface. An Observer
// measures once on mount and again, debounced, after every viewport resize.
package dimension

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/ytu/internal/debounce"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

// DefaultDelay is the resize debounce window.
const DefaultDelay = 200 * time.Millisecond

// Observer exposes the latest measured size of a surface.
type Observer struct {
	target   surface.Surface
	resize   signal.Source
	delay    time.Duration
	onChange func(geometry.Dimension)
	logger   *slog.Logger

	debouncer *debounce.Debouncer

	mu       sync.Mutex
	dim      geometry.Dimension
	measured bool
	mounted  bool
	release  func()
}

// Option configures an Observer.
type Option func(*Observer)

// WithDelay sets the debounce window. Zero measures on every resize signal.
func WithDelay(d time.Duration) Option {
	return func(o *Observer) {
		if d < 0 {
			d = 0
		}
		o.delay = d
	}
}

// WithOnChange registers the dependent notified with each new size.
func WithOnChange(fn func(geometry.Dimension)) Option {
	return func(o *Observer) {
		o.onChange = fn
	}
}

// WithLogger sets the observer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Observer) {
		o.logger = logger
	}
}

// New creates an unmounted observer of target. resize is the global resize
// signal and sched runs the debounce timers; hosts pass their event loop so
// measurements happen on the loop goroutine.
func New(target surface.Surface, resize signal.Source, sched debounce.Scheduler, opts ...Option) *Observer {
	o := &Observer{
		target: target,
		resize: resize,
		delay:  DefaultDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "dimension")
	}
	o.debouncer = debounce.New(sched, o.delay, o.Measure)
	return o
}

// Mount measures the surface immediately and starts listening for resize
// signals. Mounting a mounted observer does nothing.
func (o *Observer) Mount() {
	o.mu.Lock()
	if o.mounted {
		o.mu.Unlock()
		return
	}
	o.mounted = true
	o.mu.Unlock()

	o.Measure()

	release := o.resize.Listen(o.debouncer.Trigger)

	o.mu.Lock()
	if !o.mounted {
		// unmounted from within the first measurement
		o.mu.Unlock()
		release()
		return
	}
	o.release = release
	o.mu.Unlock()
}

// Unmount stops listening and cancels any pending measurement. The observer
// may be mounted again later.
func (o *Observer) Unmount() {
	o.mu.Lock()
	if !o.mounted {
		o.mu.Unlock()
		return
	}
	o.mounted = false
	release := o.release
	o.release = nil
	o.mu.Unlock()

	if release != nil {
		release()
	}
	o.debouncer.Cancel()
}

// Measure reads the surface now. It is a no-op while the observer or the
// surface is unmounted; the previous size is kept.
func (o *Observer) Measure() {
	o.mu.Lock()
	if !o.mounted {
		o.mu.Unlock()
		return
	}
	box, ok := o.target.Box()
	if !ok {
		o.mu.Unlock()
		return
	}
	dim := box.Size()
	changed := !o.measured || dim != o.dim
	o.dim = dim
	o.measured = true
	onChange := o.onChange
	o.mu.Unlock()

	if changed {
		o.logger.Debug("dimension changed", "width", dim.Width, "height", dim.Height)
		if onChange != nil {
			onChange(dim)
		}
	}
}

// Dimension returns the latest measured size, or zero before the first
// successful measurement.
func (o *Observer) Dimension() geometry.Dimension {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dim
}

// Mounted reports whether the observer is listening for resizes.
func (o *Observer) Mounted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mounted
}

// Pending reports whether a debounced measurement is scheduled.
func (o *Observer) Pending() bool {
	return o.debouncer.Pending()
}
