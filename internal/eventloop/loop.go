// Package eventloop provides a single-threaded task loop. Everything posted to
// a Loop, including timer callbacks scheduled through it, runs on the one
// goroutine executing Run, so state owned by the loop needs no locking.
package eventloop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfrund/ytu/internal/debounce"
)

// ErrStopped is returned when work is submitted to a loop that has stopped.
var ErrStopped = errors.New("event loop stopped")

// Loop is a FIFO task queue drained by a single goroutine.
type Loop struct {
	name   string
	logger *slog.Logger

	mu      sync.Mutex
	queue   []func()
	timers  map[*timer]struct{}
	stopped bool

	wake     chan struct{}
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithName labels the loop in log output.
func WithName(name string) Option {
	return func(l *Loop) {
		l.name = name
	}
}

// WithLogger sets the logger used to report panicking tasks.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New creates a loop. It accepts posts immediately; they run once Run is
// called.
func New(opts ...Option) *Loop {
	l := &Loop{
		name:   "loop",
		timers: make(map[*timer]struct{}),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default().With("component", "eventloop", "loop", l.name)
	}
	return l
}

// Run drains the queue until ctx is cancelled or Stop is called. It must be
// called at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("event loop already running")
	}
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
			l.drain()
		}
	}
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if l.stopped || len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if l.isStopped() {
				return
			}
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked", "panic", r)
		}
	}()
	fn()
}

func (l *Loop) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Post queues fn. It never blocks, and reports false once the loop has
// stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from the loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc schedules fn to run on the loop after d. A stopped timer never
// runs fn, even if its underlying timer had already fired.
func (l *Loop) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	t := &timer{loop: l}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		t.cancelled.Store(true)
		return t
	}
	l.timers[t] = struct{}{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.cancelled.CompareAndSwap(false, true) {
				return
			}
			l.forget(t)
			fn()
		})
	})
	l.mu.Unlock()
	return t
}

func (l *Loop) forget(t *timer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

// Timers returns the number of scheduled timers that have neither run nor
// been stopped.
func (l *Loop) Timers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Stop halts the loop, cancels its timers and discards queued tasks. It is
// safe to call more than once and from any goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		timers := l.timers
		l.timers = make(map[*timer]struct{})
		l.mu.Unlock()

		for t := range timers {
			t.cancel()
		}
		close(l.quit)
	})
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

type timer struct {
	loop      *Loop
	t         *time.Timer
	cancelled atomic.Bool
}

func (t *timer) cancel() bool {
	if !t.cancelled.CompareAndSwap(false, true) {
		return false
	}
	if t.t != nil {
		t.t.Stop()
	}
	return true
}

// Stop implements debounce.Timer.
func (t *timer) Stop() bool {
	if !t.cancel() {
		return false
	}
	t.loop.forget(t)
	return true
}
