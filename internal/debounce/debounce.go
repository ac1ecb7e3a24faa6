// Package debounce implements latest-wins debouncing on top of a cancellable
// timer scheduler.
package debounce

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled. Stop reports whether
// the call was prevented.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealTime schedules with time.AfterFunc; callbacks run on their own
// goroutine. Hosts that need single-threaded callbacks use an event loop.
type RealTime struct{}

// AfterFunc implements Scheduler.
func (RealTime) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer collapses bursts of triggers into a single call of fn, made
// delay after the last trigger of the burst.
type Debouncer struct {
	sched Scheduler
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// New creates a debouncer. A delay of zero or less disables debouncing:
// every Trigger calls fn immediately.
func New(s Scheduler, delay time.Duration, fn func()) *Debouncer {
	if s == nil {
		s = RealTime{}
	}
	return &Debouncer{sched: s, delay: delay, fn: fn}
}

// Delay returns the configured delay.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger cancels any pending call and schedules a new one.
func (d *Debouncer) Trigger() {
	if d.delay <= 0 {
		d.fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.sched.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			// superseded or cancelled after the timer already fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
