package signal

import "sync"

// Poster queues fn for later execution on the owner's event loop. Post
// reports false when the loop no longer accepts work.
type Poster interface {
	Post(fn func()) bool
}

// Invalidator merges invalidations from any number of sources into a single
// recomputation. Invalidations that arrive while a recomputation is queued
// are absorbed by it. With a nil Poster the recomputation runs synchronously.
type Invalidator struct {
	poster Poster
	fn     func()

	mu      sync.Mutex
	pending bool
	gen     uint64
}

// NewInvalidator returns an invalidator that runs fn through p.
func NewInvalidator(p Poster, fn func()) *Invalidator {
	return &Invalidator{poster: p, fn: fn}
}

// Invalidate marks the derived state stale and schedules fn unless a run is
// already queued.
func (v *Invalidator) Invalidate() {
	if v.poster == nil {
		v.fn()
		return
	}

	v.mu.Lock()
	if v.pending {
		v.mu.Unlock()
		return
	}
	v.pending = true
	gen := v.gen
	v.mu.Unlock()

	ok := v.poster.Post(func() {
		v.mu.Lock()
		if !v.pending || gen != v.gen {
			v.mu.Unlock()
			return
		}
		v.pending = false
		v.mu.Unlock()
		v.fn()
	})
	if !ok {
		v.mu.Lock()
		v.pending = false
		v.mu.Unlock()
	}
}

// Pending reports whether a recomputation is queued.
func (v *Invalidator) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// Cancel drops a queued recomputation, if any.
func (v *Invalidator) Cancel() {
	v.mu.Lock()
	v.pending = false
	v.gen++
	v.mu.Unlock()
}
