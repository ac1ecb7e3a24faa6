// Package surface models a measurable UI element. A Ref stands in for a
// rendered node: it may be unmounted, and while mounted it has a bounding
// box in viewport coordinates.
package surface

import (
	"sync"

	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/signal"
)

// Surface reports the current bounding box of an element. ok is false while
// the element is not mounted.
type Surface interface {
	Box() (box geometry.Rect, ok bool)
}

// Observable is a Surface that announces layout changes.
type Observable interface {
	Surface
	Observe(fn func()) (release func())
}

// Ref is a mutable handle to an element's layout.
type Ref struct {
	name string

	mu      sync.RWMutex
	box     geometry.Rect
	mounted bool
	changed *signal.Signal
}

// NewRef returns an unmounted reference.
func NewRef(name string) *Ref {
	return &Ref{name: name, changed: signal.New()}
}

// Name identifies the element, e.g. a node id.
func (r *Ref) Name() string { return r.name }

// Box implements Surface.
func (r *Ref) Box() (geometry.Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.box, r.mounted
}

// Mounted reports whether the element is attached.
func (r *Ref) Mounted() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mounted
}

// Mount attaches the element with the given box.
func (r *Ref) Mount(box geometry.Rect) {
	r.update(box, true)
}

// Set records a new box for a mounted element. Setting the box of an
// unmounted element mounts it.
func (r *Ref) Set(box geometry.Rect) {
	r.update(box, true)
}

// Unmount detaches the element.
func (r *Ref) Unmount() {
	r.update(geometry.Rect{}, false)
}

func (r *Ref) update(box geometry.Rect, mounted bool) {
	r.mu.Lock()
	if r.mounted == mounted && r.box == box {
		r.mu.Unlock()
		return
	}
	r.box = box
	r.mounted = mounted
	r.mu.Unlock()

	r.changed.Emit()
}

// Observe implements Observable. fn runs after every change of the box or
// mount state.
func (r *Ref) Observe(fn func()) func() {
	return r.changed.Listen(fn)
}

// Observers returns the number of live observers.
func (r *Ref) Observers() int {
	return r.changed.Len()
}

// Static is a fixed, always-mounted Surface.
type Static geometry.Rect

// Box implements Surface.
func (s Static) Box() (geometry.Rect, bool) {
	return geometry.Rect(s), true
}
