// Package signal provides the two notification primitives the observers are
// built from: a broadcast Signal (one source, many listeners) and an
// Invalidator (many sources, one coalesced recomputation).
package signal

import "sync"

// Source is anything listeners can subscribe to. The returned release
// function deregisters the listener; calling it more than once is a no-op.
type Source interface {
	Listen(fn func()) (release func())
}

// Signal is a broadcast notifier, e.g. the viewport "resize" event.
type Signal struct {
	mu        sync.Mutex
	listeners map[uint64]func()
	order     []uint64
	next      uint64
}

// New creates an empty signal.
func New() *Signal {
	return &Signal{listeners: make(map[uint64]func())}
}

// Listen registers fn and returns its release function.
func (s *Signal) Listen(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Signal) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Emit calls every registered listener in registration order. A listener
// released while Emit is running is not called; one registered while Emit is
// running is called from the next Emit.
func (s *Signal) Emit() {
	s.mu.Lock()
	ids := append([]uint64(nil), s.order...)
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.listeners[id]
		s.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Len returns the number of registered listeners.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
