package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/pubsub"
)

// ErrHubClosed is returned when registering with a stopped hub.
var ErrHubClosed = errors.New("live hub closed")

// Hub maintains the set of active sessions and broadcasts frames to them.
type Hub struct {
	sessions map[*Session]bool

	broadcast  chan []byte
	register   chan *Session
	unregister chan *Session
	done       chan struct{}

	count  atomic.Int64
	logger *slog.Logger
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "live-hub"),
	}
}

// Run starts the hub's processing loop. It returns when ctx is cancelled,
// closing every remaining session.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for s := range h.sessions {
				s.Close()
				delete(h.sessions, s)
			}
			h.count.Store(0)
			return nil

		case s := <-h.register:
			h.sessions[s] = true
			h.count.Store(int64(len(h.sessions)))
			h.logger.Info("Live session registered", "session", s.ID(), "total_sessions", len(h.sessions))

		case s := <-h.unregister:
			if _, ok := h.sessions[s]; ok {
				delete(h.sessions, s)
				s.Close()
				h.count.Store(int64(len(h.sessions)))
				h.logger.Info("Live session unregistered", "session", s.ID(), "total_sessions", len(h.sessions))
			}

		case frame := <-h.broadcast:
			h.logger.Debug("Broadcasting frame", "recipient_count", len(h.sessions))
			for s := range h.sessions {
				s.Deliver(frame)
			}
		}
	}
}

// Register adds s to the hub.
func (h *Hub) Register(ctx context.Context, s *Session) error {
	select {
	case h.register <- s:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unregister removes s from the hub and closes its outbound queue.
func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
		s.Close()
	}
}

// Broadcast sends an encoded frame to every session.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-h.done:
	}
}

// Len returns the number of registered sessions.
func (h *Hub) Len() int {
	return int(h.count.Load())
}

// Command broadcasts a command frame.
func (h *Hub) Command(name string) {
	data, err := json.Marshal(CommandFrame{Type: FrameCommand, Name: name})
	if err != nil {
		h.logger.Error("Failed to encode command", "error", err)
		return
	}
	h.Broadcast(data)
}

// FollowReloads tells every browser to reload whenever the catalog changes.
func (h *Hub) FollowReloads(ctx context.Context, sub pubsub.Subscriber) error {
	return pubsub.Subscribe(ctx, sub, catalog.Reloaded, func(_ context.Context, ev catalog.ReloadedEvent) error {
		h.logger.Info("Catalog reloaded, refreshing live sessions", "version", ev.Version)
		h.Command(CommandReload)
		return nil
	})
}
