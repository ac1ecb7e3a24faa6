package live

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/middleware"
	"github.com/nfrund/ytu/internal/pubsub"
)

// SessionChanged is published when a live session opens or closes.
var SessionChanged = pubsub.NewEvent[SessionEvent]("live.session", "A live measurement session opened or closed")

// SessionEvent is the payload of SessionChanged.
type SessionEvent struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Total int    `json:"total"`
}

// Handler upgrades /ws/live requests into sessions.
type Handler struct {
	hub         *Hub
	store       *catalog.Store
	publisher   pubsub.Publisher
	maxSessions int
	opts        []SessionOption
}

// NewHandler creates the websocket handler. maxSessions 0 means unlimited.
func NewHandler(hub *Hub, store *catalog.Store, pub pubsub.Publisher, maxSessions int, opts ...SessionOption) *Handler {
	return &Handler{hub: hub, store: store, publisher: pub, maxSessions: maxSessions, opts: opts}
}

// Serve handles one websocket connection for its whole lifetime.
func (h *Handler) Serve(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	if h.maxSessions > 0 && h.hub.Len() >= h.maxSessions {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "too many live sessions")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true, // In production, check origin.
	})
	if err != nil {
		logger.Error("Failed to upgrade connection to WebSocket", "error", err)
		return err
	}

	id := uuid.NewString()
	opts := append([]SessionOption{WithSessionLogger(logger.With("component", "live", "session", id))}, h.opts...)
	sess := NewSession(id, h.store, opts...)

	ctx := c.Request().Context()
	if err := h.hub.Register(ctx, sess); err != nil {
		conn.Close(websocket.StatusTryAgainLater, "server shutting down")
		return nil
	}
	h.publish(ctx, id, "opened")

	err = sess.Serve(ctx, conn)
	h.hub.Unregister(sess)
	h.publish(context.WithoutCancel(ctx), id, "closed")
	if err != nil {
		logger.Warn("Live session ended with error", "session", id, "error", err)
	}
	return nil
}

func (h *Handler) publish(ctx context.Context, id, state string) {
	if h.publisher == nil {
		return
	}
	ev := SessionEvent{ID: id, State: state, Total: h.hub.Len()}
	if err := pubsub.Publish(ctx, h.publisher, SessionChanged, ev); err != nil {
		middleware.FromContext(ctx).Error("Failed to publish session event", "session", id, "error", err)
	}
}
