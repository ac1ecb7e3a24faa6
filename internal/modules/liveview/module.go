// Package liveview mounts the live measurement channel: the websocket
// endpoint browsers use to report element boxes and receive beam geometry.
package liveview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/live"
	"github.com/nfrund/ytu/internal/middleware"
	"github.com/nfrund/ytu/internal/module"
	"github.com/nfrund/ytu/internal/registry"
)

// LiveBurst is the number of live connections a client may open at once
// before the rate limit applies.
const LiveBurst = 10

// Module owns the live hub and its background processes.
type Module struct {
	module.BaseModule

	hub *live.Hub
	wg  sync.WaitGroup
}

// New creates a new instance of the live view module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "liveview"
}

// Register creates the hub and shares it with other modules.
func (m *Module) Register(reg *registry.Registry) error {
	m.hub = live.NewHub()
	registry.Set(reg, registry.LiveHubKey, m.hub)
	return nil
}

// Boot starts the hub, follows catalog reloads and mounts /ws/live.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	cfg := reg.Config()
	store := registry.MustGet(reg, registry.CatalogStoreKey)
	pub := registry.MustGet(reg, registry.PublisherKey)
	sub := registry.MustGet(reg, registry.SubscriberKey)
	grid := registry.MustGet(reg, registry.GridKey)

	m.wg.Go(func() {
		if err := m.hub.Run(ctx); err != nil {
			slog.Error("Live hub stopped with error", "error", err)
		}
	})
	if err := m.hub.FollowReloads(ctx, sub); err != nil {
		return err
	}

	handler := live.NewHandler(m.hub, store, pub, cfg.MaxSessions,
		live.WithDebounce(cfg.Debounce.Std()),
		live.WithGrid(grid),
	)
	g.GET("/ws/live", handler.Serve, middleware.RateLimiter(middleware.DefaultLiveRate, LiveBurst))

	slog.Info("Booting live view module", "debounce", cfg.Debounce.Std(), "max_sessions", cfg.MaxSessions)
	return nil
}

// Shutdown waits for the hub to close its sessions. The hub stops when the
// boot context is cancelled.
func (m *Module) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
