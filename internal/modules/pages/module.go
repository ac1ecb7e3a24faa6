// Package pages serves the landing page, the course grid, the dashboard and
// the health check.
package pages

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/handlers"
	"github.com/nfrund/ytu/internal/module"
	"github.com/nfrund/ytu/internal/registry"
)

// Module implements module.Module.
type Module struct {
	module.BaseModule
}

// New creates a new instance of the pages module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "pages"
}

// Boot registers the page routes.
func (m *Module) Boot(_ context.Context, g *echo.Group, reg *registry.Registry) error {
	store := registry.MustGet(reg, registry.CatalogStoreKey)
	renderer := registry.MustGet(reg, registry.RendererKey)

	var sessions handlers.SessionCounter
	if hub, ok := registry.Get(reg, registry.LiveHubKey); ok {
		sessions = hub
	}

	h := handlers.NewPageHandler(store, renderer)
	g.GET("/", h.HomeGet)
	g.GET("/courses", h.CoursesGet)
	g.GET("/dashboard", h.DashboardGet)
	g.GET("/health", handlers.Health(store, sessions))

	slog.Info("Booting pages module")
	return nil
}
