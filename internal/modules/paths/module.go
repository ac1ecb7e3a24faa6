// Package paths serves the learning-path pages, their htmx fragments and the
// Graphviz export.
package paths

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

// New creates a new instance of the learning paths module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "paths"
}

// Boot registers the learning-path routes.
func (m *Module) Boot(_ context.Context, g *echo.Group, reg *registry.Registry) error {
	h := handlers.NewPathsHandler(
		registry.MustGet(reg, registry.CatalogStoreKey),
		registry.MustGet(reg, registry.RendererKey),
		registry.MustGet(reg, registry.GridKey),
	)

	paths := g.Group("/learning-paths")
	paths.GET("", h.Index)
	paths.GET("/:id", h.Show)
	paths.GET("/:id/graph.svg", h.GraphSVG)

	slog.Info("Booting learning paths module")
	return nil
}
