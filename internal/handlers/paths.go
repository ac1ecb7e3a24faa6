package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/middleware"
	"github.com/nfrund/ytu/internal/rendering"
	"github.com/nfrund/ytu/internal/view"
)

// Server-side diagrams are laid out for a desktop window; the live channel
// corrects them once the browser reports its real size.
const (
	RenderWidth    = 1000
	RenderViewport = 1280
)

// PathsHandler serves the learning-path pages and their graph export.
type PathsHandler struct {
	store    *catalog.Store
	renderer rendering.Renderer
	grid     layout.Grid
}

// NewPathsHandler creates a new PathsHandler.
func NewPathsHandler(store *catalog.Store, renderer rendering.Renderer, grid layout.Grid) *PathsHandler {
	return &PathsHandler{store: store, renderer: renderer, grid: grid}
}

// Index renders the path the visitor looked at last, or the first path.
func (h *PathsHandler) Index(c echo.Context) error {
	cat := h.store.Get()
	if id := view.GetNav(c).Path; id != "" {
		if p, err := cat.Path(id); err == nil {
			return h.render(c, cat, p)
		}
	}
	p := cat.DefaultPath()
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no learning paths")
	}
	return h.render(c, cat, p)
}

// Show renders one learning path. htmx requests get only the diagram
// fragment that replaces #diagram.
func (h *PathsHandler) Show(c echo.Context) error {
	cat := h.store.Get()
	p, err := lookupPath(cat, c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, cat, p)
}

func (h *PathsHandler) render(c echo.Context, cat *catalog.Catalog, p *catalog.Path) error {
	view.SetNav(c, view.TabLearningPaths, p.ID)
	snap := diagram.Static(p, h.grid, RenderWidth, RenderViewport)
	ctx := c.Request().Context()

	if c.Request().Header.Get("HX-Request") == "true" {
		return h.renderer.RenderPage(c, http.StatusOK, view.Diagram(ctx, snap))
	}
	body := view.LearningPaths(ctx, cat.Paths, snap)
	return h.renderer.RenderPage(c, http.StatusOK, view.Page("Learning Paths", view.TabLearningPaths, body))
}

// GraphSVG exports a learning path as a Graphviz SVG.
func (h *PathsHandler) GraphSVG(c echo.Context) error {
	p, err := lookupPath(h.store.Get(), c.Param("id"))
	if err != nil {
		return err
	}
	svg, err := diagram.RenderSVG(c.Request().Context(), diagram.ToDOT(p))
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Graph export failed", "path", p.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "graph export failed").SetInternal(err)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func lookupPath(cat *catalog.Catalog, id string) (*catalog.Path, error) {
	p, err := cat.Path(id)
	if errors.Is(err, catalog.ErrPathNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "learning path not found")
	}
	return p, err
}
