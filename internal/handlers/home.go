package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/rendering"
	"github.com/nfrund/ytu/internal/view"
)

// PageHandler serves the static content pages from the current catalog.
type PageHandler struct {
	store    *catalog.Store
	renderer rendering.Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(store *catalog.Store, renderer rendering.Renderer) *PageHandler {
	return &PageHandler{store: store, renderer: renderer}
}

// HomeGet renders the landing page.
func (h *PageHandler) HomeGet(c echo.Context) error {
	view.SetNav(c, view.TabHome, "")
	cat := h.store.Get()
	return h.renderer.RenderPage(c, http.StatusOK, view.Page("", view.TabHome, view.Landing(len(cat.Courses))))
}

// CoursesGet renders the course grid.
func (h *PageHandler) CoursesGet(c echo.Context) error {
	view.SetNav(c, view.TabCourses, "")
	cat := h.store.Get()
	return h.renderer.RenderPage(c, http.StatusOK, view.Page("Courses", view.TabCourses, view.Courses(cat.Courses)))
}
