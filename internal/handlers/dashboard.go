package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/view"
)

// DashboardGet shows the student dashboard. A catalog without dashboard
// data has no dashboard page.
func (h *PageHandler) DashboardGet(c echo.Context) error {
	d := h.store.Get().Dashboard
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "dashboard not configured")
	}
	view.SetNav(c, view.TabDashboard, "")
	return h.renderer.RenderPage(c, http.StatusOK, view.Page("My Dashboard", view.TabDashboard, view.Dashboard(d)))
}
