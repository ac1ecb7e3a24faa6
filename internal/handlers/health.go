package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/internal/catalog"
)

// SessionCounter reports the number of open live sessions.
type SessionCounter interface {
	Len() int
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string   `json:"status"`
	CatalogVersion uint64   `json:"catalog_version"`
	Paths          []string `json:"paths"`
	LiveSessions   int      `json:"live_sessions"`
}

// Health reports liveness together with the catalog and session state.
func Health(store *catalog.Store, sessions SessionCounter) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := HealthResponse{
			Status:         "ok",
			CatalogVersion: store.Version(),
			Paths:          store.Get().PathIDs(),
		}
		if sessions != nil {
			resp.LiveSessions = sessions.Len()
		}
		return c.JSON(http.StatusOK, resp)
	}
}
