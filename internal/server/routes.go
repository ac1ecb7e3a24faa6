package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/ytu/web"
)

// registerStatic serves the embedded assets under /static.
func (s *Server) registerStatic() {
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
}

// setupErrorHandling logs errors that did not come from an echo.HTTPError
// with a stack trace before handing them to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				slog.Error("Server error", "status", he.Code, "path", c.Path(), "error", err)
			}
		} else {
			slog.Error("Internal Server Error (Unhandled)",
				"path", c.Path(),
				"error", err.Error(),
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
