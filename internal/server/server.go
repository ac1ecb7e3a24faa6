package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"github.com/nfrund/ytu/internal/app"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/config"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/middleware"
	"github.com/nfrund/ytu/internal/module"
	"github.com/nfrund/ytu/internal/pubsub"
	"github.com/nfrund/ytu/internal/registry"
	"github.com/nfrund/ytu/internal/rendering"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     *config.Config
	Reg     *registry.Registry
	Store   *catalog.Store
	Bridge  *pubsub.WatermillBridge
	modules []module.Module

	fs              afero.Fs
	shutdownTracing func(context.Context) error
}

// Option configures a Server.
type Option func(*Server)

// WithFs sets the filesystem the catalog file is read from.
func WithFs(fs afero.Fs) Option {
	return func(s *Server) {
		s.fs = fs
	}
}

// New creates a new Server instance: it loads the catalog, sets up tracing
// and the event bus, configures echo and registers every module's services.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{Cfg: cfg, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(s)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(s.fs, cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		cat = loaded
	}
	s.Store = catalog.NewStore(cat)

	tracer, shutdown, err := pubsub.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	s.shutdownTracing = shutdown
	s.Bridge = pubsub.NewWatermillBridge(pubsub.WithTracer(tracer))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	renderer := rendering.NewUniversalRenderer()
	e.Renderer = renderer
	setupErrorHandling(e)
	s.E = e

	s.Reg = registry.New(cfg)
	app.Dependencies{
		Publisher:  s.Bridge,
		Subscriber: s.Bridge,
		Renderer:   renderer,
		Store:      s.Store,
		Grid:       layout.Default(),
	}.Provide(s.Reg)

	s.modules = app.NewModules()
	if err := s.registerModules(); err != nil {
		return nil, err
	}

	slog.Info("Server configured",
		"addr", cfg.Addr,
		"catalog", catalogSource(cfg),
		"paths", len(cat.Paths),
		"tracing", cfg.Tracing.Enabled,
	)
	return s, nil
}

func catalogSource(cfg *config.Config) string {
	if cfg.CatalogPath == "" {
		return "embedded"
	}
	return cfg.CatalogPath
}
