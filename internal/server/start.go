package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nfrund/ytu/internal/catalog"
)

// ShutdownTimeout bounds graceful shutdown once the run context ends.
const ShutdownTimeout = 10 * time.Second

// Boot mounts the static assets and every module's routes. Background work
// started here stops when ctx is cancelled.
func (s *Server) Boot(ctx context.Context) error {
	s.registerStatic()
	return s.bootModules(ctx)
}

// Run boots the server and serves HTTP until ctx is cancelled or a component
// fails, then shuts everything down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if err := s.Boot(gctx); err != nil {
		return err
	}

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", s.Cfg.Addr)
		if err := s.E.Start(s.Cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if s.Cfg.HotReload {
		reloader := catalog.NewReloader(s.Store, s.fs, s.Cfg.CatalogPath, s.Bridge)
		watcher := catalog.NewWatcher(reloader, s.Cfg.CatalogPath, catalog.DefaultSettle)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Shutdown stops HTTP, the modules, the event bus and tracing, in that order.
func (s *Server) Shutdown() error {
	slog.Info("Shutting down server", "timeout", ShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.shutdownModules(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.Bridge.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.shutdownTracing(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
