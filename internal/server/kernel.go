package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// registerModules lets every module register its services. Registration
// happens in list order, before any module boots.
func (s *Server) registerModules() error {
	for _, m := range s.modules {
		if err := m.Register(s.Reg); err != nil {
			return fmt.Errorf("registering module %s: %w", m.Name(), err)
		}
		slog.Debug("Module registered", "module", m.Name())
	}
	return nil
}

// bootModules mounts every module at the site root. Background processes
// started during boot stop when ctx is cancelled.
func (s *Server) bootModules(ctx context.Context) error {
	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root, s.Reg); err != nil {
			return fmt.Errorf("booting module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// shutdownModules shuts modules down in reverse boot order.
func (s *Server) shutdownModules(ctx context.Context) error {
	var errs []error
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down module %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}
