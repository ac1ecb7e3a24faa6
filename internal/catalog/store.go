package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/nfrund/ytu/internal/pubsub"
)

// Reloaded is published after a catalog file was reloaded successfully.
var Reloaded = pubsub.NewEvent[ReloadedEvent]("catalog.reloaded", "Catalog file changed and was reloaded")

// ReloadedEvent is the payload of Reloaded.
type ReloadedEvent struct {
	Version uint64   `json:"version"`
	Paths   []string `json:"paths"`
	Source  string   `json:"source"`
}

// Store holds the current catalog. Readers always see a complete document.
type Store struct {
	current atomic.Pointer[Catalog]
	version atomic.Uint64
}

// NewStore returns a store serving c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Get returns the current catalog.
func (s *Store) Get() *Catalog {
	return s.current.Load()
}

// Version counts successful replacements, starting at zero.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Set replaces the catalog and returns the new version.
func (s *Store) Set(c *Catalog) uint64 {
	s.current.Store(c)
	return s.version.Add(1)
}

// Reloader loads a catalog file into a store and announces the change.
type Reloader struct {
	store  *Store
	fs     afero.Fs
	path   string
	pub    pubsub.Publisher
	logger *slog.Logger
}

// NewReloader creates a reloader. pub may be nil.
func NewReloader(store *Store, fs afero.Fs, path string, pub pubsub.Publisher) *Reloader {
	return &Reloader{
		store:  store,
		fs:     fs,
		path:   path,
		pub:    pub,
		logger: slog.Default().With("component", "catalog", "path", path),
	}
}

// Reload reads the file and swaps it into the store. An invalid file leaves
// the store untouched.
func (r *Reloader) Reload(ctx context.Context) error {
	c, err := Load(r.fs, r.path)
	if err != nil {
		r.logger.Error("Catalog reload failed, keeping previous catalog", "error", err)
		return err
	}
	version := r.store.Set(c)
	r.logger.Info("Catalog reloaded", "version", version, "paths", len(c.Paths))

	if r.pub == nil {
		return nil
	}
	if err := pubsub.Publish(ctx, r.pub, Reloaded, ReloadedEvent{
		Version: version,
		Paths:   c.PathIDs(),
		Source:  r.path,
	}); err != nil {
		return fmt.Errorf("publishing %s: %w", Reloaded.Name(), err)
	}
	return nil
}
