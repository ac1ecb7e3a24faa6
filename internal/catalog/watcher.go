package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nfrund/ytu/internal/debounce"
)

// DefaultSettle is how long the watcher waits for a burst of file events to
// end before reloading. Editors typically write, chmod and rename in quick
// succession.
const DefaultSettle = 250 * time.Millisecond

// Watcher reloads the catalog whenever its file changes on disk.
type Watcher struct {
	reloader *Reloader
	path     string
	settle   time.Duration
	logger   *slog.Logger
}

// NewWatcher watches path and hands changes to r.
func NewWatcher(r *Reloader, path string, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		reloader: r,
		path:     filepath.Clean(path),
		settle:   settle,
		logger:   slog.Default().With("component", "catalog-watcher", "path", path),
	}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// that atomic replace-by-rename saves are seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	reload := debounce.New(debounce.RealTime{}, w.settle, func() {
		if err := w.reloader.Reload(ctx); err != nil {
			w.logger.Warn("Catalog change not applied", "error", err)
		}
	})
	defer reload.Cancel()

	w.logger.Info("Watching catalog for changes")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Catalog watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug("Catalog file event", "op", event.Op.String())
				reload.Trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File system watcher error", "error", err)
		}
	}
}
