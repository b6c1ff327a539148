// Package watch re-runs a callback whenever a watched script changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher watches a single file. Editors often replace files by rename, so
// the parent directory is watched and events are filtered by name.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher for path. A zero debounce uses 150ms.
func New(path string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce == 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, logger: logger}
}

// Run calls onChange after each burst of writes to the file until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.logger.Info("Watching script", "path", w.path)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Chmod) {
				w.logger.Debug("Script change detected", "path", w.path, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-timer.C:
			onChange(ctx)
		}
	}
}
