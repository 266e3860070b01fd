package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomdrender/internal/logging"
)

// FileWatcher reports debounced changes to a single file.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewFileWatcher creates a watcher for path. The parent directory is
// watched so that editors which replace the file on save are still seen.
func NewFileWatcher(path string, debounce time.Duration) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	return &FileWatcher{
		path:     absPath,
		watcher:  watcher,
		debounce: debounce,
	}, nil
}

// Run calls onChange once per settled burst of writes to the file until
// ctx is done. Errors from onChange are logged and do not stop the loop.
func (w *FileWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	logger := logging.FromContext(ctx)
	logger.Info("watching for changes", logging.FieldPath, w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("file event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				logger.Error("render failed", logging.FieldPath, w.path, logging.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", logging.FieldError, err)
		}
	}
}

// relevant reports whether event may have changed the watched file.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("close file watcher: %w", err)
	}
	return nil
}
