// Package watcher re-imports a graph file whenever it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a file for changes
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a new file watcher
func New(path string, onChange func(), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		logger:   logger,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch starts watching the file for changes.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so files replaced by editors are still seen
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("Watching file for changes", zap.String("path", w.path))

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	stopTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, func() {
					if ctx.Err() != nil {
						return
					}
					w.logger.Debug("File changed", zap.String("path", w.path))
					w.onChange()
				})
				mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-ctx.Done():
			stopTimer()
			return ctx.Err()
		}
	}
}
