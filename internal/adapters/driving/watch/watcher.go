// Package watch re-runs a task whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/octopus/internal/logger"
)

// DefaultDebounce is how long the watcher waits for more changes before running.
const DefaultDebounce = 300 * time.Millisecond

// Watcher runs a task once and again after every change to a single file.
type Watcher struct {
	// Debounce collapses bursts of events into one run. Zero uses DefaultDebounce.
	Debounce time.Duration

	// OnError receives errors returned by the task. Nil logs them as warnings.
	OnError func(error)
}

// NewWatcher creates a watcher with the default debounce.
func NewWatcher() *Watcher {
	return &Watcher{Debounce: DefaultDebounce}
}

// Run calls fn, then calls it again after each debounced write or create of
// path, until ctx ends. The parent directory is watched rather than the file
// itself so editors that save by renaming a temp file are seen.
//
// Errors from fn do not stop the watcher. Run returns nil when ctx ends.
func (w *Watcher) Run(ctx context.Context, path string, fn func(context.Context) error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(target)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("Watching %s", target)

	w.run(ctx, fn)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
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
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			w.run(ctx, fn)
		}
	}
}

// run calls fn unless ctx has ended, reporting its error.
func (w *Watcher) run(ctx context.Context, fn func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(ctx); err != nil {
		if w.OnError != nil {
			w.OnError(err)
			return
		}
		logger.Warn("%v", err)
	}
}
