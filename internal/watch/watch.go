// Package watch calls back when a source file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DEFAULT_DEBOUNCE = 100 * time.Millisecond

// Watcher follows one file. Editors often replace files instead of writing
// them in place, so the parent directory is watched and events are
// filtered by name.
type Watcher struct {
	path     string
	delay    time.Duration
	logger   zerolog.Logger
	debounce func(f func())

	// serializes the callbacks fired by the debouncer
	lock sync.Mutex
}

func New(path string, delay time.Duration, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to watch %s: %w", path, err)
	}
	if delay <= 0 {
		delay = DEFAULT_DEBOUNCE
	}
	return &Watcher{
		path:     abs,
		delay:    delay,
		logger:   logger.With().Str("file", abs).Logger(),
		debounce: debounce.New(delay),
	}, nil
}

func (w *Watcher) Path() string { return w.path }

// Run blocks until ctx is done, calling onChange once per burst of changes
// to the file. Calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("unable to watch %s: %w", w.path, err)
	}
	w.logger.Info().Dur("debounce", w.delay).Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("file event")
			w.debounce(func() {
				if ctx.Err() != nil {
					return
				}
				w.lock.Lock()
				defer w.lock.Unlock()
				onChange()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
