// Package confwatch reloads a YAML configuration file when it changes on disk.
package confwatch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/bodygraph/pkg/config"
)

// DefaultDebounce is how long the watcher waits after the last event
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Option configures Watch.
type Option func(*options)

type options struct {
	debounce time.Duration
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watch observes path until ctx is cancelled. After a burst of writes it
// loads the file into a fresh value from newConfig and, if loading and
// validation succeed, passes it to onChange. Invalid files are logged and
// skipped, so the previous configuration stays in effect.
//
// The parent directory is watched rather than the file itself, because
// editors and config-map mounts usually replace the file by renaming.
func Watch[T any](ctx context.Context, path string, newConfig func() *T, logger *slog.Logger, onChange func(*T), opts ...Option) error {
	o := options{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	logger.Info("confwatch: started", slog.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("confwatch: stopped")
			return nil

		case <-fire:
			fire = nil
			cfg := newConfig()
			if err := config.Load(target, cfg); err != nil {
				logger.Warn("confwatch: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("confwatch: reloaded", slog.String("path", target))
			onChange(cfg)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				timer.Reset(o.debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("confwatch: error", slog.String("error", watchErr.Error()))
		}
	}
}
