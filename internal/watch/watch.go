// Package watch regenerates icons when the palette file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"

	"envswitch-icons/internal/config"
	"envswitch-icons/internal/logging"
)

const (
	defaultDebounce     = 500 * time.Millisecond
	defaultRetryInitial = 100 * time.Millisecond
	defaultRetryMax     = 2 * time.Second
	defaultMaxTries     = 5
)

type Options struct {
	PalettePath  string
	Debounce     time.Duration
	RetryInitial time.Duration
	MaxTries     uint
}

type Callbacks struct {
	// Load resolves the generator config; it is retried while the palette is
	// mid-write.
	Load func() (config.Generator, error)
	// Generate runs one full icon pass.
	Generate func(ctx context.Context, cfg config.Generator) error
}

type Watcher struct {
	opts      Options
	logger    *logging.Logger
	callbacks Callbacks
	target    string
	builds    atomic.Int64
}

func New(opts Options, logger *logging.Logger, callbacks Callbacks) (*Watcher, error) {
	if logger == nil {
		panic("watch.New: logger must not be nil")
	}
	if callbacks.Load == nil || callbacks.Generate == nil {
		panic("watch.New: Load and Generate callbacks are required")
	}
	if opts.PalettePath == "" {
		return nil, errors.New("watch mode needs a palette file")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.RetryInitial <= 0 {
		opts.RetryInitial = defaultRetryInitial
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = defaultMaxTries
	}
	target, err := filepath.Abs(opts.PalettePath)
	if err != nil {
		return nil, fmt.Errorf("resolve palette path: %w", err)
	}
	return &Watcher{opts: opts, logger: logger, callbacks: callbacks, target: filepath.Clean(target)}, nil
}

// RunContext blocks until ctx is done, rebuilding after each burst of palette
// changes. Failed rebuilds are logged and the watcher keeps going.
func (w *Watcher) RunContext(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file via rename are seen.
	dir := filepath.Dir(w.target)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch palette directory %s: %w", dir, err)
	}
	w.logger.Info("watching palette", logging.Field("path", w.opts.PalettePath))

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("stopping palette watch: context canceled")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.logger.Debugf("palette event: op=%s path=%s", event.Op.String(), event.Name)
				debounce.Reset(w.opts.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("palette watcher error", logging.Field("error", err))
		case <-debounce.C:
			if err := w.Rebuild(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("icon rebuild failed", logging.Field("error", err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == w.target
}

// Rebuild reloads the config, retrying with exponential backoff, then runs
// one generation pass.
func (w *Watcher) Rebuild(ctx context.Context) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = w.opts.RetryInitial
	retry.MaxInterval = defaultRetryMax
	retry.Reset()

	cfg, err := backoff.Retry(ctx, func() (config.Generator, error) {
		return w.callbacks.Load()
	},
		backoff.WithBackOff(retry),
		backoff.WithMaxTries(w.opts.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			w.logger.Debug("retrying palette load",
				logging.Field("error", err),
				logging.Field("next_retry", next.String()))
		}),
	)
	if err != nil {
		return fmt.Errorf("reload palette: %w", err)
	}

	build := w.builds.Add(1)
	w.logger.Info("palette changed, regenerating icons", logging.Field("build", build))
	return w.callbacks.Generate(ctx, cfg)
}

func (w *Watcher) Builds() int64 {
	return w.builds.Load()
}
