package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"envswitch-icons/internal/config"
	"envswitch-icons/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWriter(io.Discard, true)
}

func noopGenerate(context.Context, config.Generator) error { return nil }

func TestNew_RequiresPalette(t *testing.T) {
	_, err := New(Options{}, testLogger(), Callbacks{
		Load:     func() (config.Generator, error) { return config.Generator{}, nil },
		Generate: noopGenerate,
	})
	if err == nil {
		t.Fatalf("expected error without palette path")
	}
}

func TestRelevant_FiltersByPathAndOp(t *testing.T) {
	dir := t.TempDir()
	palette := filepath.Join(dir, "palette.toml")
	w, err := New(Options{PalettePath: palette}, testLogger(), Callbacks{
		Load:     func() (config.Generator, error) { return config.Generator{}, nil },
		Generate: noopGenerate,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write", event: fsnotify.Event{Name: palette, Op: fsnotify.Write}, want: true},
		{name: "create", event: fsnotify.Event{Name: palette, Op: fsnotify.Create}, want: true},
		{name: "rename", event: fsnotify.Event{Name: palette, Op: fsnotify.Rename}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: palette, Op: fsnotify.Chmod}, want: false},
		{name: "remove", event: fsnotify.Event{Name: palette, Op: fsnotify.Remove}, want: false},
		{name: "sibling file", event: fsnotify.Event{Name: filepath.Join(dir, "other.toml"), Op: fsnotify.Write}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Fatalf("relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRebuild_RetriesLoadUntilPaletteParses(t *testing.T) {
	var loads atomic.Int32
	var generated atomic.Int32
	w, err := New(Options{PalettePath: "palette.toml", RetryInitial: time.Millisecond}, testLogger(), Callbacks{
		Load: func() (config.Generator, error) {
			if loads.Add(1) < 3 {
				return config.Generator{}, errors.New("toml: unexpected EOF")
			}
			return config.Generator{OutDir: "icons"}, nil
		},
		Generate: func(_ context.Context, cfg config.Generator) error {
			if cfg.OutDir != "icons" {
				t.Errorf("Generate got cfg %#v", cfg)
			}
			generated.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := w.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got := loads.Load(); got != 3 {
		t.Fatalf("loads = %d, want 3", got)
	}
	if generated.Load() != 1 || w.Builds() != 1 {
		t.Fatalf("generated = %d builds = %d", generated.Load(), w.Builds())
	}
}

func TestRebuild_GivesUpAfterMaxTries(t *testing.T) {
	var loads atomic.Int32
	w, err := New(Options{PalettePath: "palette.toml", RetryInitial: time.Millisecond, MaxTries: 2}, testLogger(), Callbacks{
		Load: func() (config.Generator, error) {
			loads.Add(1)
			return config.Generator{}, errors.New("broken palette")
		},
		Generate: func(context.Context, config.Generator) error {
			t.Errorf("Generate should not run when the palette never loads")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Rebuild(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := loads.Load(); got != 2 {
		t.Fatalf("loads = %d, want 2", got)
	}
	if w.Builds() != 0 {
		t.Fatalf("builds = %d, want 0", w.Builds())
	}
}

func TestRunContext_RebuildsOnPaletteWrite(t *testing.T) {
	dir := t.TempDir()
	palette := filepath.Join(dir, "palette.toml")
	if err := os.WriteFile(palette, []byte("sizes = [16]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rebuilt := make(chan struct{}, 4)
	w, err := New(Options{PalettePath: palette, Debounce: 20 * time.Millisecond}, testLogger(), Callbacks{
		Load: func() (config.Generator, error) {
			return config.Resolve(config.Options{Palette: palette, OutDir: dir})
		},
		Generate: func(context.Context, config.Generator) error {
			rebuilt <- struct{}{}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.RunContext(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("RunContext() error = %v", err)
		}
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	// Keep touching the file until the watcher has registered and fired.
	for {
		select {
		case <-rebuilt:
			return
		case <-deadline:
			t.Fatalf("no rebuild after palette write")
		case <-tick.C:
			if err := os.WriteFile(palette, []byte("sizes = [16, 32]\n"), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
		}
	}
}
