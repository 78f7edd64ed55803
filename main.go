package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"envswitch-icons/internal/canvas"
	"envswitch-icons/internal/config"
	"envswitch-icons/internal/generator"
	"envswitch-icons/internal/logging"
	"envswitch-icons/internal/watch"

	flags "github.com/jessevdk/go-flags"
	"github.com/mitchellh/go-wordwrap"
)

var BuildVersion = "dev"

const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2

	remediationWidth = 72
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions(args)
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	// The drawing backend is checked once, before any file is touched.
	availability := canvas.Probe()
	if !availability.OK() {
		fmt.Fprintln(stdout, remediationMessage(availability))
		return exitOK
	}

	logger := logging.New(opts.Debug)
	defer func() {
		_ = logger.Close()
	}()
	if strings.TrimSpace(opts.LogDir) != "" {
		if err := logger.EnableFilePersistence(opts.LogDir, 0); err != nil {
			logger.Warn("failed to enable file log persistence", logging.Field("error", err))
		}
	}
	logger.Debug("starting icon generator",
		logging.Field("version", BuildVersion),
		logging.Field("backend", availability.Backend),
	)

	cfg, err := config.Resolve(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	lock, lockedByOther, lockErr := acquireInstanceLock(cfg.OutDir)
	if lockErr != nil {
		fmt.Fprintln(stderr, "failed to initialize output lock:", lockErr)
		return exitRun
	}
	if lockedByOther {
		fmt.Fprintf(stderr, "another icon generator is already writing to %s\n", cfg.OutDir)
		return exitRun
	}
	defer func() {
		_ = lock.Release()
	}()

	if _, err := generator.New(cfg, logger, stdout, generator.Callbacks{}).RunContext(rootCtx); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitRun
		}
		logger.Error("icon generation failed", logging.Field("error", err))
		return exitRun
	}

	if !opts.Watch {
		return exitOK
	}
	watcher, err := watch.New(watch.Options{PalettePath: opts.Palette}, logger, watch.Callbacks{
		Load: func() (config.Generator, error) {
			return config.Resolve(opts)
		},
		Generate: func(ctx context.Context, next config.Generator) error {
			_, err := generator.New(next, logger, stdout, generator.Callbacks{}).RunContext(ctx)
			return err
		},
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if err := watcher.RunContext(rootCtx); err != nil {
		logger.Error("palette watch stopped", logging.Field("error", err))
		return exitRun
	}
	return exitOK
}

func remediationMessage(availability canvas.Availability) string {
	reason := availability.Reason
	if reason == "" {
		reason = "no drawing backend"
	}
	msg := fmt.Sprintf(
		"Icon rendering support is unavailable (%s). Rebuild without the nodraw build tag "+
			"(go build .) to enable it, or create icon16.png, icon32.png, icon48.png and icon128.png manually.",
		reason,
	)
	return wordwrap.WrapString(msg, remediationWidth)
}
