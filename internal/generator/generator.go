package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"envswitch-icons/internal/config"
	"envswitch-icons/internal/icon"
	"envswitch-icons/internal/logging"
)

const CompletionLine = "all icons created"

type Kind string

const (
	KindPNG Kind = "png"
	KindSVG Kind = "svg"
	KindICO Kind = "ico"
)

// Written describes one file produced by a run. Size is 0 for the ICO bundle.
type Written struct {
	Kind Kind
	Size int
	Path string
}

type Report struct {
	Written []Written
	Elapsed time.Duration
}

type Callbacks struct {
	OnWritten func(Written)
}

type Generator struct {
	cfg     config.Generator
	logger  *logging.Logger
	console io.Writer
	hooks   Callbacks
}

func New(cfg config.Generator, logger *logging.Logger, console io.Writer, hooks Callbacks) *Generator {
	if logger == nil {
		panic("generator.New: logger must not be nil")
	}
	if console == nil {
		console = io.Discard
	}
	return &Generator{cfg: cfg, logger: logger, console: console, hooks: hooks}
}

func (g *Generator) Run() (Report, error) {
	return g.RunContext(context.Background())
}

// RunContext renders every configured size in order and stops at the first
// failure. Files already written by the failed run are left in place.
func (g *Generator) RunContext(ctx context.Context) (Report, error) {
	started := time.Now()
	report := Report{}
	if err := config.ValidateRender(g.cfg.Render); err != nil {
		return report, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	g.logger.Debug("generating icons",
		logging.Field("out_dir", g.cfg.OutDir),
		logging.Field("sizes", g.cfg.Render.Sizes),
		logging.Field("svg", g.cfg.SVG),
		logging.Field("ico", g.cfg.ICO),
	)
	if err := EnsureOutputDir(g.cfg.OutDir); err != nil {
		return report, err
	}

	var icoEntries []icon.ICOEntry
	for _, size := range g.cfg.Render.Sizes {
		if err := ctx.Err(); err != nil {
			g.logger.Debug("stopping icon generation: context canceled", logging.Field("error", err))
			return report, err
		}

		img, err := icon.Render(size, g.cfg.Render)
		if err != nil {
			return report, fmt.Errorf("render %dpx icon: %w", size, err)
		}
		path := icon.PNGPath(g.cfg.OutDir, size)
		if err := icon.Save(img, path); err != nil {
			return report, fmt.Errorf("%w: %w", ErrWriteIcon, err)
		}
		g.written(&report, Written{Kind: KindPNG, Size: size, Path: path})

		if g.cfg.SVG {
			svgPath := icon.SVGPath(g.cfg.OutDir, size)
			if err := writeSVG(svgPath, size, g.cfg.Render); err != nil {
				return report, fmt.Errorf("%w: %w", ErrWriteIcon, err)
			}
			g.written(&report, Written{Kind: KindSVG, Size: size, Path: svgPath})
		}

		if g.cfg.ICO && icon.FitsICO(size) {
			entry, err := icon.ICOEntryFromImage(img)
			if err != nil {
				return report, err
			}
			icoEntries = append(icoEntries, entry)
		}
	}

	if g.cfg.ICO {
		if len(icoEntries) == 0 {
			g.logger.Warn("skipping icon.ico: no configured size fits in an ICO")
		} else {
			icoPath := icon.ICOPath(g.cfg.OutDir)
			if err := writeICO(icoPath, icoEntries); err != nil {
				return report, fmt.Errorf("%w: %w", ErrWriteIcon, err)
			}
			g.written(&report, Written{Kind: KindICO, Path: icoPath})
		}
	}

	report.Elapsed = time.Since(started)
	fmt.Fprintln(g.console, CompletionLine)
	g.logger.Debug("icon generation finished",
		logging.Field("files", len(report.Written)),
		logging.Field("elapsed", report.Elapsed),
	)
	return report, nil
}

// EnsureOutputDir creates dir and any missing parents. An existing directory
// is not an error.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	return nil
}

func (g *Generator) written(report *Report, w Written) {
	report.Written = append(report.Written, w)
	fmt.Fprintf(g.console, "created icon: %s\n", w.Path)
	g.logger.Debug("icon written",
		logging.Field("kind", string(w.Kind)),
		logging.Field("size", w.Size),
		logging.Field("path", w.Path),
	)
	if g.hooks.OnWritten != nil {
		g.hooks.OnWritten(w)
	}
}

func writeSVG(path string, size int, cfg config.Render) error {
	var buf bytes.Buffer
	if err := icon.RenderSVG(&buf, size, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeICO(path string, entries []icon.ICOEntry) error {
	data, err := icon.BuildICO(entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
