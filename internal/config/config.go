package config

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type Options struct {
	OutDir  string `long:"out-dir" env:"ICONGEN_OUT_DIR" default:"icons" description:"Directory the icons are written to"`
	Sizes   []int  `long:"size" env:"ICONGEN_SIZES" env-delim:"," description:"Icon edge length in pixels (repeatable, default 16,32,48,128)"`
	Palette string `long:"palette" env:"ICONGEN_PALETTE" description:"TOML file overriding colors and divisors"`
	SVG     bool   `long:"svg" env:"ICONGEN_SVG" description:"Also write icon{size}.svg next to each PNG"`
	ICO     bool   `long:"ico" env:"ICONGEN_ICO" description:"Also bundle all sizes up to 256px into icon.ico"`
	Watch   bool   `long:"watch" description:"Regenerate whenever the palette file changes"`
	LogDir  string `long:"log-dir" env:"ICONGEN_LOG_DIR" description:"Persist JSONL logs into this directory"`
	Debug   bool   `long:"debug" env:"ICONGEN_DEBUG" description:"Enable verbose debug output"`
}

// Render is the full set of knobs the icon renderer reads.
type Render struct {
	Sizes         []int
	BadgeColor    color.NRGBA
	ArrowColor    color.NRGBA
	OutlineColor  color.NRGBA
	OutlineWidth  int
	MarginDivisor int
	ArrowDivisor  int
	DotDivisor    int
}

type Generator struct {
	OutDir string
	SVG    bool
	ICO    bool
	Render Render
}

var (
	DefaultSizes = []int{16, 32, 48, 128}

	BadgeBlue = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	White     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const DefaultOutDir = "icons"

func DefaultRender() Render {
	return Render{
		Sizes:         append([]int(nil), DefaultSizes...),
		BadgeColor:    BadgeBlue,
		ArrowColor:    White,
		OutlineColor:  White,
		OutlineWidth:  2,
		MarginDivisor: 8,
		ArrowDivisor:  4,
		DotDivisor:    16,
	}
}

func ParseOptions(args []string) (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Resolve merges CLI options, an optional palette file and the defaults.
func Resolve(opts Options) (Generator, error) {
	if opts.Watch && strings.TrimSpace(opts.Palette) == "" {
		return Generator{}, errors.New("--watch needs --palette")
	}
	render := DefaultRender()
	if strings.TrimSpace(opts.Palette) != "" {
		palette, err := LoadPalette(opts.Palette)
		if err != nil {
			return Generator{}, err
		}
		render, err = palette.Apply(render)
		if err != nil {
			return Generator{}, fmt.Errorf("palette %s: %w", opts.Palette, err)
		}
	}
	if len(opts.Sizes) > 0 {
		render.Sizes = append([]int(nil), opts.Sizes...)
	}
	if err := ValidateRender(render); err != nil {
		return Generator{}, err
	}

	outDir := strings.TrimSpace(opts.OutDir)
	if outDir == "" {
		outDir = DefaultOutDir
	}
	return Generator{
		OutDir: filepath.Clean(outDir),
		SVG:    opts.SVG,
		ICO:    opts.ICO,
		Render: render,
	}, nil
}

func ValidateRender(r Render) error {
	if len(r.Sizes) == 0 {
		return errors.New("at least one icon size is required")
	}
	seen := make(map[int]struct{}, len(r.Sizes))
	for _, size := range r.Sizes {
		if size <= 0 {
			return fmt.Errorf("icon size must be positive, got %d", size)
		}
		if _, dup := seen[size]; dup {
			return fmt.Errorf("icon size %d listed twice", size)
		}
		seen[size] = struct{}{}
	}
	if r.MarginDivisor <= 0 || r.ArrowDivisor <= 0 || r.DotDivisor <= 0 {
		return errors.New("geometry divisors must be positive")
	}
	if r.OutlineWidth < 0 {
		return errors.New("outline width must not be negative")
	}
	return nil
}
