package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Palette is the on-disk override file. Unset fields keep the defaults.
type Palette struct {
	Sizes         []int  `toml:"sizes"`
	BadgeColor    string `toml:"badge_color"`
	ArrowColor    string `toml:"arrow_color"`
	OutlineColor  string `toml:"outline_color"`
	OutlineWidth  *int   `toml:"outline_width"`
	MarginDivisor *int   `toml:"margin_divisor"`
	ArrowDivisor  *int   `toml:"arrow_divisor"`
	DotDivisor    *int   `toml:"dot_divisor"`
}

func LoadPalette(path string) (Palette, error) {
	var palette Palette
	meta, err := toml.DecodeFile(path, &palette)
	if err != nil {
		return Palette{}, fmt.Errorf("load palette %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Palette{}, fmt.Errorf("load palette %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return palette, nil
}

func (p Palette) Apply(base Render) (Render, error) {
	out := base
	if len(p.Sizes) > 0 {
		out.Sizes = append([]int(nil), p.Sizes...)
	}
	for _, field := range []struct {
		name string
		raw  string
		dst  *color.NRGBA
	}{
		{name: "badge_color", raw: p.BadgeColor, dst: &out.BadgeColor},
		{name: "arrow_color", raw: p.ArrowColor, dst: &out.ArrowColor},
		{name: "outline_color", raw: p.OutlineColor, dst: &out.OutlineColor},
	} {
		if strings.TrimSpace(field.raw) == "" {
			continue
		}
		c, err := ParseHexColor(field.raw)
		if err != nil {
			return Render{}, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = c
	}
	if p.OutlineWidth != nil {
		out.OutlineWidth = *p.OutlineWidth
	}
	if p.MarginDivisor != nil {
		out.MarginDivisor = *p.MarginDivisor
	}
	if p.ArrowDivisor != nil {
		out.ArrowDivisor = *p.ArrowDivisor
	}
	if p.DotDivisor != nil {
		out.DotDivisor = *p.DotDivisor
	}
	return out, nil
}

// ParseHexColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func ParseHexColor(raw string) (color.NRGBA, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	switch len(value) {
	case 3:
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]}) + "ff"
	case 6:
		value += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q", raw)
	}
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Join(fmt.Errorf("invalid color %q", raw), err)
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

func FormatHexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
