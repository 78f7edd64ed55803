package icon

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"envswitch-icons/internal/canvas"
	"envswitch-icons/internal/config"
)

// Render draws the badge at size×size on a transparent canvas. Layers are
// painted back to front: badge, up chevron, down chevron, center dot.
func Render(size int, cfg config.Render) (*image.NRGBA, error) {
	g, err := Layout(size, cfg)
	if err != nil {
		return nil, err
	}
	c := canvas.New(size, size)
	c.Ellipse(g.Badge, cfg.BadgeColor, cfg.OutlineColor, cfg.OutlineWidth)
	c.Polygon(g.UpPoints(), cfg.ArrowColor)
	c.Polygon(g.DownPoints(), cfg.ArrowColor)
	c.Ellipse(g.Dot, cfg.ArrowColor, nil, 0)
	return c.Image(), nil
}

// Save writes img to path as PNG, creating parent directories first.
func Save(img image.Image, path string) error {
	if err := canvas.SavePNG(img, path); err != nil {
		return fmt.Errorf("save icon: %w", err)
	}
	return nil
}

func FileName(size int, ext string) string {
	return "icon" + strconv.Itoa(size) + ext
}

func PNGPath(dir string, size int) string {
	return filepath.Join(dir, FileName(size, ".png"))
}
