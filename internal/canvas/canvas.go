// Package canvas is the small 2D drawing surface the icon renderer paints on:
// a transparent NRGBA buffer with filled/stroked ellipses, filled polygons and
// PNG output.
package canvas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// kappa places cubic Bézier control points so four segments trace a circle.
const kappa = 0.5522847498

type Canvas struct {
	img *image.NRGBA
}

type pathPoint struct {
	x, y float32
}

// path is a list of closed sub-paths; lines and cubes are flattened by the
// backend rasterizer.
type path struct {
	segments []segment
}

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segCube
	segClose
)

type segment struct {
	kind segmentKind
	pts  [3]pathPoint
}

func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Ellipse fills the ellipse inscribed in bbox. A positive strokeWidth paints
// the outline inside bbox, so the filled interior is bbox inset by strokeWidth.
// A nil fill or outline skips that part.
func (c *Canvas) Ellipse(bbox image.Rectangle, fill, outline color.Color, strokeWidth int) {
	bbox = bbox.Canon()
	if bbox.Empty() {
		return
	}
	inner := bbox
	if outline != nil && strokeWidth > 0 {
		inner = bbox.Inset(strokeWidth)
	}
	if fill != nil && !inner.Empty() {
		var p path
		p.ellipse(inner, false)
		c.fill(&p, fill)
	}
	if outline == nil || strokeWidth <= 0 {
		return
	}
	var ring path
	ring.ellipse(bbox, false)
	if !inner.Empty() && inner != bbox {
		ring.ellipse(inner, true)
	}
	c.fill(&ring, outline)
}

// Polygon fills the closed polygon through points. Fewer than three points
// draw nothing.
func (c *Canvas) Polygon(points []image.Point, fill color.Color) {
	if len(points) < 3 || fill == nil {
		return
	}
	var p path
	p.moveTo(float32(points[0].X), float32(points[0].Y))
	for _, pt := range points[1:] {
		p.lineTo(float32(pt.X), float32(pt.Y))
	}
	p.close()
	c.fill(&p, fill)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to path, creating parent directories and
// replacing any existing file.
func (c *Canvas) SavePNG(path string) error {
	return SavePNG(c.img, path)
}

func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (p *path) moveTo(x, y float32) {
	p.segments = append(p.segments, segment{kind: segMove, pts: [3]pathPoint{{x, y}}})
}

func (p *path) lineTo(x, y float32) {
	p.segments = append(p.segments, segment{kind: segLine, pts: [3]pathPoint{{x, y}}})
}

func (p *path) cubeTo(x1, y1, x2, y2, x, y float32) {
	p.segments = append(p.segments, segment{kind: segCube, pts: [3]pathPoint{{x1, y1}, {x2, y2}, {x, y}}})
}

func (p *path) close() {
	p.segments = append(p.segments, segment{kind: segClose})
}

// ellipse appends the ellipse inscribed in r as four cubic segments. reverse
// flips the winding so the sub-path cuts a hole out of an enclosing one.
func (p *path) ellipse(r image.Rectangle, reverse bool) {
	cx := float32(r.Min.X+r.Max.X) / 2
	cy := float32(r.Min.Y+r.Max.Y) / 2
	rx := float32(r.Dx()) / 2
	ry := float32(r.Dy()) / 2
	kx := rx * kappa
	ky := ry * kappa

	if !reverse {
		p.moveTo(cx+rx, cy)
		p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	} else {
		p.moveTo(cx+rx, cy)
		p.cubeTo(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry)
		p.cubeTo(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy)
		p.cubeTo(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry)
		p.cubeTo(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy)
	}
	p.close()
}
