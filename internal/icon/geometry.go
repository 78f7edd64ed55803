// Package icon draws the environment-switcher badge: a circular backdrop with
// an up and a down chevron and a center dot.
//
// All geometry is integer math with floor division. Every operand is
// non-negative for a positive size, so Go's truncating division is floor
// division here. The truncation is part of the glyph's shape; do not round.
package icon

import (
	"errors"
	"fmt"
	"image"

	"envswitch-icons/internal/config"
)

var ErrInvalidSize = errors.New("icon size must be a positive integer")

// Geometry is every coordinate the badge needs for one size.
type Geometry struct {
	Margin      int
	Center      int
	ArrowSize   int
	DotRadius   int
	Badge       image.Rectangle
	UpChevron   [6]image.Point
	DownChevron [6]image.Point
	Dot         image.Rectangle
}

func Layout(size int, cfg config.Render) (Geometry, error) {
	if size <= 0 {
		return Geometry{}, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if cfg.MarginDivisor <= 0 || cfg.ArrowDivisor <= 0 || cfg.DotDivisor <= 0 {
		return Geometry{}, errors.New("geometry divisors must be positive")
	}

	margin := size / cfg.MarginDivisor
	center := size / 2
	arrow := size / cfg.ArrowDivisor
	dot := size / cfg.DotDivisor

	g := Geometry{
		Margin:    margin,
		Center:    center,
		ArrowSize: arrow,
		DotRadius: dot,
		Badge:     image.Rect(margin, margin, size-margin, size-margin),
		Dot:       image.Rect(center-dot, center-dot, center+dot, center+dot),
	}
	g.UpChevron = chevron(center, arrow, -1)
	g.DownChevron = chevron(center, arrow, 1)
	return g, nil
}

// chevron builds the six-vertex arrow. dir -1 points up, 1 points down; the
// two shapes mirror each other about center.
func chevron(c, a, dir int) [6]image.Point {
	half, quarter, eighth := a/2, a/4, a/8
	return [6]image.Point{
		{X: c - half, Y: c + dir*half},
		{X: c + half, Y: c + dir*half},
		{X: c + quarter, Y: c + dir*quarter},
		{X: c + quarter, Y: c + dir*eighth},
		{X: c - quarter, Y: c + dir*eighth},
		{X: c - quarter, Y: c + dir*quarter},
	}
}

func (g Geometry) UpPoints() []image.Point {
	return g.UpChevron[:]
}

func (g Geometry) DownPoints() []image.Point {
	return g.DownChevron[:]
}
