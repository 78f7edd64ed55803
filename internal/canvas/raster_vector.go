//go:build !nodraw

package canvas

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/vector"
)

func (c *Canvas) fill(p *path, fill color.Color) {
	bounds := c.img.Bounds()
	if bounds.Empty() || len(p.segments) == 0 {
		return
	}
	var r vector.Rasterizer
	r.Reset(bounds.Dx(), bounds.Dy())
	for _, seg := range p.segments {
		switch seg.kind {
		case segMove:
			r.MoveTo(seg.pts[0].x, seg.pts[0].y)
		case segLine:
			r.LineTo(seg.pts[0].x, seg.pts[0].y)
		case segCube:
			r.CubeTo(seg.pts[0].x, seg.pts[0].y, seg.pts[1].x, seg.pts[1].y, seg.pts[2].x, seg.pts[2].y)
		case segClose:
			r.ClosePath()
		}
	}
	r.Draw(c.img, bounds, image.NewUniform(fill), image.Point{})
}

func probeBackend() Availability {
	c := New(4, 4)
	c.Ellipse(image.Rect(0, 0, 4, 4), color.White, color.Black, 1)
	if c.img.NRGBAAt(2, 2).A == 0 {
		return Availability{Status: Unavailable, Reason: "rasterizer produced an empty test image"}
	}
	if err := c.EncodePNG(io.Discard); err != nil {
		return Availability{Status: Unavailable, Reason: err.Error()}
	}
	return Availability{Status: Available, Backend: "golang.org/x/image/vector"}
}
