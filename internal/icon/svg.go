package icon

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"envswitch-icons/internal/config"
)

// svgScale doubles the user space so half-pixel centers stay integral.
const svgScale = 2

// RenderSVG writes the same badge as Render as an SVG document of size×size.
func RenderSVG(w io.Writer, size int, cfg config.Render) error {
	g, err := Layout(size, cfg)
	if err != nil {
		return err
	}

	doc := svg.New(w)
	doc.Startview(size, size, 0, 0, size*svgScale, size*svgScale)

	badge := scaleRect(g.Badge)
	if !badge.Empty() {
		stroke := cfg.OutlineWidth * svgScale
		style := fillStyle(cfg.BadgeColor)
		if stroke > 0 {
			style += ";" + strokeStyle(cfg.OutlineColor, stroke)
		}
		// The stroke is centered on the path; pull it in so it stays inside the bbox.
		rx := badge.Dx()/2 - stroke/2
		ry := badge.Dy()/2 - stroke/2
		if rx > 0 && ry > 0 {
			doc.Ellipse(badge.Min.X+badge.Dx()/2, badge.Min.Y+badge.Dy()/2, rx, ry, style)
		}
	}

	arrowStyle := fillStyle(cfg.ArrowColor)
	for _, pts := range [][]image.Point{g.UpPoints(), g.DownPoints()} {
		xs, ys := splitScaled(pts)
		doc.Polygon(xs, ys, arrowStyle)
	}
	if g.DotRadius > 0 {
		doc.Circle(g.Center*svgScale, g.Center*svgScale, g.DotRadius*svgScale, arrowStyle)
	}
	doc.End()
	return nil
}

func SVGPath(dir string, size int) string {
	return filepath.Join(dir, FileName(size, ".svg"))
}

func scaleRect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: r.Min.Mul(svgScale), Max: r.Max.Mul(svgScale)}
}

func splitScaled(pts []image.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = p.X * svgScale
		ys[i] = p.Y * svgScale
	}
	return xs, ys
}

func fillStyle(c color.NRGBA) string {
	style := "fill:" + config.FormatHexColor(opaque(c))
	if c.A != 0xff {
		style += ";fill-opacity:" + opacity(c.A)
	}
	return style
}

func strokeStyle(c color.NRGBA, width int) string {
	style := fmt.Sprintf("stroke:%s;stroke-width:%d", config.FormatHexColor(opaque(c)), width)
	if c.A != 0xff {
		style += ";stroke-opacity:" + opacity(c.A)
	}
	return style
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

func opacity(a uint8) string {
	return strconv.FormatFloat(float64(a)/255, 'f', 3, 64)
}
