//go:build nodraw

package canvas

import "image/color"

func (c *Canvas) fill(*path, color.Color) {}

func probeBackend() Availability {
	return Availability{Status: Unavailable, Reason: "binary was built with the nodraw tag"}
}
