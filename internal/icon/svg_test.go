package icon

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"envswitch-icons/internal/config"
)

func TestRenderSVG_Size32(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, 32, config.DefaultRender()); err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`width="32"`,
		`height="32"`,
		`viewBox="0 0 64 64"`,
		`fill:#2196F3;stroke:#FFFFFF;stroke-width:4`,
		// up chevron, doubled user space
		`points="24,24 40,24 36,28 36,30 28,30 28,28`,
		`points="24,40 40,40 36,36 36,34 28,34 28,36`,
		`<circle cx="32" cy="32" r="4"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("svg is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVG_TranslucentColors(t *testing.T) {
	cfg := config.DefaultRender()
	cfg.BadgeColor.A = 0x80
	var buf bytes.Buffer
	if err := RenderSVG(&buf, 16, cfg); err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(buf.String(), "fill-opacity:0.502") {
		t.Fatalf("expected fill-opacity in %s", buf.String())
	}
}

func TestRenderSVG_InvalidSize(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, 0, config.DefaultRender()); err == nil {
		t.Fatalf("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written for an invalid size")
	}
}

func TestSVGPath(t *testing.T) {
	if got := SVGPath("icons", 128); !strings.HasSuffix(got, "icon128.svg") {
		t.Fatalf("SVGPath() = %q", got)
	}
}
