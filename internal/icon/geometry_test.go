package icon

import (
	"errors"
	"image"
	"testing"

	"envswitch-icons/internal/config"
)

func TestLayout_Size32PinsFloorDivision(t *testing.T) {
	g, err := Layout(32, config.DefaultRender())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if g.Center != 16 || g.ArrowSize != 8 || g.Margin != 4 || g.DotRadius != 2 {
		t.Fatalf("unexpected scalars: %+v", g)
	}
	wantUp := [6]image.Point{{12, 12}, {20, 12}, {18, 14}, {18, 15}, {14, 15}, {14, 14}}
	if g.UpChevron != wantUp {
		t.Fatalf("UpChevron = %v, want %v", g.UpChevron, wantUp)
	}
	wantDown := [6]image.Point{{12, 20}, {20, 20}, {18, 18}, {18, 17}, {14, 17}, {14, 18}}
	if g.DownChevron != wantDown {
		t.Fatalf("DownChevron = %v, want %v", g.DownChevron, wantDown)
	}
	if g.Badge != image.Rect(4, 4, 28, 28) {
		t.Fatalf("Badge = %v", g.Badge)
	}
	if g.Dot != image.Rect(14, 14, 18, 18) {
		t.Fatalf("Dot = %v", g.Dot)
	}
}

func TestLayout_ChevronsMirrorAboutCenter(t *testing.T) {
	for _, size := range []int{1, 7, 16, 33, 48, 100, 128} {
		g, err := Layout(size, config.DefaultRender())
		if err != nil {
			t.Fatalf("Layout(%d) error = %v", size, err)
		}
		for i := range g.UpChevron {
			up, down := g.UpChevron[i], g.DownChevron[i]
			if up.X != down.X || up.Y-g.Center != g.Center-down.Y {
				t.Fatalf("size %d vertex %d: up %v and down %v are not mirrored about %d", size, i, up, down, g.Center)
			}
		}
	}
}

func TestLayout_TruncatesOddSizes(t *testing.T) {
	// 48/8=6, 48/4=12 -> half 6, quarter 3, eighth 1
	g, err := Layout(48, config.DefaultRender())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	want := [6]image.Point{{18, 18}, {30, 18}, {27, 21}, {27, 23}, {21, 23}, {21, 21}}
	if g.UpChevron != want {
		t.Fatalf("UpChevron = %v, want %v", g.UpChevron, want)
	}

	// 13/4=3 -> half 1, quarter 0, eighth 0
	g, err = Layout(13, config.DefaultRender())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if g.Center != 6 || g.ArrowSize != 3 || g.Margin != 1 || g.DotRadius != 0 {
		t.Fatalf("unexpected scalars: %+v", g)
	}
	want = [6]image.Point{{5, 5}, {7, 5}, {6, 6}, {6, 6}, {6, 6}, {6, 6}}
	if g.UpChevron != want {
		t.Fatalf("UpChevron = %v, want %v", g.UpChevron, want)
	}
}

func TestLayout_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -32} {
		if _, err := Layout(size, config.DefaultRender()); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Layout(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestLayout_ZeroDivisor(t *testing.T) {
	cfg := config.DefaultRender()
	cfg.ArrowDivisor = 0
	if _, err := Layout(32, cfg); err == nil {
		t.Fatalf("expected error for zero divisor")
	}
}
