package fractal

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultViewport(t *testing.T) {
	vp := DefaultViewport()
	if vp.Zoom != 0.004 || vp.OffsetX != -0.7 || vp.OffsetY != 0 {
		t.Errorf("DefaultViewport() = %v", vp)
	}
	if err := vp.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestViewport_PixelToPoint(t *testing.T) {
	vp := DefaultViewport()

	tests := []struct {
		name string
		x, y int
		want Point
	}{
		{"center", 500, 300, Pt(-0.7, 0)},
		{"top-left", 0, 0, Pt(-500*0.004-0.7, -300*0.004)},
		{"one pixel right", 501, 300, Pt(0.004-0.7, 0)},
		{"one pixel down", 500, 301, Pt(-0.7, 0.004)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vp.PixelToPoint(tt.x, tt.y, 1000, 600)
			if math.Abs(got.Re-tt.want.Re) > 1e-12 || math.Abs(got.Im-tt.want.Im) > 1e-12 {
				t.Errorf("PixelToPoint(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestViewport_CenterIsInsideSet(t *testing.T) {
	vp := DefaultViewport()
	c := vp.PixelToPoint(500, 300, 1000, 600)
	if got := Iterate(c); got != MaxIterations {
		t.Errorf("Iterate(center) = %d, want %d", got, MaxIterations)
	}
	if c != vp.Center() {
		t.Errorf("center pixel = %v, want %v", c, vp.Center())
	}
}

func TestViewport_Validate(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		ok   bool
	}{
		{"default", DefaultViewport(), true},
		{"tiny zoom", Viewport{Zoom: 1e-300}, true},
		{"zero zoom", Viewport{Zoom: 0}, false},
		{"negative zoom", Viewport{Zoom: -0.1}, false},
		{"NaN zoom", Viewport{Zoom: math.NaN()}, false},
		{"infinite zoom", Viewport{Zoom: math.Inf(1)}, false},
		{"NaN offset", Viewport{Zoom: 1, OffsetX: math.NaN()}, false},
		{"infinite offset", Viewport{Zoom: 1, OffsetY: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vp.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidViewport) {
				t.Errorf("Validate() = %v, want ErrInvalidViewport", err)
			}
		})
	}
}
