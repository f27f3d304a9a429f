package fractal

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/fractal/internal/parallel"
)

func TestSplitBands(t *testing.T) {
	bands := SplitBands(600, 2)
	if len(bands) != 2 {
		t.Fatalf("len = %d, want 2", len(bands))
	}
	if bands[0].Y0 != 0 || bands[0].Y1 != 300 || bands[1].Y0 != 300 || bands[1].Y1 != 600 {
		t.Errorf("bands = %v", bands)
	}
}

func TestRender_CenterPixelIsBounded(t *testing.T) {
	r := NewRenderer(WithMode(ModeNormal))
	raster := NewRaster(1000, 600)
	if err := r.Render(context.Background(), DefaultViewport(), raster); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if got, want := raster.RGBAt(500, 300), DiscreteColor(MaxIterations); got != want {
		t.Errorf("center pixel = %v, want %v", got, want)
	}
	// The top-left corner is well outside the set.
	if got, want := raster.RGBAt(0, 0), DiscreteColor(0); got != want {
		t.Errorf("corner pixel = %v, want %v", got, want)
	}
}

func TestRender_Idempotent(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeExpRes, ModeGradient, ModeMonochrome} {
		t.Run(string(mode), func(t *testing.T) {
			r := NewRenderer(WithMode(mode), WithWorkers(4))
			vp := Viewport{Zoom: 0.01, OffsetX: -0.5, OffsetY: 0.1}

			a := NewRaster(120, 80)
			b := NewRaster(120, 80)
			if err := r.Render(context.Background(), vp, a); err != nil {
				t.Fatal(err)
			}
			if err := r.Render(context.Background(), vp, b); err != nil {
				t.Fatal(err)
			}
			if !a.Equal(b) {
				t.Error("two renders of the same viewport differ")
			}
		})
	}
}

func TestRender_IndependentOfWorkerCount(t *testing.T) {
	vp := DefaultViewport()
	want := NewRaster(100, 60)
	if err := NewRenderer(WithMode(ModeExpRes), WithWorkers(1)).Render(context.Background(), vp, want); err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{2, 3, 7, 60, 1000} {
		got := NewRaster(100, 60)
		if err := NewRenderer(WithMode(ModeExpRes), WithWorkers(n)).Render(context.Background(), vp, got); err != nil {
			t.Fatal(err)
		}
		if !got.Equal(want) {
			t.Errorf("render with %d workers differs from single band", n)
		}
	}
}

func TestRender_SmokyWithFixedSeed(t *testing.T) {
	a := NewRaster(64, 32)
	b := NewRaster(64, 32)
	r := NewRenderer(WithMode(ModeSmoky), WithSeed(42), WithWorkers(2))
	if err := r.Render(context.Background(), DefaultViewport(), a); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(context.Background(), DefaultViewport(), b); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("smoky render with a fixed seed is not reproducible")
	}
}

func TestRender_InvalidModeWritesNothing(t *testing.T) {
	r := NewRenderer(WithMode(Mode("sepia")))
	raster := NewRaster(20, 10)
	raster.Clear(RGB{9, 9, 9})
	before := raster.Clone()

	if err := r.Render(context.Background(), DefaultViewport(), raster); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if !raster.Equal(before) {
		t.Error("render with an unsupported mode modified the raster")
	}
}

func TestRender_InvalidViewport(t *testing.T) {
	r := NewRenderer()
	err := r.Render(context.Background(), Viewport{Zoom: 0}, NewRaster(4, 4))
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Render() = %v, want ErrInvalidViewport", err)
	}
	if err := r.Render(context.Background(), DefaultViewport(), nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Render(nil raster) = %v, want ErrInvalidSize", err)
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRenderer().Render(ctx, DefaultViewport(), NewRaster(10, 10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() = %v, want context.Canceled", err)
	}
}

func TestRenderBand_StaysInsideBand(t *testing.T) {
	r := NewRenderer(WithMode(ModeNormal))
	raster := NewRaster(40, 30)
	raster.Clear(RGB{1, 2, 3})

	if err := r.RenderBand(context.Background(), DefaultViewport(), raster.Band(10, 20)); err != nil {
		t.Fatalf("RenderBand() = %v", err)
	}

	for y := range 30 {
		inside := y >= 10 && y < 20
		for x := range 40 {
			untouched := raster.RGBAt(x, y) == RGB{1, 2, 3}
			if !inside && !untouched {
				t.Fatalf("pixel (%d, %d) outside the band was written", x, y)
			}
		}
	}

	full := NewRaster(40, 30)
	if err := r.Render(context.Background(), DefaultViewport(), full); err != nil {
		t.Fatal(err)
	}
	for y := 10; y < 20; y++ {
		for x := range 40 {
			if raster.RGBAt(x, y) != full.RGBAt(x, y) {
				t.Fatalf("band pixel (%d, %d) differs from full render", x, y)
			}
		}
	}
}

func TestRenderBand_SmokyMatchesRender(t *testing.T) {
	r := NewRenderer(WithMode(ModeSmoky), WithSeed(7), WithWorkers(3))
	full := NewRaster(30, 30)
	if err := r.Render(context.Background(), DefaultViewport(), full); err != nil {
		t.Fatal(err)
	}

	for _, b := range SplitBands(30, 3) {
		part := NewRaster(30, 30)
		if err := r.RenderBand(context.Background(), DefaultViewport(), part.Band(b.Y0, b.Y1)); err != nil {
			t.Fatalf("RenderBand(%v) = %v", b, err)
		}
		for y := b.Y0; y < b.Y1; y++ {
			for x := range 30 {
				if part.RGBAt(x, y) != full.RGBAt(x, y) {
					t.Fatalf("%v: pixel (%d, %d) differs from Render", b, x, y)
				}
			}
		}
	}
}

func TestRenderBand_Errors(t *testing.T) {
	r := NewRenderer()
	raster := NewRaster(10, 10)

	err := r.RenderBand(context.Background(), Viewport{Zoom: math.NaN()}, raster.Band(0, 5))
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("RenderBand(invalid viewport) = %v, want ErrInvalidViewport", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.RenderBand(ctx, DefaultViewport(), raster.Band(0, 5)); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderBand(cancelled) = %v, want context.Canceled", err)
	}
}

func TestBandError(t *testing.T) {
	pe := &parallel.PanicError{Band: parallel.Band{Index: 1, Y0: 300, Y1: 600}, Value: "boom"}
	err := bandError(pe)

	var be *BandError
	if !errors.As(err, &be) {
		t.Fatalf("bandError() = %T, want *BandError", err)
	}
	if be.Y0 != 300 || be.Y1 != 600 {
		t.Errorf("band = [%d,%d), want [300,600)", be.Y0, be.Y1)
	}
	if !errors.Is(err, pe) {
		t.Error("BandError does not unwrap to the panic")
	}

	plain := errors.New("plain")
	if bandError(plain) != plain {
		t.Error("bandError() wrapped a non-panic error")
	}
}

func TestNewRenderer_Options(t *testing.T) {
	r := NewRenderer(WithMode(ModeGradient), WithWorkers(3))
	if r.Mode() != ModeGradient || r.Workers() != 3 {
		t.Errorf("renderer = mode %q workers %d", r.Mode(), r.Workers())
	}
	if NewRenderer(WithWorkers(-1)).Workers() < 1 {
		t.Error("WithWorkers(-1) left no workers")
	}
	if NewRenderer().Mode() != DefaultMode {
		t.Errorf("default mode = %q, want %q", NewRenderer().Mode(), DefaultMode)
	}
}
