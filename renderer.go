package fractal

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
)

// Renderer evaluates the Mandelbrot set into a Raster.
//
// A Renderer holds only immutable configuration and the discrete color
// table, so one instance may serve several rasters. Concurrent Render
// calls must use distinct rasters.
type Renderer struct {
	mode     Mode
	workers  int
	gradient Coefficients
	seed     func() uint64
	colors   *ColorTable
}

// NewRenderer creates a renderer and builds its color table.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		mode:     o.mode,
		workers:  o.workers,
		gradient: o.gradient,
		seed:     o.seed,
		colors:   NewColorTable(),
	}
}

// Mode returns the coloring mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Workers returns the configured number of bands per pass.
func (r *Renderer) Workers() int {
	return r.workers
}

// Colors returns the discrete color table.
func (r *Renderer) Colors() *ColorTable {
	return r.colors
}

// Band is a half-open row range [Y0, Y1) rendered by one goroutine.
type Band = parallel.Band

// SplitBands partitions [0, height) into n contiguous, non-overlapping bands.
// Band i covers [i*height/n, (i+1)*height/n); n is clamped to [1, height].
func SplitBands(height, n int) []Band {
	return parallel.Split(height, n)
}

// Render fills the raster for the given viewport.
//
// The raster is split into bands, each band is rendered in its own goroutine
// and Render returns only after every band has finished. The context is
// checked between rows: a cancelled pass returns the context error and
// leaves the raster partially written. Any error means the raster is not a
// complete frame and must not be displayed.
func (r *Renderer) Render(ctx context.Context, vp Viewport, raster *Raster) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	if raster == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidSize)
	}

	bands := parallel.Split(raster.Height(), r.workers)
	start := time.Now()

	err := parallel.Run(ctx, bands, func(ctx context.Context, b parallel.Band) error {
		view := raster.Band(b.Y0, b.Y1)
		return r.renderBand(ctx, vp, view, r.source(view))
	})
	if err != nil {
		Logger().Warn("fractal: render pass failed",
			slog.String("viewport", vp.String()),
			slog.Any("error", err))
		return bandError(err)
	}

	Logger().Debug("fractal: render pass",
		slog.String("mode", r.mode.String()),
		slog.Int("bands", len(bands)),
		slog.Int("width", raster.Width()),
		slog.Int("height", raster.Height()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// RenderBand renders the rows of one band. It touches no pixel outside the
// band. With a fixed seed the band comes out exactly as it does in Render.
func (r *Renderer) RenderBand(ctx context.Context, vp Viewport, band BandView) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	return r.renderBand(ctx, vp, band, r.source(band))
}

// source returns the smoky random source of a band, keyed by its first row.
func (r *Renderer) source(band BandView) *rand.Rand {
	return rand.New(rand.NewPCG(r.seed(), uint64(band.Y0())))
}

// renderBand is the per-band pixel loop.
func (r *Renderer) renderBand(ctx context.Context, vp Viewport, band BandView, rng *rand.Rand) error {
	width, height := band.Width(), band.RasterHeight()
	shade := r.shader(rng)
	if shade == nil {
		return nil
	}

	for y := band.Y0(); y < band.Y1(); y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			band.Set(x, y, shade(vp.PixelToPoint(x, y, width, height)))
		}
	}
	return nil
}

// shader returns the per-pixel coloring function of the renderer's mode,
// or nil for a mode outside the supported set.
func (r *Renderer) shader(rng *rand.Rand) func(Point) RGB {
	switch r.mode {
	case ModeNormal:
		return func(c Point) RGB { return r.colors.At(Iterate(c)) }
	case ModeExpRes:
		return SmoothColor
	case ModeGradient:
		return func(c Point) RGB { return GradientColor(Iterate(c), r.gradient) }
	case ModeMonochrome:
		return func(c Point) RGB { return MonochromeColor(Iterate(c)) }
	case ModeSmoky:
		return func(c Point) RGB { return SmokyColor(Iterate(c), rng) }
	default:
		return nil
	}
}
