package fractal

import (
	"math/rand/v2"
	"runtime"
)

// RendererOption configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default: exp-res mode, one band per CPU
//	r := fractal.NewRenderer()
//
//	// Discrete ramp on two bands
//	r := fractal.NewRenderer(fractal.WithMode(fractal.ModeNormal), fractal.WithWorkers(2))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	mode     Mode
	workers  int
	gradient Coefficients
	seed     func() uint64
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		mode:     DefaultMode,
		workers:  runtime.NumCPU(),
		gradient: Grayscale,
		seed:     rand.Uint64,
	}
}

// WithMode sets the coloring mode. A mode outside the supported set is
// accepted and renders nothing; validate names with ParseMode first.
func WithMode(m Mode) RendererOption {
	return func(o *rendererOptions) {
		o.mode = m
	}
}

// WithWorkers sets the number of bands (and goroutines) per render pass.
// Zero or negative selects runtime.NumCPU(). The count is further clamped
// to the raster height at render time.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.workers = n
	}
}

// WithGradient sets the channel coefficients of ModeGradient.
func WithGradient(k Coefficients) RendererOption {
	return func(o *rendererOptions) {
		o.gradient = k
	}
}

// WithSeed fixes the seed of the per-band random sources used by ModeSmoky.
// Without it every pass draws a fresh seed.
func WithSeed(seed uint64) RendererOption {
	return func(o *rendererOptions) {
		o.seed = func() uint64 { return seed }
	}
}
