// Package fractal renders the Mandelbrot set into an RGB raster.
//
// # Overview
//
// fractal is a Pure Go escape-time renderer. A Renderer maps every pixel of
// a Raster to a point in the complex plane through a Viewport, runs the
// escape-time iteration on it and colors the pixel with one of several
// coloring modes. Rendering is split into horizontal bands that run in
// parallel, one goroutine per band.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	r := fractal.NewRenderer(fractal.WithMode(fractal.ModeNormal))
//	raster := fractal.NewRaster(1000, 600)
//
//	if err := r.Render(ctx, fractal.DefaultViewport(), raster); err != nil {
//	    return err
//	}
//	raster.SavePNG("mandelbrot.png")
//
// # Coloring Modes
//
//   - normal: discrete 4-band ramp (red, blue, green, red) from a precomputed table
//   - exp-res: the ramp blended across iteration boundaries by an exponential
//     escape weight; removes banding at the cost of an exp per step
//   - gradient: linear intensity scaled by three channel coefficients
//   - monochrome: gradient with a fixed tint
//   - smoky: gradient with random coefficients per pixel
//
// # Coordinate System
//
// Pixel (x, y) maps to re = (x - width/2)*zoom + offsetX and
// im = (y - height/2)*zoom + offsetY. Zoom is the plane distance between
// neighbouring pixels, so smaller zoom values magnify.
//
// # Precision
//
// The evaluator uses float64 arithmetic; detail is lost past a zoom of about
// 1e-15.
//
// # Navigation
//
// Interactive hosts keep a nav.State, which applies zoom and pan commands,
// records them for undo and tells the host when the raster is stale.
package fractal

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
