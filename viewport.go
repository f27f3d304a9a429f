package fractal

import (
	"fmt"
	"math"
)

// Viewport is the affine map from raster pixels to the complex plane.
//
// Zoom is the plane distance between neighbouring pixels; the offset is the
// plane point shown at the raster center. Rendering never modifies it.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// Initial viewport values: the whole set, centered slightly left of the origin.
const (
	DefaultZoom    = 0.004
	DefaultOffsetX = -0.7
	DefaultOffsetY = 0.0
)

// DefaultViewport returns the initial viewport.
func DefaultViewport() Viewport {
	return Viewport{Zoom: DefaultZoom, OffsetX: DefaultOffsetX, OffsetY: DefaultOffsetY}
}

// PixelToPoint maps pixel (x, y) of a width x height raster to the plane.
func (v Viewport) PixelToPoint(x, y, width, height int) Point {
	return Point{
		Re: (float64(x)-float64(width)/2)*v.Zoom + v.OffsetX,
		Im: (float64(y)-float64(height)/2)*v.Zoom + v.OffsetY,
	}
}

// Center returns the plane point at the raster center.
func (v Viewport) Center() Point {
	return Point{Re: v.OffsetX, Im: v.OffsetY}
}

// Validate returns ErrInvalidViewport if the zoom is not a positive finite
// number or an offset is not finite.
func (v Viewport) Validate() error {
	if !(v.Zoom > 0) || math.IsInf(v.Zoom, 0) {
		return fmt.Errorf("%w: zoom %g", ErrInvalidViewport, v.Zoom)
	}
	if !Pt(v.OffsetX, v.OffsetY).IsFinite() {
		return fmt.Errorf("%w: offset (%g, %g)", ErrInvalidViewport, v.OffsetX, v.OffsetY)
	}
	return nil
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("zoom=%g offset=(%g, %g)", v.Zoom, v.OffsetX, v.OffsetY)
}
