package fractal

import (
	"image/color"
	"math"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface. The color is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = 0xffff
	return
}

// NRGBA converts c to the standard library's color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// vec3 is an unclamped floating point color used while blending.
type vec3 [3]float64

// scale returns v multiplied by k.
func (v vec3) scale(k float64) vec3 {
	return vec3{v[0] * k, v[1] * k, v[2] * k}
}

// add returns the component-wise sum of v and w.
func (v vec3) add(w vec3) vec3 {
	return vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// rgb truncates each channel toward zero and clamps it to [0, 255].
func (v vec3) rgb() RGB {
	return RGB{R: channel(v[0]), G: channel(v[1]), B: channel(v[2])}
}

// channel converts a blended channel value to 8 bits.
func channel(x float64) uint8 {
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(x)
	}
}

// Common colors
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)
