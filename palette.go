package fractal

import (
	"math"
	"math/rand/v2"
)

// Band thresholds of the discrete ramp.
// Colour gradient: red -> blue -> green -> red -> black
// at iterations      0  ->  16  ->  32   -> 64  -> 127.
const (
	rampBlue  = 16
	rampGreen = 32
	rampRed   = 64
)

// DiscreteColor maps an iteration count to the 4-band discrete ramp.
//
// The channel formulas are affine in the iteration count within each band.
// Values are narrowed to 8 bits with wrap-around, so iteration 0 comes out
// as pure blue (r = 256 wraps to 0, b = -1 wraps to 255).
//
// The count must be in [0, MaxIterations]; it is clamped otherwise.
func DiscreteColor(iterations int) RGB {
	it := clampIterations(iterations)

	var r, g, b int
	switch {
	case it < rampBlue:
		r = 16 * (16 - it)
		g = 0
		b = 16*it - 1
	case it < rampGreen:
		r = 0
		g = 16 * (it - 16)
		b = 16*(32-it) - 1
	case it < rampRed:
		r = 8 * (it - 32)
		g = 8*(64-it) - 1
		b = 0
	default:
		r = 255 - (it-64)*4
		g = 0
		b = 0
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// rampVector is the floating point form of the discrete ramp used for
// blending. Unlike DiscreteColor, a count of zero or less is black.
func rampVector(iterations int) vec3 {
	it := min(iterations, MaxIterations)
	switch {
	case it <= 0:
		return vec3{}
	case it < rampBlue:
		return vec3{16.0 * float64(16-it), 0, 16.0*float64(it) - 1}
	case it < rampGreen:
		return vec3{0, 16.0 * float64(it-16), 16.0*float64(32-it) - 1}
	case it < rampRed:
		return vec3{8.0 * float64(it-32), 8.0*float64(64-it) - 1, 0}
	default:
		return vec3{255.0 - float64(it-64)*4, 0, 0}
	}
}

// ColorTable is a precomputed DiscreteColor for every possible iteration count.
type ColorTable [MaxIterations + 1]RGB

// NewColorTable builds the discrete color table.
func NewColorTable() *ColorTable {
	var t ColorTable
	for i := range t {
		t[i] = DiscreteColor(i)
	}
	return &t
}

// At returns the color for an iteration count, clamped to [0, MaxIterations].
func (t *ColorTable) At(iterations int) RGB {
	return t[clampIterations(iterations)]
}

// SmoothColor evaluates c with its own orbit walk and returns a color blended
// between the ramp colors at the escape step and the step after it.
//
// Every completed step contributes exp(-|w'| - 0.5/|w - w'|) to the blend
// weight, where w' is the next orbit value. Points that escape immediately
// get a zero weight and so take the color of step 1.
func SmoothColor(c Point) RGB {
	var (
		expiter float64
		prev    Point
	)
	iter := MaxIterations

	for step, w := range Orbit(c, MaxIterations+1) {
		if step > 0 {
			expiter += math.Exp(-w.Abs() - 0.5/prev.Sub(w).Abs())
		}
		if step == MaxIterations {
			break
		}
		if escaped(w) {
			iter = step
			break
		}
		prev = w
	}

	to := rampVector(iter).scale(expiter)
	from := rampVector(min(iter+1, MaxIterations)).scale(1 - expiter)
	return to.add(from).rgb()
}

// Coefficients scales the three channels of the gradient strategy.
// Each coefficient is expected in [0, 1].
type Coefficients struct {
	R, G, B float64
}

// Predefined gradient coefficients.
var (
	// Grayscale keeps all channels at full intensity.
	Grayscale = Coefficients{R: 1, G: 1, B: 1}

	// Monochrome is the fixed tint of the monochrome mode.
	Monochrome = Coefficients{R: 0.7, G: 0.3, B: 0.6}
)

// GradientColor maps an iteration count to an intensity that falls off
// linearly from 255 at iteration 0 to 0 at MaxIterations, then scales each
// channel by its coefficient.
func GradientColor(iterations int, k Coefficients) RGB {
	it := clampIterations(iterations)
	c := 255.0 * float64(min(MaxIterations-it, MaxIterations)) / MaxIterations
	return vec3{c * k.R, c * k.G, c * k.B}.rgb()
}

// MonochromeColor is GradientColor with the Monochrome coefficients.
func MonochromeColor(iterations int) RGB {
	return GradientColor(iterations, Monochrome)
}

// SmokyColor is GradientColor with three coefficients drawn uniformly from
// [0, 1) on every call. The output is intentionally non-deterministic.
func SmokyColor(iterations int, rng *rand.Rand) RGB {
	k := Coefficients{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	return GradientColor(iterations, k)
}

// clampIterations restricts an iteration count to [0, MaxIterations].
func clampIterations(it int) int {
	return max(0, min(it, MaxIterations))
}
