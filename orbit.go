package fractal

import "iter"

const (
	// MaxIterations is the iteration cap of the escape-time evaluator.
	// The discrete color ramp is laid out for exactly this many steps;
	// raising it makes the ramp look wrong.
	MaxIterations = 127

	// DivergenceThreshold is the escape radius. Any orbit that leaves the
	// disc |w| <= 2 diverges to infinity under w <- w² + c.
	DivergenceThreshold = 2.0

	// thresholdSq is compared against r² + i² to avoid a square root per step.
	thresholdSq = DivergenceThreshold * DivergenceThreshold
)

// Orbit returns the escape-time orbit of c as a lazy sequence of
// (step, value) pairs.
//
// The sequence starts at w0 = c and applies w <- w² + c between steps.
// Each yielded value is the one tested at that step. The sequence ends
// after the first value outside the escape radius (which is yielded)
// or after limit values, whichever comes first. It can be ranged over
// any number of times; each range restarts from w0.
//
// NaN and infinite values count as outside the escape radius.
func Orbit(c Point, limit int) iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		w := c
		for step := 0; step < limit; step++ {
			if !yield(step, w) {
				return
			}
			if escaped(w) {
				return
			}
			w = w.Square().Add(c)
		}
	}
}

// escaped reports whether w is outside the escape radius.
// The comparison is written as !(m <= 4) so a NaN magnitude escapes.
func escaped(w Point) bool {
	return !(w.AbsSq() <= thresholdSq)
}

// Iterate returns the escape time of c with the default cap: the 0-based
// step at which the orbit first leaves the escape radius, or MaxIterations
// if it never does.
func Iterate(c Point) int {
	return IterateN(c, MaxIterations)
}

// IterateN is Iterate with an explicit iteration cap.
//
// Points already outside the escape radius return 0; so does a point with a
// NaN component, which is how degenerate viewports render as background
// instead of propagating NaN into pixels.
func IterateN(c Point, limit int) int {
	for step, w := range Orbit(c, limit) {
		if escaped(w) {
			return step
		}
	}
	return limit
}
