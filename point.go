package fractal

import "math"

// Point is a point in the complex plane.
// Re is the real part and Im the imaginary part.
type Point struct {
	Re, Im float64
}

// Pt is a convenience function to create a Point.
func Pt(re, im float64) Point {
	return Point{Re: re, Im: im}
}

// Add returns the complex sum p + q.
func (p Point) Add(q Point) Point {
	return Point{Re: p.Re + q.Re, Im: p.Im + q.Im}
}

// Sub returns the complex difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{Re: p.Re - q.Re, Im: p.Im - q.Im}
}

// Mul returns the complex product p * q.
func (p Point) Mul(q Point) Point {
	return Point{
		Re: p.Re*q.Re - p.Im*q.Im,
		Im: p.Re*q.Im + p.Im*q.Re,
	}
}

// Square returns p * p.
// It is written out so that the orbit loop performs exactly
// one multiply per term, matching the classic r²-i², 2ri update.
func (p Point) Square() Point {
	return Point{
		Re: p.Re*p.Re - p.Im*p.Im,
		Im: 2.0 * p.Re * p.Im,
	}
}

// Abs returns the magnitude |p|.
func (p Point) Abs() float64 {
	return math.Sqrt(p.Re*p.Re + p.Im*p.Im)
}

// AbsSq returns the squared magnitude r² + i².
func (p Point) AbsSq() float64 {
	return p.Re*p.Re + p.Im*p.Im
}

// Complex converts p to a complex128.
func (p Point) Complex() complex128 {
	return complex(p.Re, p.Im)
}

// FromComplex converts a complex128 to a Point.
func FromComplex(c complex128) Point {
	return Point{Re: real(c), Im: imag(c)}
}

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Re) && !math.IsInf(p.Re, 0) &&
		!math.IsNaN(p.Im) && !math.IsInf(p.Im, 0)
}
