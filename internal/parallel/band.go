// Package parallel provides band-based parallel rendering infrastructure for gogpu/fractal.
//
// The raster is divided into horizontal row bands that are rendered
// independently, one goroutine per band. Key properties:
//
//   - Bands are a disjoint, ordered, gapless cover of [0, height)
//   - Each band owns its rows exclusively for the duration of a pass
//   - Goroutines are spawned per pass and joined before Run returns
//
// Thread safety: Band values are immutable. Run is safe for concurrent use
// as long as concurrent passes do not share a destination buffer.
package parallel

import "fmt"

// Band is a half-open range of raster rows [Y0, Y1) owned by one worker.
type Band struct {
	// Index is the position of the band in its partition (0-based).
	Index int

	// Y0 is the first row of the band (inclusive).
	Y0 int

	// Y1 is the end row of the band (exclusive).
	Y1 int
}

// Height returns the number of rows in the band.
func (b Band) Height() int {
	return b.Y1 - b.Y0
}

// Contains returns true if row y belongs to the band.
func (b Band) Contains(y int) bool {
	return y >= b.Y0 && y < b.Y1
}

// String implements fmt.Stringer.
func (b Band) String() string {
	return fmt.Sprintf("band %d [%d,%d)", b.Index, b.Y0, b.Y1)
}

// Split partitions [0, height) into n contiguous bands of near-equal height.
//
// Band i covers [i*height/n, (i+1)*height/n). n is clamped to [1, height],
// so no band is ever empty. Returns nil if height <= 0.
func Split(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = max(1, min(n, height))

	bands := make([]Band, n)
	for i := range n {
		bands[i] = Band{
			Index: i,
			Y0:    i * height / n,
			Y1:    (i + 1) * height / n,
		}
	}
	return bands
}
