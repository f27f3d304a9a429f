package fractal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Raster is a width x height grid of opaque RGB pixels.
//
// Pixels are stored as RGBA bytes (alpha always 255) so the buffer can be
// handed to image consumers without conversion. A Raster is written only by
// a render pass and is read-only between passes.
type Raster struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewRaster creates a new black raster with the given dimensions.
// It panics if either dimension is not positive.
func NewRaster(width, height int) *Raster {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("%v: %dx%d", ErrInvalidSize, width, height))
	}
	r := &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	r.Clear(Black)
	return r
}

// Width returns the width of the raster.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster.
func (r *Raster) Height() int {
	return r.height
}

// Data returns the raw pixel data (RGBA format).
func (r *Raster) Data() []uint8 {
	return r.data
}

// Set sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (r *Raster) Set(x, y int, c RGB) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.set(x, y, c)
}

func (r *Raster) set(x, y int, c RGB) {
	i := (y*r.width + x) * 4
	r.data[i+0] = c.R
	r.data[i+1] = c.G
	r.data[i+2] = c.B
	r.data[i+3] = 0xff
}

// RGBAt returns the color of a single pixel, or Black if out of bounds.
func (r *Raster) RGBAt(x, y int) RGB {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Black
	}
	i := (y*r.width + x) * 4
	return RGB{R: r.data[i+0], G: r.data[i+1], B: r.data[i+2]}
}

// Row returns the RGBA bytes of row y. The slice aliases the raster.
func (r *Raster) Row(y int) []uint8 {
	stride := r.width * 4
	return r.data[y*stride : (y+1)*stride]
}

// Clear fills the entire raster with a color.
func (r *Raster) Clear(c RGB) {
	for i := 0; i < len(r.data); i += 4 {
		r.data[i+0] = c.R
		r.data[i+1] = c.G
		r.data[i+2] = c.B
		r.data[i+3] = 0xff
	}
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	c := &Raster{width: r.width, height: r.height, data: make([]uint8, len(r.data))}
	copy(c.data, r.data)
	return c
}

// Equal reports whether both rasters have the same size and pixels.
func (r *Raster) Equal(other *Raster) bool {
	return r.width == other.width && r.height == other.height && bytes.Equal(r.data, other.data)
}

// Band returns a write view restricted to rows [y0, y1).
// It panics if the range is empty or outside the raster.
func (r *Raster) Band(y0, y1 int) BandView {
	if y0 < 0 || y1 > r.height || y0 >= y1 {
		panic(fmt.Sprintf("fractal: band [%d,%d) outside raster height %d", y0, y1, r.height))
	}
	return BandView{raster: r, y0: y0, y1: y1}
}

// ToImage copies the raster into a new image.RGBA.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}

// SavePNG saves the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, r.ToImage())
}

// At implements the image.Image interface.
func (r *Raster) At(x, y int) color.Color {
	return r.RGBAt(x, y)
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.RGBAModel
}

// BandView is exclusive write access to the rows [Y0, Y1) of a raster for
// the duration of one render pass. Writes outside the band panic.
type BandView struct {
	raster *Raster
	y0, y1 int
}

// Y0 returns the first row of the band.
func (b BandView) Y0() int { return b.y0 }

// Y1 returns the end row of the band (exclusive).
func (b BandView) Y1() int { return b.y1 }

// Width returns the width of the underlying raster.
func (b BandView) Width() int { return b.raster.width }

// RasterHeight returns the full height of the underlying raster, which the
// viewport transform needs to center the image.
func (b BandView) RasterHeight() int { return b.raster.height }

// Set writes a pixel inside the band.
func (b BandView) Set(x, y int, c RGB) {
	if y < b.y0 || y >= b.y1 || x < 0 || x >= b.raster.width {
		panic(fmt.Sprintf("fractal: write (%d,%d) outside band [%d,%d)", x, y, b.y0, b.y1))
	}
	b.raster.set(x, y, c)
}
