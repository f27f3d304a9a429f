// Package hud draws one-line text labels (titles, status lines) onto
// rendered frames.
package hud

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the label size in pixels for TTF faces.
const DefaultSize = 14

// Backing is the color of the box drawn behind a label.
var Backing = color.RGBA{A: 0xb4}

// Labeler draws labels with a fixed face.
// A Labeler is not safe for concurrent use.
type Labeler struct {
	face    font.Face
	padding int

	// Set only for TTF faces: labels are measured by shaping.
	shaper *shaping.HarfbuzzShaper
	shaped *gotext.Face
	size   fixed.Int26_6
}

// New returns a labeler using the built-in 7x13 bitmap face.
func New() *Labeler {
	return &Labeler{face: basicfont.Face7x13, padding: 3}
}

// NewTTF returns a labeler using TrueType font data at size pixels.
func NewTTF(data []byte, size float64) (*Labeler, error) {
	if size <= 0 {
		size = DefaultSize
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("hud: create face: %w", err)
	}

	shaped, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("hud: parse font for shaping: %w", err)
	}

	return &Labeler{
		face:    face,
		padding: 3,
		shaper:  &shaping.HarfbuzzShaper{},
		shaped:  shaped,
		size:    fixed.Int26_6(size * 64),
	}, nil
}

// Load returns a labeler for the font file at path, or the built-in face
// when path is empty.
func Load(path string, size float64) (*Labeler, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("hud: %w", err)
	}
	return NewTTF(data, size)
}

// Shaped reports whether labels are measured by HarfBuzz shaping.
func (l *Labeler) Shaped() bool {
	return l.shaper != nil
}

// Measure returns the size of s in pixels, without padding.
func (l *Labeler) Measure(s string) (width, height int) {
	m := l.face.Metrics()
	height = (m.Ascent + m.Descent).Ceil()
	if s == "" {
		return 0, height
	}
	if l.shaper == nil {
		return font.MeasureString(l.face, s).Ceil(), height
	}

	runes := []rune(s)
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.shaped,
		Size:      l.size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return out.Advance.Ceil(), height
}

// Bounds returns the rectangle a label occupies when drawn at the top-left
// corner, padding included.
func (l *Labeler) Bounds(s string) image.Rectangle {
	w, h := l.Measure(s)
	return image.Rect(0, 0, w+2*l.padding, h+2*l.padding)
}

// Draw paints s in white over a dark box at the top-left corner of dst and
// returns the box, clipped to dst.
func (l *Labeler) Draw(dst *image.RGBA, s string) image.Rectangle {
	box := l.Bounds(s).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if box.Empty() || s == "" {
		return image.Rectangle{}
	}
	draw.Draw(dst, box, image.NewUniform(Backing), image.Point{}, draw.Over)

	ascent := l.face.Metrics().Ascent
	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: l.face,
		Dot: fixed.Point26_6{
			X: fixed.I(box.Min.X + l.padding),
			Y: fixed.I(box.Min.Y+l.padding) + ascent,
		},
	}
	d.DrawString(s)
	return box
}
