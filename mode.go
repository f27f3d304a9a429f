package fractal

import (
	"fmt"
	"strings"
)

// Mode selects the coloring strategy of a render pass.
type Mode string

// Supported modes.
const (
	// ModeNormal colors by the precomputed discrete ramp.
	ModeNormal Mode = "normal"

	// ModeExpRes blends adjacent ramp colors with an exponential
	// escape weight. It is the default and the most expensive mode.
	ModeExpRes Mode = "exp-res"

	// ModeGradient is a linear intensity ramp scaled by caller coefficients.
	ModeGradient Mode = "gradient"

	// ModeSmoky is the gradient with random coefficients per pixel.
	ModeSmoky Mode = "smoky"

	// ModeMonochrome is the gradient with a fixed purple tint.
	ModeMonochrome Mode = "monochrome"
)

// DefaultMode is used when no mode is given.
const DefaultMode = ModeExpRes

// Modes returns all supported modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeNormal, ModeExpRes, ModeGradient, ModeSmoky, ModeMonochrome}
}

// ParseMode parses a mode name. The empty string selects DefaultMode.
// Names are matched case-insensitively after trimming spaces.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMode, s, modeList())
	}
	return m, nil
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeNormal, ModeExpRes, ModeGradient, ModeSmoky, ModeMonochrome:
		return true
	}
	return false
}

// Deterministic reports whether two passes with the same viewport
// produce identical rasters in this mode.
func (m Mode) Deterministic() bool {
	return m != ModeSmoky
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

func modeList() string {
	names := make([]string, 0, 5)
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
