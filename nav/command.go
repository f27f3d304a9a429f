package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/fractal"
)

// ErrUnknownCommand is returned by ParseCommand for names outside the
// command set.
var ErrUnknownCommand = errors.New("nav: unknown command")

// Command is a reversible navigation step.
type Command uint8

// Navigation commands.
const (
	ZoomIn Command = iota
	ZoomOut
	PanUp
	PanDown
	PanLeft
	PanRight
)

var commandNames = [...]string{
	ZoomIn:   "zoom-in",
	ZoomOut:  "zoom-out",
	PanUp:    "pan-up",
	PanDown:  "pan-down",
	PanLeft:  "pan-left",
	PanRight: "pan-right",
}

// Commands returns every navigation command.
func Commands() []Command {
	return []Command{ZoomIn, ZoomOut, PanUp, PanDown, PanLeft, PanRight}
}

// String returns the command name used by scripts and the stream protocol.
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// Valid reports whether c is one of the navigation commands.
func (c Command) Valid() bool {
	return int(c) < len(commandNames)
}

// ParseCommand returns the command with the given name.
func ParseCommand(s string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Inverse returns the command that undoes c algebraically.
func (c Command) Inverse() Command {
	switch c {
	case ZoomIn:
		return ZoomOut
	case ZoomOut:
		return ZoomIn
	case PanUp:
		return PanDown
	case PanDown:
		return PanUp
	case PanLeft:
		return PanRight
	case PanRight:
		return PanLeft
	}
	return c
}

// Factors are the step sizes of navigation.
type Factors struct {
	// Zoom multiplies the viewport zoom on ZoomIn and divides it on ZoomOut.
	Zoom float64

	// Offset is the pan step in pixels; the plane step is Offset × zoom.
	Offset float64
}

// DefaultFactors are the zoom and pan steps of the interactive viewer.
var DefaultFactors = Factors{Zoom: 0.9, Offset: 40}

// Apply returns vp moved by c with the default factors.
func (c Command) Apply(vp fractal.Viewport) fractal.Viewport {
	return c.ApplyFactors(vp, DefaultFactors)
}

// ApplyFactors returns vp moved by c.
//
// Pan steps scale with the current zoom so panning moves the same number of
// pixels at every magnification.
func (c Command) ApplyFactors(vp fractal.Viewport, f Factors) fractal.Viewport {
	step := f.Offset * vp.Zoom
	switch c {
	case ZoomIn:
		vp.Zoom *= f.Zoom
	case ZoomOut:
		vp.Zoom /= f.Zoom
	case PanUp:
		vp.OffsetY += step
	case PanDown:
		vp.OffsetY -= step
	case PanLeft:
		vp.OffsetX += step
	case PanRight:
		vp.OffsetX -= step
	}
	return vp
}

// magnify returns the magnification factor after c. Zooming in by f.Zoom
// magnifies by 1/f.Zoom; pans leave it unchanged.
func (c Command) magnify(factor float64, f Factors) float64 {
	switch c {
	case ZoomIn:
		return factor / f.Zoom
	case ZoomOut:
		return factor * f.Zoom
	}
	return factor
}
