package viewer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/fractal/nav"
)

// Action is what a key press asks the viewer to do.
type Action uint8

// Viewer actions.
const (
	ActionNone Action = iota
	ActionNavigate
	ActionUndo
	ActionScreenshot
	ActionHelp
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:       "none",
	ActionNavigate:   "navigate",
	ActionUndo:       "undo",
	ActionScreenshot: "screenshot",
	ActionHelp:       "help",
	ActionQuit:       "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

var runeCommands = map[rune]nav.Command{
	'=': nav.ZoomIn,
	'+': nav.ZoomIn,
	'-': nav.ZoomOut,
	'_': nav.ZoomOut,
	'u': nav.PanUp,
	'd': nav.PanDown,
	'l': nav.PanLeft,
	'r': nav.PanRight,
}

var keyCommands = map[tcell.Key]nav.Command{
	tcell.KeyUp:    nav.PanUp,
	tcell.KeyDown:  nav.PanDown,
	tcell.KeyLeft:  nav.PanLeft,
	tcell.KeyRight: nav.PanRight,
}

// KeyAction maps a key press to an action. For ActionNavigate the command
// is returned too. Unmapped keys yield ActionNone.
func KeyAction(ev *tcell.EventKey) (Action, nav.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionUndo, 0
	case tcell.KeyRune:
		r := ev.Rune()
		if cmd, ok := runeCommands[r]; ok {
			return ActionNavigate, cmd
		}
		switch r {
		case 'z':
			return ActionUndo, 0
		case 's':
			return ActionScreenshot, 0
		case 'h', '?':
			return ActionHelp, 0
		case 'q':
			return ActionQuit, 0
		}
	default:
		if cmd, ok := keyCommands[ev.Key()]; ok {
			return ActionNavigate, cmd
		}
	}
	return ActionNone, 0
}

// helpLines is the text of the help overlay.
var helpLines = []string{
	"Mandelbrot viewer",
	"",
	"  = +        zoom in",
	"  - _        zoom out",
	"  u  Up      pan up",
	"  d  Down    pan down",
	"  l  Left    pan left",
	"  r  Right   pan right",
	"  z  Bksp    undo",
	"  s          screenshot",
	"  h  ?       toggle help",
	"  q  Esc     quit",
}
