package nav

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/fractal"
	"golang.org/x/text/message"
)

// State is the navigation state of one viewer.
type State struct {
	viewport fractal.Viewport
	factor   float64
	factors  Factors
	history  *History
	stale    bool
	printer  *message.Printer
}

// New creates a state at the initial viewport with an empty history.
// The state starts stale so the first frame gets rendered.
func New(opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &State{
		viewport: o.viewport,
		factor:   1,
		factors:  o.factors,
		history:  NewHistory(o.limit),
		stale:    true,
		printer:  message.NewPrinter(o.locale),
	}
}

// Viewport returns the current viewport.
func (s *State) Viewport() fractal.Viewport { return s.viewport }

// Factor returns the magnification relative to the initial viewport.
func (s *State) Factor() float64 { return s.factor }

// Factors returns the navigation step sizes.
func (s *State) Factors() Factors { return s.factors }

// History returns the undo history.
func (s *State) History() *History { return s.history }

// Apply moves the viewport by cmd, records the step and marks the state
// stale. A step that would leave the viewport invalid (for example zooming
// out until the zoom overflows) is rejected and nothing changes.
func (s *State) Apply(cmd Command) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
	next := cmd.ApplyFactors(s.viewport, s.factors)
	if err := next.Validate(); err != nil {
		fractal.Logger().Warn("nav: command rejected",
			slog.String("command", cmd.String()),
			slog.Any("error", err))
		return err
	}

	if s.history.Push(Entry{Command: cmd, Viewport: s.viewport, Factor: s.factor}) {
		fractal.Logger().Debug("nav: history full, dropped oldest entry",
			slog.Int("limit", s.history.Limit()))
	}
	s.viewport = next
	s.factor = cmd.magnify(s.factor, s.factors)
	s.stale = true

	fractal.Logger().Debug("nav: apply",
		slog.String("command", cmd.String()),
		slog.String("viewport", s.viewport.String()))
	return nil
}

// Undo restores the state before the most recent command. It reports false
// and changes nothing when the history is empty. Undo is not recorded.
func (s *State) Undo() bool {
	e, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.viewport = e.Viewport
	s.factor = e.Factor
	s.stale = true

	fractal.Logger().Debug("nav: undo",
		slog.String("command", e.Command.String()),
		slog.String("viewport", s.viewport.String()))
	return true
}

// Stale reports whether the raster no longer matches the viewport.
func (s *State) Stale() bool { return s.stale }

// MarkRendered records that a complete frame of the current viewport exists.
func (s *State) MarkRendered() { s.stale = false }

// MarkStale forces the next frame to be rendered, e.g. after a resize.
func (s *State) MarkStale() { s.stale = true }

// Title returns the window title, "Mandelbrot: <factor>x" with six
// fractional digits, formatted for the configured locale. Factors of 1000
// and more carry the locale's digit grouping, e.g. "1,047.114991x".
func (s *State) Title() string {
	return s.printer.Sprintf("Mandelbrot: %.6fx", s.factor)
}

// ScreenshotName returns the file name of a screenshot taken at t,
// "Mandelbrot_HH:MM:SS.png" in t's location.
func ScreenshotName(t time.Time) string {
	return "Mandelbrot_" + t.Format(time.TimeOnly) + ".png"
}
