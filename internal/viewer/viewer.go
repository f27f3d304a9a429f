// Package viewer is the interactive terminal host: it polls keys, drives
// the navigation state and shows the raster with half-block cells.
package viewer

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/hud"
	"github.com/gogpu/fractal/internal/snapshot"
	"github.com/gogpu/fractal/nav"
	"golang.org/x/image/draw"
)

// Viewer owns the screen, the navigation state and two rasters: the front
// raster holds the last complete frame, the back raster receives render
// passes and replaces the front only when a pass succeeds.
type Viewer struct {
	screen   tcell.Screen
	renderer *fractal.Renderer
	state    *nav.State

	front, back *fractal.Raster
	rendered    bool

	shotDir string
	labeler *hud.Labeler
	now     func() time.Time

	help    bool
	message string
	frame   *image.RGBA
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithScreenshotDir sets the directory screenshots are written to.
func WithScreenshotDir(dir string) Option {
	return func(v *Viewer) { v.shotDir = dir }
}

// WithLabeler draws the title onto screenshots with l.
func WithLabeler(l *hud.Labeler) Option {
	return func(v *Viewer) { v.labeler = l }
}

// WithClock replaces time.Now for screenshot names.
func WithClock(now func() time.Time) Option {
	return func(v *Viewer) { v.now = now }
}

// New creates a viewer rendering width x height frames. The screen must
// already be initialized; the viewer does not call Fini.
func New(screen tcell.Screen, renderer *fractal.Renderer, state *nav.State, width, height int, opts ...Option) *Viewer {
	v := &Viewer{
		screen:   screen,
		renderer: renderer,
		state:    state,
		front:    fractal.NewRaster(width, height),
		back:     fractal.NewRaster(width, height),
		shotDir:  ".",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the navigation state.
func (v *Viewer) State() *nav.State { return v.state }

// Raster returns the last complete frame.
func (v *Viewer) Raster() *fractal.Raster { return v.front }

// Message returns the status bar message.
func (v *Viewer) Message() string { return v.message }

// HelpVisible reports whether the help overlay is shown.
func (v *Viewer) HelpVisible() bool { return v.help }

// Run shows frames and handles events until a quit key, a closed screen or
// a done context. Frames are rendered synchronously, only when the state
// is stale. A done context wakes a blocked PollEvent with an interrupt
// event and Run returns the context error.
func (v *Viewer) Run(ctx context.Context) error {
	fractal.Logger().Info("viewer: started",
		slog.String("mode", v.renderer.Mode().String()),
		slog.Int("width", v.front.Width()),
		slog.Int("height", v.front.Height()))

	stop := context.AfterFunc(ctx, func() {
		// A full queue wakes PollEvent anyway.
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			fractal.Logger().Info("viewer: stopped", slog.Any("reason", err))
			return err
		}
		v.Update(ctx)
		v.Draw()

		ev := v.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}
		if v.HandleEvent(ev) {
			fractal.Logger().Info("viewer: quit")
			return nil
		}
	}
}

// Update re-renders the raster if the state is stale. A failed pass keeps
// the previous frame on screen and reports the error in the status bar.
func (v *Viewer) Update(ctx context.Context) {
	if !v.state.Stale() {
		return
	}
	start := time.Now()
	if err := v.renderer.Render(ctx, v.state.Viewport(), v.back); err != nil {
		v.message = "render failed: " + err.Error()
		fractal.Logger().Warn("viewer: render failed", slog.Any("error", err))
		return
	}
	v.front, v.back = v.back, v.front
	v.rendered = true
	v.state.MarkRendered()
	fractal.Logger().Debug("viewer: frame",
		slog.String("title", v.state.Title()),
		slog.Duration("elapsed", time.Since(start)))
}

// HandleEvent applies one event and reports whether the viewer should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, cmd := KeyAction(ev)
		switch action {
		case ActionQuit:
			return true
		case ActionNavigate:
			if err := v.state.Apply(cmd); err != nil {
				v.message = err.Error()
			} else {
				v.message = cmd.String()
			}
		case ActionUndo:
			if v.state.Undo() {
				v.message = "undo"
			} else {
				v.message = "nothing to undo"
			}
		case ActionScreenshot:
			v.screenshot()
		case ActionHelp:
			v.help = !v.help
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

func (v *Viewer) screenshot() {
	if !v.rendered {
		v.message = "no frame to save"
		return
	}
	label := ""
	if v.labeler != nil {
		label = v.state.Title()
	}
	path, err := snapshot.Save(v.shotDir, v.front, label, v.labeler, v.now())
	if err != nil {
		v.message = err.Error()
		fractal.Logger().Warn("viewer: screenshot failed", slog.Any("error", err))
		return
	}
	v.message = "saved " + path
}

// Draw paints the last complete frame, the status bar and, if toggled, the
// help overlay.
func (v *Viewer) Draw() {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	v.screen.Clear()

	if rows > 1 && v.rendered {
		v.drawRaster(cols, rows-1)
	}
	v.drawStatus(cols, rows-1)
	if v.help {
		v.drawHelp(cols, rows-1)
	}
	v.screen.Show()
}

// drawRaster scales the frame to cols x 2·rows pixels and draws each cell
// as an upper half block: foreground is the top pixel, background the
// bottom one.
func (v *Viewer) drawRaster(cols, rows int) {
	bounds := image.Rect(0, 0, cols, rows*2)
	if v.frame == nil || v.frame.Bounds() != bounds {
		v.frame = image.NewRGBA(bounds)
	}
	src := v.front.ToImage()
	draw.BiLinear.Scale(v.frame, bounds, src, src.Bounds(), draw.Src, nil)

	for y := range rows {
		for x := range cols {
			top := v.frame.RGBAAt(x, 2*y)
			bottom := v.frame.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}
}

func (v *Viewer) drawStatus(cols, row int) {
	style := tcell.StyleDefault.Reverse(true)
	text := " " + v.state.Title() + "  [" + v.renderer.Mode().String() + "]"
	if v.message != "" {
		text += "  " + v.message
	}
	text += "  (h: help)"
	putString(v.screen, 0, row, cols, text, style)
}

func (v *Viewer) drawHelp(cols, rows int) {
	width := 0
	for _, l := range helpLines {
		width = max(width, len(l))
	}
	width += 4
	height := len(helpLines) + 2
	x0 := max(0, (cols-width)/2)
	y0 := max(0, (rows-height)/2)

	style := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorBlack)
	for y := y0; y < min(rows, y0+height); y++ {
		for x := x0; x < min(cols, x0+width); x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	for i, l := range helpLines {
		if y0+1+i < rows {
			putString(v.screen, x0+2, y0+1+i, min(cols, x0+width), l, style)
		}
	}
}

// putString writes s from column x up to (not including) column end,
// padding the rest of the span with spaces.
func putString(s tcell.Screen, x, y, end int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= end {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < end; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
