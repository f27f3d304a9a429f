package nav

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/fractal"
	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	s := New()
	if s.Viewport() != fractal.DefaultViewport() {
		t.Errorf("Viewport() = %v", s.Viewport())
	}
	if s.Factor() != 1 {
		t.Errorf("Factor() = %g, want 1", s.Factor())
	}
	if !s.Stale() {
		t.Error("new state is not stale")
	}
	if s.History().Len() != 0 {
		t.Error("new state has history")
	}
}

func TestState_ZoomInUndoIsExact(t *testing.T) {
	s := New(WithViewport(fractal.Viewport{Zoom: 0.0037, OffsetX: -0.743643887, OffsetY: 0.131825904}))
	before := s.Viewport()

	if err := s.Apply(ZoomIn); err != nil {
		t.Fatal(err)
	}
	s.MarkRendered()
	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if s.Viewport() != before {
		t.Errorf("viewport after undo = %v, want %v", s.Viewport(), before)
	}
	if s.Factor() != 1 {
		t.Errorf("factor after undo = %g, want 1", s.Factor())
	}
	if !s.Stale() {
		t.Error("undo did not mark the state stale")
	}
}

func TestState_UndoSequence(t *testing.T) {
	s := New()
	var seen []fractal.Viewport
	for _, c := range []Command{ZoomIn, ZoomIn, PanLeft, PanUp, ZoomOut, PanRight, PanDown} {
		seen = append(seen, s.Viewport())
		if err := s.Apply(c); err != nil {
			t.Fatal(err)
		}
	}
	for i := len(seen) - 1; i >= 0; i-- {
		s.Undo()
		if s.Viewport() != seen[i] {
			t.Fatalf("undo %d: viewport = %v, want %v", i, s.Viewport(), seen[i])
		}
	}
	if s.History().Len() != 0 {
		t.Errorf("history length = %d after undoing everything", s.History().Len())
	}
}

func TestState_UndoEmpty(t *testing.T) {
	s := New()
	s.MarkRendered()
	if s.Undo() {
		t.Error("Undo() on empty history = true")
	}
	if s.Stale() {
		t.Error("empty undo marked the state stale")
	}
	if s.Viewport() != fractal.DefaultViewport() {
		t.Error("empty undo changed the viewport")
	}
}

func TestState_ApplyMarksStale(t *testing.T) {
	s := New()
	s.MarkRendered()
	if s.Stale() {
		t.Fatal("MarkRendered() left the state stale")
	}
	if err := s.Apply(PanLeft); err != nil {
		t.Fatal(err)
	}
	if !s.Stale() {
		t.Error("Apply() did not mark the state stale")
	}
	if s.History().Len() != 1 {
		t.Errorf("history length = %d, want 1", s.History().Len())
	}
	s.MarkRendered()
	s.MarkStale()
	if !s.Stale() {
		t.Error("MarkStale() did not mark the state stale")
	}
}

func TestState_Factor(t *testing.T) {
	s := New()
	k := DefaultFactors.Zoom
	s.Apply(ZoomIn)
	s.Apply(ZoomIn)
	want := 1 / k / k
	if s.Factor() != want {
		t.Errorf("Factor() = %g, want %g", s.Factor(), want)
	}
	s.Apply(PanUp)
	s.Apply(ZoomOut)
	if want *= k; s.Factor() != want {
		t.Errorf("Factor() = %g, want %g", s.Factor(), want)
	}
}

func TestState_RejectsInvalidViewport(t *testing.T) {
	s := New(WithViewport(fractal.Viewport{Zoom: math.MaxFloat64}))
	s.MarkRendered()

	err := s.Apply(ZoomOut)
	if !errors.Is(err, fractal.ErrInvalidViewport) {
		t.Fatalf("Apply(ZoomOut) = %v, want ErrInvalidViewport", err)
	}
	if s.History().Len() != 0 || s.Stale() {
		t.Error("rejected command changed the state")
	}
	if err := s.Apply(Command(99)); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Apply(99) = %v, want ErrUnknownCommand", err)
	}
}

func TestState_HistoryLimit(t *testing.T) {
	s := New(WithHistoryLimit(4))
	for range 10 {
		s.Apply(PanLeft)
	}
	if s.History().Len() != 4 {
		t.Fatalf("history length = %d, want 4", s.History().Len())
	}
	n := 0
	for s.Undo() {
		n++
	}
	if n != 4 {
		t.Errorf("undid %d commands, want 4", n)
	}
}

func TestState_WithFactors(t *testing.T) {
	s := New(WithViewport(fractal.Viewport{Zoom: 1}), WithFactors(0.5, 10))
	s.Apply(ZoomIn)
	if s.Viewport().Zoom != 0.5 || s.Factor() != 2 {
		t.Errorf("after ZoomIn: zoom %g factor %g", s.Viewport().Zoom, s.Factor())
	}
	s.Apply(PanUp)
	if s.Viewport().OffsetY != 5 {
		t.Errorf("after PanUp: offset %g, want 5", s.Viewport().OffsetY)
	}

	d := New(WithFactors(0, -1))
	if d.Factors() != DefaultFactors {
		t.Errorf("non-positive factors = %v, want defaults", d.Factors())
	}
}

func TestState_Title(t *testing.T) {
	s := New()
	if got := s.Title(); got != "Mandelbrot: 1.000000x" {
		t.Errorf("Title() = %q", got)
	}
	s.Apply(ZoomIn)
	if got := s.Title(); got != "Mandelbrot: 1.111111x" {
		t.Errorf("Title() after ZoomIn = %q", got)
	}

	de := New(WithLocale(language.German))
	if got := de.Title(); got != "Mandelbrot: 1,000000x" {
		t.Errorf("German Title() = %q", got)
	}
}

func TestState_TitleGroupsThousands(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.English, "Mandelbrot: 1,047.114991x"},
		{language.German, "Mandelbrot: 1.047,114991x"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			s := New(WithLocale(tt.tag))
			for range 66 {
				if err := s.Apply(ZoomIn); err != nil {
					t.Fatalf("Apply(ZoomIn) = %v", err)
				}
			}
			if got := s.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenshotName(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)
	if got := ScreenshotName(ts); got != "Mandelbrot_07:08:09.png" {
		t.Errorf("ScreenshotName() = %q", got)
	}
}
