// Command mandelview is an interactive Mandelbrot viewer for the terminal.
//
// Usage:
//
//	mandelview [flags] [mode]
//
// The optional mode argument is one of normal, exp-res, gradient, smoky
// and monochrome. Press h inside the viewer for the key bindings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/hud"
	"github.com/gogpu/fractal/internal/viewer"
	"github.com/gogpu/fractal/nav"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mandelview:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mandelview", flag.ContinueOnError)
	cfg, _, err := config.Parse(fs, args)
	if err != nil {
		return err
	}

	// The terminal is the screen: logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	fractal.SetLogger(cfg.Logger(logOut))

	var opts []viewer.Option
	opts = append(opts, viewer.WithScreenshotDir(cfg.ScreenshotDir))
	if cfg.LabelScreenshots {
		labeler, err := hud.Load(cfg.FontFile, hud.DefaultSize)
		if err != nil {
			return err
		}
		opts = append(opts, viewer.WithLabeler(labeler))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viewer.New(screen,
		fractal.NewRenderer(cfg.RendererOptions()...),
		nav.New(cfg.NavOptions()...),
		cfg.Width, cfg.Height, opts...)
	if err := v.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
