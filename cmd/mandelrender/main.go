// Command mandelrender renders one Mandelbrot frame to a PNG file.
//
// Usage:
//
//	mandelrender [flags] [mode]
//
// The -script flag applies a comma-separated list of navigation commands
// (zoom-in, zoom-out, pan-up, pan-down, pan-left, pan-right, undo) to the
// initial viewport before rendering:
//
//	mandelrender -o deep.png -script zoom-in,zoom-in,pan-left,undo normal
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/hud"
	"github.com/gogpu/fractal/internal/snapshot"
	"github.com/gogpu/fractal/nav"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mandelrender:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mandelrender", flag.ContinueOnError)
	var (
		output = fs.String("o", "mandelbrot.png", "output file")
		script = fs.String("script", "", "comma-separated navigation commands")
		label  = fs.Bool("label", false, "draw the title onto the image")
	)
	cfg, _, err := config.Parse(fs, args)
	if err != nil {
		return err
	}
	fractal.SetLogger(cfg.Logger(os.Stderr))

	state := nav.New(cfg.NavOptions()...)
	if err := applyScript(state, *script); err != nil {
		return err
	}

	raster := fractal.NewRaster(cfg.Width, cfg.Height)
	renderer := fractal.NewRenderer(cfg.RendererOptions()...)
	start := time.Now()
	if err := renderer.Render(context.Background(), state.Viewport(), raster); err != nil {
		return err
	}

	var labeler *hud.Labeler
	if *label {
		if labeler, err = hud.Load(cfg.FontFile, hud.DefaultSize); err != nil {
			return err
		}
	}
	if err := snapshot.Write(*output, raster, state.Title(), labeler); err != nil {
		return err
	}

	fmt.Printf("%s: %s %dx%d %s in %v\n", *output, state.Title(), cfg.Width, cfg.Height,
		renderer.Mode(), time.Since(start).Round(time.Millisecond))
	return nil
}

// applyScript runs the comma-separated commands of script against state.
func applyScript(state *nav.State, script string) error {
	for _, name := range strings.Split(script, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "":
			continue
		case "undo":
			state.Undo()
			continue
		}
		cmd, err := nav.ParseCommand(name)
		if err != nil {
			return err
		}
		if err := state.Apply(cmd); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
