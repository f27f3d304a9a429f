// Command mandelserve serves the Mandelbrot viewer to browsers over a
// websocket. Open http://localhost:8080/ after starting it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/config"
	"github.com/gogpu/fractal/internal/stream"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mandelserve:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mandelserve", flag.ContinueOnError)
	cfg, _, err := config.Parse(fs, args)
	if err != nil {
		return err
	}
	fractal.SetLogger(cfg.Logger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stream.New(fractal.NewRenderer(cfg.RendererOptions()...), cfg.Width, cfg.Height, cfg.NavOptions()...)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
