package config

import (
	"flag"
	"fmt"

	"github.com/gogpu/fractal"
)

// Parse registers the common flags on fs, parses args, loads the file named
// by -config (if any) and applies every flag that was set on top of it.
// The first positional argument, when present, selects the mode.
// It returns the remaining positional arguments.
func Parse(fs *flag.FlagSet, args []string) (Config, []string, error) {
	def := Default()
	var (
		path     = fs.String("config", "", "TOML config file")
		width    = fs.Int("width", def.Width, "raster width")
		height   = fs.Int("height", def.Height, "raster height (even)")
		mode     = fs.String("mode", string(def.Mode), "coloring mode")
		workers  = fs.Int("workers", def.Workers, "bands per render pass (0 = one per CPU)")
		zoom     = fs.Float64("zoom", def.Viewport.Zoom, "plane distance between pixels")
		offsetX  = fs.Float64("x", def.Viewport.OffsetX, "real part of the center")
		offsetY  = fs.Float64("y", def.Viewport.OffsetY, "imaginary part of the center")
		locale   = fs.String("locale", def.Locale, "title locale")
		logLevel = fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
		logFile  = fs.String("log-file", def.LogFile, "log file")
		shotDir  = fs.String("screenshot-dir", def.ScreenshotDir, "screenshot directory")
		fontFile = fs.String("font", def.FontFile, "TTF font for labels")
		listen   = fs.String("listen", def.ListenAddr, "listen address")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	cfg := def
	if *path != "" {
		var err error
		if cfg, err = Load(*path); err != nil {
			return Config{}, nil, err
		}
	}

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "mode":
			m, err := fractal.ParseMode(*mode)
			if err != nil {
				parseErr = err
			}
			cfg.Mode = m
		case "workers":
			cfg.Workers = *workers
		case "zoom":
			cfg.Viewport.Zoom = *zoom
		case "x":
			cfg.Viewport.OffsetX = *offsetX
		case "y":
			cfg.Viewport.OffsetY = *offsetY
		case "locale":
			cfg.Locale = *locale
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "screenshot-dir":
			cfg.ScreenshotDir = *shotDir
		case "font":
			cfg.FontFile = *fontFile
		case "listen":
			cfg.ListenAddr = *listen
		}
	})
	if parseErr != nil {
		return Config{}, nil, parseErr
	}

	rest := fs.Args()
	if len(rest) > 0 {
		m, err := fractal.ParseMode(rest[0])
		if err != nil {
			return Config{}, nil, err
		}
		cfg.Mode = m
		rest = rest[1:]
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, rest, nil
}
