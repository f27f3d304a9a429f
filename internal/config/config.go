// Package config loads viewer settings from a TOML file and command-line
// flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/nav"
	"golang.org/x/text/language"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds every setting of the renderer, the navigation state and the
// hosts.
type Config struct {
	Width        int
	Height       int
	Mode         fractal.Mode
	Workers      int
	ZoomFactor   float64
	OffsetFactor float64
	HistoryLimit int
	Locale       string
	LogLevel     string
	LogFile      string

	ScreenshotDir    string
	FontFile         string
	LabelScreenshots bool

	ListenAddr string

	Viewport fractal.Viewport
	Gradient fractal.Coefficients
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:            1000,
		Height:           600,
		Mode:             fractal.DefaultMode,
		Workers:          0,
		ZoomFactor:       nav.DefaultFactors.Zoom,
		OffsetFactor:     nav.DefaultFactors.Offset,
		HistoryLimit:     nav.DefaultHistoryLimit,
		Locale:           "en",
		LogLevel:         "info",
		ScreenshotDir:    ".",
		LabelScreenshots: true,
		ListenAddr:       ":8080",
		Viewport:         fractal.DefaultViewport(),
		Gradient:         fractal.Grayscale,
	}
}

type fileConfig struct {
	Width            int     `toml:"width"`
	Height           int     `toml:"height"`
	Mode             string  `toml:"mode"`
	Workers          int     `toml:"workers"`
	ZoomFactor       float64 `toml:"zoom_factor"`
	OffsetFactor     float64 `toml:"offset_factor"`
	HistoryLimit     int     `toml:"history_limit"`
	Locale           string  `toml:"locale"`
	LogLevel         string  `toml:"log_level"`
	LogFile          string  `toml:"log_file"`
	ScreenshotDir    string  `toml:"screenshot_dir"`
	FontFile         string  `toml:"font_file"`
	LabelScreenshots bool    `toml:"label_screenshots"`
	ListenAddr       string  `toml:"listen_addr"`

	Viewport struct {
		Zoom    float64 `toml:"zoom"`
		OffsetX float64 `toml:"offset_x"`
		OffsetY float64 `toml:"offset_y"`
	} `toml:"viewport"`

	Gradient struct {
		R float64 `toml:"r"`
		G float64 `toml:"g"`
		B float64 `toml:"b"`
	} `toml:"gradient"`
}

// Load reads the TOML file at path over the defaults. Keys missing from the
// file keep their default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("mode") {
		m, err := fractal.ParseMode(raw.Mode)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg.Mode = m
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("zoom_factor") {
		cfg.ZoomFactor = raw.ZoomFactor
	}
	if meta.IsDefined("offset_factor") {
		cfg.OffsetFactor = raw.OffsetFactor
	}
	if meta.IsDefined("history_limit") {
		cfg.HistoryLimit = raw.HistoryLimit
	}
	if meta.IsDefined("locale") {
		cfg.Locale = strings.TrimSpace(raw.Locale)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}
	if meta.IsDefined("screenshot_dir") {
		cfg.ScreenshotDir = strings.TrimSpace(raw.ScreenshotDir)
	}
	if meta.IsDefined("font_file") {
		cfg.FontFile = strings.TrimSpace(raw.FontFile)
	}
	if meta.IsDefined("label_screenshots") {
		cfg.LabelScreenshots = raw.LabelScreenshots
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}

	if meta.IsDefined("viewport", "zoom") {
		cfg.Viewport.Zoom = raw.Viewport.Zoom
	}
	if meta.IsDefined("viewport", "offset_x") {
		cfg.Viewport.OffsetX = raw.Viewport.OffsetX
	}
	if meta.IsDefined("viewport", "offset_y") {
		cfg.Viewport.OffsetY = raw.Viewport.OffsetY
	}

	if meta.IsDefined("gradient", "r") {
		cfg.Gradient.R = raw.Gradient.R
	}
	if meta.IsDefined("gradient", "g") {
		cfg.Gradient.G = raw.Gradient.G
	}
	if meta.IsDefined("gradient", "b") {
		cfg.Gradient.B = raw.Gradient.B
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings. The raster height must be even so two
// bands split it evenly.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", ErrInvalid, c.Width)
	}
	if c.Height <= 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: height %d must be positive and even", ErrInvalid, c.Height)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalid, fractal.ErrUnknownMode, c.Mode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalid, c.Workers)
	}
	if !(c.ZoomFactor > 0 && c.ZoomFactor < 1) {
		return fmt.Errorf("%w: zoom_factor %g must be in (0, 1)", ErrInvalid, c.ZoomFactor)
	}
	if !(c.OffsetFactor > 0) {
		return fmt.Errorf("%w: offset_factor %g must be positive", ErrInvalid, c.OffsetFactor)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: history_limit %d must be positive", ErrInvalid, c.HistoryLimit)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Language returns the parsed locale.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: locale %q: %w", ErrInvalid, c.Locale, err)
	}
	return tag, nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q: %w", ErrInvalid, c.LogLevel, err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// RendererOptions returns the renderer settings as options.
func (c Config) RendererOptions() []fractal.RendererOption {
	return []fractal.RendererOption{
		fractal.WithMode(c.Mode),
		fractal.WithWorkers(c.Workers),
		fractal.WithGradient(c.Gradient),
	}
}

// NavOptions returns the navigation settings as options.
func (c Config) NavOptions() []nav.Option {
	opts := []nav.Option{
		nav.WithViewport(c.Viewport),
		nav.WithFactors(c.ZoomFactor, c.OffsetFactor),
		nav.WithHistoryLimit(c.HistoryLimit),
	}
	if tag, err := c.Language(); err == nil {
		opts = append(opts, nav.WithLocale(tag))
	}
	return opts
}
