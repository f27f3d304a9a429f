package fractal

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false so attribute
// formatting in the render loop is skipped entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var silent = slog.New(nopHandler{})

// loggerPtr is read by band goroutines while a host may call SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(silent)
}

// SetLogger sets the logger shared by the renderer, the navigation state
// and the hosts. Nil restores the silent default. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: render pass timings, navigation and undo steps
//   - [slog.LevelInfo]: viewer start and stop, saved screenshots, websocket sessions
//   - [slog.LevelWarn]: failed render passes, rejected commands
//
// The commands build their logger from the configuration:
//
//	cfg, _, err := config.Parse(fs, os.Args[1:])
//	...
//	fractal.SetLogger(cfg.Logger(os.Stderr))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the shared logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
