// Package stream serves the viewer over a websocket: each connection owns
// a navigation state, sends command names and receives a JSON status and a
// PNG frame after every re-render.
package stream

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/nav"
)

//go:embed index.html
var indexHTML []byte

// Protocol commands besides the navigation command names.
const (
	CommandUndo  = "undo"
	CommandFrame = "frame"
)

// Status is the JSON text message sent before every frame and in reply to
// rejected commands.
type Status struct {
	Title    string  `json:"title"`
	Zoom     float64 `json:"zoom"`
	OffsetX  float64 `json:"offset_x"`
	OffsetY  float64 `json:"offset_y"`
	History  int     `json:"history"`
	RenderMS float64 `json:"render_ms"`
	Error    string  `json:"error,omitempty"`
}

// Server hosts websocket sessions. All sessions share one renderer; each
// renders into its own raster.
type Server struct {
	renderer      *fractal.Renderer
	width, height int
	navOpts       []nav.Option
}

// New creates a server rendering width x height frames. navOpts configure
// the navigation state of every session.
func New(renderer *fractal.Renderer, width, height int, navOpts ...nav.Option) *Server {
	return &Server{
		renderer: renderer,
		width:    width,
		height:   height,
		navOpts:  navOpts,
	}
}

// Handler returns the HTTP handler: "/" serves the page, "/ws" upgrades.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fractal.Logger().Info("stream: listening", slog.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		fractal.Logger().Warn("stream: accept failed", slog.Any("error", err))
		return
	}
	defer c.CloseNow()

	sess := &session{
		conn:     c,
		renderer: s.renderer,
		state:    nav.New(s.navOpts...),
		raster:   fractal.NewRaster(s.width, s.height),
	}
	fractal.Logger().Info("stream: session started", slog.String("remote", r.RemoteAddr))

	err = sess.run(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		fractal.Logger().Info("stream: session closed", slog.String("remote", r.RemoteAddr))
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fractal.Logger().Warn("stream: session failed",
			slog.String("remote", r.RemoteAddr),
			slog.Any("error", err))
	}
	c.Close(websocket.StatusInternalError, "session failed")
}

type session struct {
	conn     *websocket.Conn
	renderer *fractal.Renderer
	state    *nav.State
	raster   *fractal.Raster
}

// run sends the first frame, then answers commands until the connection or
// ctx closes.
func (s *session) run(ctx context.Context) error {
	if err := s.sendFrame(ctx); err != nil {
		return err
	}
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			if err := s.sendError(ctx, "binary messages are not supported"); err != nil {
				return err
			}
			continue
		}
		if err := s.handle(ctx, strings.TrimSpace(string(data))); err != nil {
			return err
		}
	}
}

// handle applies one command. Errors returned are connection failures;
// rejected commands are reported to the client.
func (s *session) handle(ctx context.Context, msg string) error {
	switch msg {
	case CommandFrame:
		s.state.MarkStale()
	case CommandUndo:
		if !s.state.Undo() {
			return s.sendError(ctx, "nothing to undo")
		}
	default:
		cmd, err := nav.ParseCommand(msg)
		if err != nil {
			return s.sendError(ctx, err.Error())
		}
		if err := s.state.Apply(cmd); err != nil {
			return s.sendError(ctx, err.Error())
		}
	}
	return s.sendFrame(ctx)
}

// sendFrame renders the current viewport and sends the status and the PNG.
// The render pass is bound to ctx, so a closed connection aborts it.
func (s *session) sendFrame(ctx context.Context) error {
	start := time.Now()
	if err := s.renderer.Render(ctx, s.state.Viewport(), s.raster); err != nil {
		if ctx.Err() != nil {
			return err
		}
		return s.sendError(ctx, err.Error())
	}
	s.state.MarkRendered()
	elapsed := time.Since(start)

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.raster.ToImage()); err != nil {
		return fmt.Errorf("stream: encode frame: %w", err)
	}

	st := s.status()
	st.RenderMS = float64(elapsed.Microseconds()) / 1000
	if err := wsjson.Write(ctx, s.conn, st); err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageBinary, buf.Bytes())
}

func (s *session) sendError(ctx context.Context, msg string) error {
	st := s.status()
	st.Error = msg
	fractal.Logger().Debug("stream: command rejected", slog.String("error", msg))
	return wsjson.Write(ctx, s.conn, st)
}

func (s *session) status() Status {
	vp := s.state.Viewport()
	return Status{
		Title:   s.state.Title(),
		Zoom:    vp.Zoom,
		OffsetX: vp.OffsetX,
		OffsetY: vp.OffsetY,
		History: s.state.History().Len(),
	}
}
