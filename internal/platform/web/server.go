// Package web serves the papuSO terminal to browsers. Each WebSocket
// connection gets its own terminal; the page sends key downs and ups (from
// the keyboard or the on-screen W/A/S/D/ACT buttons) and draws the frames the
// server pushes back.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/registry"
	"github.com/vovakirdan/papuso/internal/sound"
	"github.com/vovakirdan/papuso/internal/timeline"
)

//go:embed static
var staticFiles embed.FS

// Config holds configuration for the web server.
type Config struct {
	Address     string
	MaxSessions int
	App         app.Config
	Prevent     []string
	Games       []registry.Definition
	Source      timeline.Source
	Recorder    app.Recorder
	Logger      *log.Logger
}

// Server is the HTTP + WebSocket frontend.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	active   atomic.Int64
}

// New creates a server. Nothing listens until ListenAndServe.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "papuso-web",
		})
	}
	if cfg.App.UITick <= 0 {
		cfg.App.UITick = 20 * time.Millisecond
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the routes: the page at /, the socket at /ws and a
// health probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServerFS(static))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok")) //nolint:errcheck
	})

	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

// Active returns the number of open terminal connections.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	if limit := s.cfg.MaxSessions; limit > 0 && n > int64(limit) {
		http.Error(w, "servidor lleno", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id[:8])
	logger.Info("session started", "remote", r.RemoteAddr)
	start := time.Now()

	sess := newSession(conn, s.newTerminal(), s.cfg.App.UITick, logger)
	sess.run(r.Context())

	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
}

func (s *Server) newTerminal() *app.Terminal {
	// the terminal enables them when a minigame starts
	opts := []core.ControlsOption{core.WithEnabled(false)}
	if len(s.cfg.Prevent) > 0 {
		opts = append(opts, core.WithPrevent(s.cfg.Prevent...))
	}
	return app.New(s.cfg.App, app.Deps{
		Sound:    &sound.Nop{},
		Recorder: s.cfg.Recorder,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Source:   s.cfg.Source,
		Games:    s.cfg.Games,
		Controls: core.NewControls(opts...),
	})
}
