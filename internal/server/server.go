// Package server exposes the snow globe HTTP API, the share page and the
// live drawing preview socket.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"snowglobe/internal/logging"
	"snowglobe/internal/notify"
	"snowglobe/internal/store"
	"snowglobe/internal/treecodec"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the API. Create it with New.
type Server struct {
	store    store.Store
	notifier notify.Notifier
	codec    *treecodec.Codec
	baseURL  string
	conns    *Registry
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithNotifier sets where share emails go. The default logs them.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Server) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithCodec sets the codec used to upgrade submitted trees.
func WithCodec(c *treecodec.Codec) Option {
	return func(s *Server) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithBaseURL sets the public URL that share links start with.
func WithBaseURL(base string) Option {
	return func(s *Server) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// New returns a Server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		notifier: notify.LogNotifier{},
		codec:    treecodec.New(),
		baseURL:  "http://localhost",
		conns:    NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Drawing pads connect from anywhere on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/submission", s.handleList)
	s.mux.HandleFunc("POST /api/submission", s.handleCreate)
	s.mux.HandleFunc("GET /api/submission/{shortId}", s.handleGet)
	s.mux.HandleFunc("POST /api/submission/email/{shortId}", s.handleEmail)
	s.mux.HandleFunc("GET /api/submission/{shortId}/preview.png", s.handlePreview)
	s.mux.HandleFunc("GET /api/submission/{shortId}/card.pdf", s.handleCard)
	s.mux.HandleFunc("GET /api/submission/{shortId}/scatter.json", s.handleScatter)
	s.mux.HandleFunc("GET /ws/draw", s.handleDraw)
	s.mux.HandleFunc("GET /{shortId}", s.handlePage)
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return withLogging(s.mux)
}

// Connections returns the registry of live drawing sockets.
func (s *Server) Connections() *Registry { return s.conns }

// ShareURL returns the public link of a submission.
func (s *Server) ShareURL(shortID string) string {
	return ShareURL(s.baseURL, shortID)
}

// Close disconnects every live drawing socket.
func (s *Server) Close() error {
	s.conns.CloseAll()
	return nil
}

// ListenAndServe runs an HTTP server on addr until ctx is done, then shuts
// it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logging.Logger().Info("server: listening", "addr", addr, "base", s.baseURL)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Logger().Info("server: stopped")
	return nil
}
