package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"snowglobe/internal/logging"
)

// Registry tracks live drawing sockets so they can be closed on shutdown.
type Registry struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[*websocket.Conn]struct{})}
}

// Add registers conn.
func (r *Registry) Add(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn] = struct{}{}
	logging.Logger().Debug("server: connection added", "remote", conn.RemoteAddr().String(), "live", len(r.conns))
}

// Remove unregisters conn.
func (r *Registry) Remove(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, conn)
	logging.Logger().Debug("server: connection removed", "remote", conn.RemoteAddr().String(), "live", len(r.conns))
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll sends a going-away close frame to every connection and closes it.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	clear(r.conns)
	r.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	for _, c := range conns {
		if err := c.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			logging.Logger().Debug("server: close frame", "remote", c.RemoteAddr().String(), "error", err)
		}
		c.Close()
	}
}
