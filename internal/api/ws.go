package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wonny/signaldeck/pkg/logger"
)

// Hub pushes refreshed snapshots to connected dashboard clients
// ⭐ SSOT: 웹소켓 브로드캐스트는 이 허브에서만
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewHub creates an empty hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard and API run on different ports in development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// ServeWS upgrades the connection and tracks it until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", count).Debug("Websocket client connected")

	// Reader loop only detects close; clients never send payloads
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends a JSON payload to every connected client.
// Dead connections are dropped on write failure.
func (h *Hub) Broadcast(payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// remove drops one connection
func (h *Hub) remove(conn *websocket.Conn) {
	conn.Close()

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
