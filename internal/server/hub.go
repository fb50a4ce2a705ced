// internal/server/hub.go
package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	xlog "folio/internal/log"
	"folio/internal/metrics"
)

// upgrader is only mounted when live reload is on, i.e. on a local dev server,
// so any origin is accepted.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks live-reload clients and broadcasts to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	metrics.SetLiveReloadClients(len(h.clients))
	logger := xlog.WithComponent("livereload")
	logger.Debug().Msg("client connected")
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		metrics.SetLiveReloadClients(len(h.clients))
		logger := xlog.WithComponent("livereload")
		logger.Debug().Msg("client disconnected")
	}
}

// broadcastMessage sends message to every client, dropping those that fail.
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			logger := xlog.WithComponent("livereload")
			logger.Warn().Err(err).Msg("error writing to client")
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.SetLiveReloadClients(len(h.clients))
}

func (h *Hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// serveWs upgrades the request and blocks until the client goes away.
// Clients never send anything; reading only detects the close.
func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger := xlog.WithComponent("livereload")
		logger.Warn().Err(err).Msg("websocket upgrade error")
		return
	}
	hub.register(conn)
	defer hub.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
