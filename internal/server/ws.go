package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/lumikey/internal/keys"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveEventsHandler broadcasts committed key transitions to WebSocket
// clients. It is wired into the pipeline as an engine listener.
type LiveEventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewLiveEventsHandler creates an empty handler.
func NewLiveEventsHandler() *LiveEventsHandler {
	return &LiveEventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveEventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends one transition to every connected client. Safe to call with
// no clients connected. Implements keys.Listener.
func (h *LiveEventsHandler) Publish(ev keys.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("websocket write error: %v", err)
		}
	}
}
