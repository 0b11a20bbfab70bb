package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"queue-sim-service/internal/ws"
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WatchHandler upgrades /watch requests and subscribes them to the
// completed-run stream.
type WatchHandler struct {
	Hub    *ws.Hub
	Buffer int
}

func (h *WatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Hub == nil {
		writeError(w, r, http.StatusServiceUnavailable, "watch stream is not enabled")
		return
	}

	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		log.Printf("watch upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(conn, h.Buffer)
	h.Hub.Register(client)

	// Watchers only listen. The read loop exists to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Hub.Unregister(client)
	client.Close()
}
