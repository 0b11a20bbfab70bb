package ws

import (
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client adapts one websocket connection to the Subscriber interface.
// Outbound payloads go through a buffered queue drained by a single
// writer goroutine, so the hub never blocks on a slow connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewClient constructs a client wrapper and starts its writer. The
// buffer bounds how far a slow watcher may fall behind before its
// Send starts failing.
func NewClient(conn *websocket.Conn, buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	c := &Client{conn: conn, send: make(chan []byte, buffer)}
	go c.writePump()
	return c
}

func (c *Client) writePump() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("ws: write failed: %v", err)
			_ = c.conn.Close()
			return
		}
	}

	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

// Send queues a payload without blocking. A full queue means the
// watcher cannot keep up; the returned error tells the hub to drop it.
func (c *Client) Send(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		return errors.New("ws: send queue full")
	}
}

// Close stops the writer after the queued payloads drain. Safe to
// call more than once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.send) })
}
