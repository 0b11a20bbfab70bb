package ws

import "sync"

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub fans completed-run events out to every connected watcher. All
// subscriber state is owned by the run loop; the channels are the
// only way in.
type Hub struct {
	clients   map[Subscriber]struct{}
	register  chan Subscriber
	unreg     chan Subscriber
	broadcast chan []byte
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

// NewHub creates an initialized Hub and starts its run loop.
func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[Subscriber]struct{}),
		register:  make(chan Subscriber),
		unreg:     make(chan Subscriber),
		broadcast: make(chan []byte),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unreg:
			delete(h.clients, c)
		case payload := <-h.broadcast:
			for c := range h.clients {
				if err := c.Send(payload); err != nil {
					c.Close()
					delete(h.clients, c)
				}
			}
		case <-h.stop:
			for c := range h.clients {
				c.Close()
				delete(h.clients, c)
			}
			return
		}
	}
}

// Register adds a watcher to the stream. After shutdown the watcher
// is closed immediately.
func (h *Hub) Register(c Subscriber) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

// Unregister removes a watcher. The caller still owns the close.
func (h *Hub) Unregister(c Subscriber) {
	select {
	case h.unreg <- c:
	case <-h.done:
	}
}

// Broadcast sends payload to all watchers. A watcher whose Send
// fails is closed and dropped.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

// Shutdown closes every watcher and stops the run loop. Safe to call
// more than once; returns after the loop has exited.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
