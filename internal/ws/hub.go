package ws

import (
	"context"
	"log"
	"sync"

	"empedi/internal/metrics"
)

// Hub fans job events out to connected clients. All client-set mutations
// happen on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	// done is closed when Run returns.
	done   chan struct{}
	mutex  sync.RWMutex
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			close(h.done)
			h.mutex.Unlock()
			h.drainRegistrations()
			metrics.WSConnections.Set(0)
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			metrics.WSConnections.Set(float64(total))
			h.logf("[WS] connected total_clients=%d", total)

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			delivered := 0
			for _, client := range snapshot {
				if !client.filter.accepts(msg) {
					continue
				}
				select {
				case client.send <- msg.Payload:
					delivered++
				default:
					// Slow consumer; drop it rather than stall the hub.
					h.remove(client)
				}
			}
			metrics.WSBroadcasts.Inc()
			h.logf("[WS] broadcast kind=%s delivered=%d clients=%d", msg.Kind, delivered, len(snapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	metrics.WSConnections.Set(float64(total))
	h.logf("[WS] disconnected total_clients=%d", total)
}

// drainRegistrations closes clients still queued when the hub stopped.
func (h *Hub) drainRegistrations() {
	for {
		select {
		case client := <-h.register:
			release(client)
		default:
			return
		}
	}
}

// Register adds client to the hub. Once the hub has stopped the client's
// send channel is closed instead, so its writer exits.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	if h.stopped() {
		release(client)
		return
	}
	select {
	case <-h.done:
		release(client)
	case h.register <- client:
	}
}

// Unregister is a no-op once the hub has stopped; shutdown already closed
// every client.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	if h.stopped() {
		return
	}
	select {
	case <-h.done:
	case h.unregister <- client:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func release(client *Client) {
	if client != nil {
		close(client.send)
	}
}

// Broadcast queues msg without blocking; it is dropped when the queue is full.
func (h *Hub) Broadcast(msg Message) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logf("[WS] broadcast dropped reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
