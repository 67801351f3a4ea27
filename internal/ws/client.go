package ws

import (
	"time"

	"empedi/internal/domain/job"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message is one encoded event plus the attributes clients filter on.
type Message struct {
	Kind     job.Kind
	SkillIDs []uuid.UUID
	Payload  []byte
}

// Filter narrows a client's feed. Zero values accept everything.
type Filter struct {
	Kind     job.Kind
	SkillIDs []uuid.UUID
}

func (f Filter) accepts(m Message) bool {
	if f.Kind != "" && f.Kind != m.Kind {
		return false
	}
	if len(f.SkillIDs) == 0 {
		return true
	}
	for _, want := range f.SkillIDs {
		for _, have := range m.SkillIDs {
			if want == have {
				return true
			}
		}
	}
	return false
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	filter Filter
}

func NewClient(hub *Hub, conn *websocket.Conn, filter Filter) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan []byte, sendBuffer), filter: filter}
}

// ReadPump drains inbound frames so pongs and close frames are processed.
// The feed is one-way; client messages are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
