package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"imposter_arena/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client is one participant socket: a read pump feeding decision replies
// into the hub and a write pump draining the Send channel.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	hub    *Hub
	mu     sync.Mutex
	closed bool
}

func NewClient(participantID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   participantID,
		Conn: conn,
		Send: make(chan []byte, 64),
		hub:  hub,
	}
}

// Run registers the client and blocks until the connection drops.
func (c *Client) Run() {
	go c.writePump()

	c.hub.Register(c)

	// explicit handshake so clients know the registry has them
	ready, _ := json.Marshal(map[string]string{"type": MsgReady, "participant_id": c.ID})
	if !c.enqueue(ready) {
		logger.Warn("could not queue ready", "participant", c.ID)
	}

	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.OnDisconnect(c)
		c.Close()
	}()

	c.Conn.SetReadLimit(8192)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			logger.Debug("read closed", "participant", c.ID, "error", err)
			return
		}

		var reply DecisionReply
		if err := json.Unmarshal(msg, &reply); err != nil || reply.Type != MsgDecision {
			// malformed input is a protocol error: log and move on, the
			// engine will no-op the round for this seat
			logger.Warn("malformed participant message", "participant", c.ID, "error", err)
			continue
		}
		c.hub.Resolve(c.ID, reply.RequestID, reply.Decision)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write failed", "participant", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue offers a message to the write pump without ever blocking the
// caller; a full buffer or a closed client drops the message.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// Close tears the connection down once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}
