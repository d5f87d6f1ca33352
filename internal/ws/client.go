package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	// SendQueueSize bounds the frames buffered for one client.
	SendQueueSize = 64
)

type Role string

const (
	RoleNone   Role = ""
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// Client is one WebSocket connection bound to a session room.
type Client struct {
	id        string
	sessionID string
	conn      *websocket.Conn
	send      chan []byte

	mu       sync.RWMutex
	role     Role
	playerID string
}

func NewClient(conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		id:        uuid.NewString(),
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, SendQueueSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// Identity returns the role and player id bound by join-game.
func (c *Client) Identity() (Role, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.role, c.playerID
}

func (c *Client) Bind(role Role, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.role = role
	c.playerID = playerID
}

// Serve runs the write pump in the background and the read pump in the
// calling goroutine. handle is invoked for every inbound frame; Serve returns
// once the connection is gone and the client is unregistered.
func (c *Client) Serve(hub *Hub, handle func(*Client, Inbound)) {
	go c.writePump()
	c.readPump(hub, handle)
}

func (c *Client) readPump(hub *Hub, handle func(*Client, Inbound)) {
	defer func() {
		hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("ws read", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(frame, &msg); err != nil {
			hub.Send(c, EventError, ErrorPayload{Code: CodeBadRequest, Message: "malformed message"})
			continue
		}

		handle(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
