// Package ws fans game events out to the WebSocket connections of each
// session room.
package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/vietanh2810/bingo-api/internal/metrics"
)

// Message is the envelope of every frame sent to a client.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Inbound is the envelope of every frame received from a client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Hub tracks clients per session. Sends never block: a client whose queue
// is full is dropped.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Register adds c to its session room, creating the room if needed.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.sessionID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.sessionID] = room
	}
	room[c] = struct{}{}
	metrics.ConnectionOpened()

	zap.L().Debug("ws client registered", zap.String("session_id", c.sessionID), zap.String("client_id", c.id), zap.Int("room_size", len(room)))
}

// Unregister removes c and closes its queue. It is safe to call more than
// once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(c)
}

// Broadcast queues event for every client of the session room.
func (h *Hub) Broadcast(sessionID, event string, payload any) {
	frame, err := json.Marshal(Message{Type: event, Data: payload})
	if err != nil {
		zap.L().Error("ws marshal", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[sessionID] {
		h.enqueue(c, frame)
	}
}

// Send queues event for a single client.
func (h *Hub) Send(c *Client, event string, payload any) {
	frame, err := json.Marshal(Message{Type: event, Data: payload})
	if err != nil {
		zap.L().Error("ws marshal", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[c.sessionID][c]; ok {
		h.enqueue(c, frame)
	}
}

// CloseRoom disconnects every client of the session.
func (h *Hub) CloseRoom(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[sessionID] {
		h.remove(c)
	}
	delete(h.rooms, sessionID)
}

func (h *Hub) RoomSize(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.rooms[sessionID])
}

func (h *Hub) enqueue(c *Client, frame []byte) {
	select {
	case c.send <- frame:
	default:
		zap.L().Warn("ws client too slow, dropping", zap.String("session_id", c.sessionID), zap.String("client_id", c.id))
		metrics.RecordDroppedClient()
		h.remove(c)
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(c *Client) {
	room, ok := h.rooms[c.sessionID]
	if !ok {
		return
	}
	if _, ok = room[c]; !ok {
		return
	}

	delete(room, c)
	close(c.send)
	metrics.ConnectionClosed()
	if len(room) == 0 {
		delete(h.rooms, c.sessionID)
	}
}
