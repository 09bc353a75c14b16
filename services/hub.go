package services

import (
	"encoding/json"
	"sync"

	"github.com/habeshaplay/bingo-backend/game"
	"github.com/habeshaplay/bingo-backend/utils/logger"
)

// Hub indexes connected clients by stake tier and by connection id and
// fans room events out to them. It implements game.Broadcaster; sends
// never block the room goroutine — a client with a full buffer drops
// the message and must resync from the next broadcast.
type Hub struct {
	mu      sync.RWMutex
	byStake map[int]map[string]*Client
	byConn  map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		byStake: make(map[int]map[string]*Client),
		byConn:  make(map[string]*Client),
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.byStake[c.stake] == nil {
		h.byStake[c.stake] = make(map[string]*Client)
	}
	h.byStake[c.stake][c.connID] = c
	h.byConn[c.connID] = c
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.byStake[c.stake]; ok {
		delete(clients, c.connID)
	}
	delete(h.byConn, c.connID)
}

// Broadcast sends an event to every connection on a stake tier.
func (h *Hub) Broadcast(stake int, ev game.Event) {
	payload, err := marshalEvent(ev)
	if err != nil {
		logger.Errorf("failed to marshal %s event: %v", ev.EventType(), err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.byStake[stake]))
	for _, c := range h.byStake[stake] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(payload)
	}
}

// Notify sends an event to a single connection.
func (h *Hub) Notify(connID string, ev game.Event) {
	payload, err := marshalEvent(ev)
	if err != nil {
		logger.Errorf("failed to marshal %s event: %v", ev.EventType(), err)
		return
	}

	h.mu.RLock()
	c, ok := h.byConn[connID]
	h.mu.RUnlock()
	if ok {
		c.enqueue(payload)
	}
}

type eventEnvelope struct {
	Type string     `json:"type"`
	Data game.Event `json:"data"`
}

func marshalEvent(ev game.Event) ([]byte, error) {
	return json.Marshal(eventEnvelope{Type: ev.EventType(), Data: ev})
}
