package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/habeshaplay/bingo-backend/game"
	"github.com/habeshaplay/bingo-backend/utils/logger"
)

// Client is one websocket connection bound to a room.
type Client struct {
	connID string
	userID int64
	name   string
	stake  int
	room   *game.Room
	conn   *websocket.Conn
	hub    *Hub
	ledger game.Ledger
	send   chan []byte
	once   sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// enqueue hands a payload to the write pump without blocking.
func (c *Client) enqueue(payload []byte) {
	defer func() {
		// enqueue can race Close; a send on the closed channel is
		// swallowed here rather than taking the hub down.
		if r := recover(); r != nil {
			logger.Debugf("[Client %s] dropped message after close", c.connID)
		}
	}()
	select {
	case c.send <- payload:
	default:
		logger.Debugf("[Client %s] send buffer full, dropping message", c.connID)
	}
}

type clientAction struct {
	Action   string `json:"action"`
	BoardIDs []int  `json:"board_ids,omitempty"`
	BoardID  int    `json:"board_id,omitempty"`
}

// --------------------
// Client read/write pumps
// --------------------
func (c *Client) readPump() {
	defer func() {
		c.room.Leave(c.connID)
		c.hub.remove(c)
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected normally", c.connID)
			} else {
				logger.Debugf("[Client %s] read error: %v", c.connID, err)
			}
			return
		}

		var action clientAction
		if err := json.Unmarshal(message, &action); err != nil {
			logger.Debugf("[Client %s] invalid message: %v", c.connID, err)
			continue
		}
		c.handleAction(action)
	}
}

func (c *Client) handleAction(action clientAction) {
	switch action.Action {
	case "select_boards":
		// Stake coverage is checked here at the boundary; the room
		// itself never reads balances.
		balance, err := c.ledger.Balance(c.userID)
		if err != nil {
			logger.Errorf("[Client %s] balance lookup failed: %v", c.connID, err)
			return
		}
		if balance < float64(c.stake*len(action.BoardIDs)) {
			c.hub.Notify(c.connID, game.NoticeEvent{Message: "Insufficient balance for the selected boards."})
			return
		}
		c.room.SelectBoards(c.connID, action.BoardIDs)
	case "ready":
		c.room.SetReady(c.connID)
	case "bingo":
		c.room.ClaimWin(c.connID, action.BoardID)
	case "leave":
		c.room.Leave(c.connID)
	default:
		logger.Debugf("[Client %s] unknown action: %q", c.connID, action.Action)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Client %s] write error: %v", c.connID, err)
			return
		}
	}
}
