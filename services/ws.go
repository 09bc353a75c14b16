package services

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/habeshaplay/bingo-backend/game"
	"github.com/habeshaplay/bingo-backend/models"
	"github.com/habeshaplay/bingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Service wires the websocket boundary to the room registry.
type Service struct {
	registry *game.Registry
	hub      *Hub
	db       *gorm.DB
	ledger   game.Ledger
	connSeq  atomic.Int64
}

func NewService(registry *game.Registry, hub *Hub, db *gorm.DB, ledger game.Ledger) *Service {
	return &Service{registry: registry, hub: hub, db: db, ledger: ledger}
}

// HandleWebSocket upgrades /ws/:stake?telegram_id= and seats the user
// in the stake's room.
func (s *Service) HandleWebSocket(c *gin.Context) {
	stake, _ := strconv.Atoi(c.Param("stake"))
	room, ok := s.registry.Room(stake)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "lobby not found"})
		return
	}

	telegramIDStr := c.Query("telegram_id")
	if telegramIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing telegram_id"})
		return
	}
	telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
		return
	}

	var user models.User
	if err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := &Client{
		connID: fmt.Sprintf("c%d", s.connSeq.Add(1)),
		userID: int64(user.ID),
		name:   user.Name,
		stake:  stake,
		room:   room,
		conn:   conn,
		hub:    s.hub,
		ledger: s.ledger,
		send:   make(chan []byte, 32),
	}
	logger.Infof("[WS] new client %s: user=%d telegram=%d stake=%d", client.connID, user.ID, telegramID, stake)

	s.hub.add(client)
	go client.writePump()
	go client.readPump()
	room.Join(client.connID, client.userID, client.name)
}
