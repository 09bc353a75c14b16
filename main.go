package main

import (
	"log"
	"net/http"
	"time"

	"github.com/habeshaplay/bingo-backend/config"
	"github.com/habeshaplay/bingo-backend/controllers"
	"github.com/habeshaplay/bingo-backend/game"
	"github.com/habeshaplay/bingo-backend/routes"
	"github.com/habeshaplay/bingo-backend/services"
	"github.com/habeshaplay/bingo-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(svc *services.Service, gc *controllers.GameController) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r, gc)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket lobby endpoint
	r.GET("/ws/:stake", svc.HandleWebSocket)

	return r
}

func main() {
	// Load env variables
	config.LoadEnv()

	// Connect to database
	db := config.SetupDatabase()

	// Wire the game engine: hub for outbound events, persistent ledger
	// and round recorder, one room per stake tier.
	hub := services.NewHub()
	ledger := services.NewGormLedger(db)
	recorder := services.NewRoundRecorder(db, ledger)

	registry := game.NewRegistry(config.Stakes, game.RoomConfig{
		CountdownSeconds: config.CountdownSeconds,
		CallInterval:     config.CallInterval,
		SettleDelay:      config.SettleDelay,
		MaxPicks:         config.MaxPicks,
		PayoutPercent:    config.PayoutPercent,
		House: game.EquityPolicy{
			MinReal: config.HouseMinReal,
			MaxReal: config.HouseMaxReal,
			Boards:  config.HouseBoards,
		},
		Broadcaster: hub,
		Ledger:      ledger,
		Hooks:       recorder,
		Logger:      logger.Named("room"),
	})
	registry.StartAll()
	logger.Infof("started %d rooms: %v", len(config.Stakes), config.Stakes)

	svc := services.NewService(registry, hub, db, ledger)
	gc := &controllers.GameController{Registry: registry}
	router := setupRouter(svc, gc)

	// Start server
	port := config.Port()
	log.Printf("🚀 Bingo backend starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
