package routes

import (
	"github.com/habeshaplay/bingo-backend/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, gc *controllers.GameController) {
	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/users", controllers.RegisterUser)        // Register user
	api.GET("/users/:telegram_id", controllers.GetUser) // Get user by Telegram ID

	// ----------------------
	// Game routes
	// ----------------------
	api.GET("/stakes", gc.ListStakes)           // Supported stake tiers
	api.GET("/lobby/:stake", gc.LobbyStatus)    // Room snapshot
	api.GET("/boards", gc.ListBoards)           // Canonical board grids
	api.GET("/boards/:id", gc.GetBoard)         // One board grid
	api.GET("/rounds", controllers.ListRounds)  // Recent rounds
	api.GET("/rounds/:id", controllers.GetRound)

	// ----------------------
	// Transaction routes
	// ----------------------
	api.POST("/deposit", controllers.Deposit)   // Deposit funds
	api.POST("/withdraw", controllers.Withdraw) // Withdraw funds
	api.GET("/transactions/:telegram_id", controllers.ListTransactions)
}
