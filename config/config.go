package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Stakes are the room entry fees. Fixed configuration, not
// runtime-negotiated: every deployment runs the same tiers.
var Stakes = []int{10, 20, 50, 100, 200, 500}

const (
	// CountdownSeconds is the board-selection window per round.
	CountdownSeconds = 60
	// CallInterval is the pause between drawn numbers.
	CallInterval = 5 * time.Second
	// SettleDelay precedes a forced house settlement broadcast.
	SettleDelay = 3 * time.Second
	// MaxPicks is the board cap per real participant.
	MaxPicks = 2
	// PayoutPercent is the share of the pot paid to a winner.
	PayoutPercent = 80

	// HouseMinReal and HouseMaxReal bound the real-board volume within
	// which the house participates; HouseBoards is its board count.
	HouseMinReal = 2
	HouseMaxReal = 50
	HouseBoards  = 10
)

// LoadEnv reads .env and validates required variables.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}
	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}
}

// Port returns the HTTP listen port.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "4000"
}
