package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/habeshaplay/bingo-backend/game"
)

// GameController exposes game state over REST. The registry is the
// single source of truth: board grids are served from here so the
// presentation layer cannot derive a divergent mapping.
type GameController struct {
	Registry *game.Registry
}

// ListStakes returns the supported stake tiers.
func (gc *GameController) ListStakes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stakes": gc.Registry.Stakes()})
}

// LobbyStatus returns a consistent snapshot of one room.
func (gc *GameController) LobbyStatus(c *gin.Context) {
	stake, err := strconv.Atoi(c.Param("stake"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake"})
		return
	}
	room, ok := gc.Registry.Room(stake)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "stake not supported"})
		return
	}
	c.JSON(http.StatusOK, room.Snapshot())
}

type boardPayload struct {
	BoardID int   `json:"board_id"`
	Grid    []int `json:"grid"`
}

// ListBoards returns every board grid.
func (gc *GameController) ListBoards(c *gin.Context) {
	boards := make([]boardPayload, game.BoardCount)
	for id := 1; id <= game.BoardCount; id++ {
		grid := game.BoardGrid(id)
		boards[id-1] = boardPayload{BoardID: id, Grid: grid[:]}
	}
	c.JSON(http.StatusOK, boards)
}

// GetBoard returns one board grid.
func (gc *GameController) GetBoard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || !game.ValidBoardID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
		return
	}
	grid := game.BoardGrid(id)
	c.JSON(http.StatusOK, boardPayload{BoardID: id, Grid: grid[:]})
}
