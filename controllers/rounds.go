package controllers

import (
	"net/http"
	"strconv"

	"github.com/habeshaplay/bingo-backend/config"
	"github.com/habeshaplay/bingo-backend/models"

	"github.com/gin-gonic/gin"
)

// ListRounds returns recent rounds, optionally filtered by stake.
func ListRounds(c *gin.Context) {
	q := config.DB.Order("id DESC").Limit(50)
	if stakeStr := c.Query("stake"); stakeStr != "" {
		stake, err := strconv.Atoi(stakeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake"})
			return
		}
		q = q.Where("stake = ?", stake)
	}

	var rounds []models.Round
	if err := q.Find(&rounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, rounds)
}

// GetRound returns a single round record.
func GetRound(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var round models.Round
	if err := config.DB.First(&round, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}
	c.JSON(http.StatusOK, round)
}
