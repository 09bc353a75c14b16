package controllers

import (
	"net/http"
	"strconv"

	"github.com/habeshaplay/bingo-backend/config"
	"github.com/habeshaplay/bingo-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type balanceChangeRequest struct {
	TelegramID int64   `json:"telegram_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// Deposit credits a user's balance.
func Deposit(c *gin.Context) {
	applyBalanceChange(c, models.DepositTransaction, +1)
}

// Withdraw debits a user's balance. Overdrafts are rejected.
func Withdraw(c *gin.Context) {
	applyBalanceChange(c, models.WithdrawTransaction, -1)
}

func applyBalanceChange(c *gin.Context, ttype models.TransactionType, sign float64) {
	var req balanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("telegram_id = ?", req.TelegramID).First(&user).Error; err != nil {
			return err
		}
		next := user.Balance + sign*req.Amount
		if next < 0 {
			return gorm.ErrInvalidData
		}
		user.Balance = next
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:       user.ID,
			Type:         ttype,
			Amount:       req.Amount,
			BalanceAfter: user.Balance,
		}).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err == gorm.ErrInvalidData {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListTransactions returns a user's transaction history.
func ListTransactions(c *gin.Context) {
	tid, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid telegram_id"})
		return
	}

	var user models.User
	if err := config.DB.Where("telegram_id = ?", tid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var txs []models.Transaction
	if err := config.DB.Where("user_id = ?", user.ID).Order("id DESC").Limit(100).Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, txs)
}
