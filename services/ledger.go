package services

import (
	"gorm.io/gorm"

	"github.com/habeshaplay/bingo-backend/models"
)

// GormLedger is the persistent balance ledger. Balance updates go
// through a single atomic SQL expression so concurrent rooms cannot
// interleave a read-modify-write on the same user.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Credit adds amount to the user's balance and records a win
// transaction.
func (l *GormLedger) Credit(userID int64, amount float64) error {
	return l.apply(userID, amount, models.WinTransaction)
}

// Debit subtracts amount from the user's balance and records a stake
// transaction.
func (l *GormLedger) Debit(userID int64, amount float64) error {
	return l.apply(userID, -amount, models.StakeTransaction)
}

// Balance reads the user's current balance.
func (l *GormLedger) Balance(userID int64) (float64, error) {
	var user models.User
	if err := l.db.First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.Balance, nil
}

func (l *GormLedger) apply(userID int64, delta float64, ttype models.TransactionType) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error; err != nil {
			return err
		}
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		amount := delta
		if amount < 0 {
			amount = -amount
		}
		return tx.Create(&models.Transaction{
			UserID:       user.ID,
			Type:         ttype,
			Amount:       amount,
			BalanceAfter: user.Balance,
		}).Error
	})
}
