package services

import (
	"encoding/json"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/habeshaplay/bingo-backend/game"
	"github.com/habeshaplay/bingo-backend/models"
	"github.com/habeshaplay/bingo-backend/utils/logger"
)

// RoundRecorder persists round lifecycle and collects stakes. It
// implements game.RoundHooks: a Round row is opened when a room enters
// Calling and finalized at settlement. Stake debits happen here, at
// round start, so the room core never touches balances except the
// winner's credit.
type RoundRecorder struct {
	db     *gorm.DB
	ledger *GormLedger

	mu   sync.Mutex
	open map[int]*models.Round // stake -> in-progress row
}

func NewRoundRecorder(db *gorm.DB, ledger *GormLedger) *RoundRecorder {
	return &RoundRecorder{db: db, ledger: ledger, open: make(map[int]*models.Round)}
}

func (rec *RoundRecorder) RoundStarted(stake, round int, boardsByUser map[int64]int) {
	row := &models.Round{
		Stake:       stake,
		RoundNumber: round,
		Status:      "in_progress",
		NumbersJSON: datatypes.JSON([]byte("[]")),
		StartTime:   time.Now(),
	}
	if err := rec.db.Create(row).Error; err != nil {
		logger.Errorf("[Round %d/%d] failed to create round row: %v", stake, round, err)
	} else {
		rec.mu.Lock()
		rec.open[stake] = row
		rec.mu.Unlock()
	}

	for userID, boards := range boardsByUser {
		if err := rec.ledger.Debit(userID, float64(stake*boards)); err != nil {
			logger.Errorf("[Round %d/%d] failed to debit stake from user %d: %v", stake, round, userID, err)
		}
	}
}

func (rec *RoundRecorder) RoundSettled(stake int, s game.Settlement) {
	rec.mu.Lock()
	row := rec.open[stake]
	delete(rec.open, stake)
	rec.mu.Unlock()
	if row == nil {
		return
	}

	if numbers, err := json.Marshal(s.Called); err == nil {
		row.NumbersJSON = datatypes.JSON(numbers)
	}
	row.Status = "finished"
	row.EndTime = time.Now()
	row.WinnerIsHouse = s.House
	if !s.House && !s.NoWinner {
		userID := s.UserID
		row.WinnerUserID = &userID
		row.WinningBoard = s.BoardID
		row.Prize = s.Prize
	}
	if s.House {
		row.WinningBoard = s.BoardID
		row.Prize = s.Prize
	}

	if err := rec.db.Save(row).Error; err != nil {
		logger.Errorf("[Round %d/%d] failed to finalize round row: %v", stake, s.Round, err)
	}
}
