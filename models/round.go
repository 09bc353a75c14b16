package models

import (
	"time"

	"gorm.io/datatypes"
)

// Round is the persisted record of one Calling phase in a room.
type Round struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Stake       int    `gorm:"index" json:"stake"`
	RoundNumber int    `json:"round_number"`
	Status      string `json:"status"` // in_progress | finished
	// NumbersJSON stores the called sequence in draw order.
	NumbersJSON   datatypes.JSON `json:"numbers"`
	WinnerUserID  *int64         `json:"winner_user_id,omitempty"`
	WinnerIsHouse bool           `json:"winner_is_house"`
	WinningBoard  int            `json:"winning_board"`
	Prize         int            `json:"prize"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
