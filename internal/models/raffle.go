package models

import (
	"time"

	"gorm.io/gorm"
)

type Raffle struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Reward         string         `gorm:"size:255" json:"reward"`
	Status         string         `gorm:"size:10;not null;default:'active';index" json:"status"` // active | drawn
	DrawDate       *time.Time     `json:"draw_date"`
	WinnerID       *uint          `json:"winner_id"`
	WinnerUsername string         `gorm:"size:64" json:"winner_username"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Raffle) TableName() string {
	return "raffles"
}

// RaffleEntry is one ticket. Numbers are unique and gapless per raffle,
// allocated under the raffle row lock.
type RaffleEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RaffleID     uint      `gorm:"uniqueIndex:idx_raffle_ticket;not null" json:"raffle_id"`
	TicketNumber int       `gorm:"uniqueIndex:idx_raffle_ticket;not null" json:"ticket_number"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`

	Raffle Raffle `gorm:"foreignKey:RaffleID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (RaffleEntry) TableName() string {
	return "raffle_entries"
}
