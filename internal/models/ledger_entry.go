package models

import "time"

// LedgerEntry is the provenance record written by the settlement engine,
// one row per applied delta. The table is append-only; for every user the
// sum of Points across their rows reconciles with users.points.
type LedgerEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Points    int64     `gorm:"not null" json:"points"` // signed delta
	Reason    string    `gorm:"column:reward;size:255;not null" json:"reason"`
	Source    string    `gorm:"size:20;not null;index" json:"source"`
	Status    string    `gorm:"size:10;not null;default:'success'" json:"status"` // success | pending | rejected
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LedgerEntry) TableName() string {
	return "point_history"
}
