package models

import (
	"time"

	"poinku/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:10;not null;default:'user';index" json:"role"` // user | admin
	Points       int64          `gorm:"not null;default:0" json:"points"`
	IsBanned     bool           `gorm:"not null;default:false" json:"is_banned"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for local signups (avoids duplicate '' on unique index)
	ChannelID    *string        `gorm:"column:youtube_channel_id;uniqueIndex;size:64" json:"-"`
	// Chat-activity award state: the one-time bonus flag and the cooldown stamp.
	ChatBonusClaimed bool       `gorm:"not null;default:false" json:"-"`
	LastChatAwardAt  *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
