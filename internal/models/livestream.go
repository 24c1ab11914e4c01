package models

import "time"

// Livestream is a registered YouTube broadcast. At most one row is active
// system-wide; registering a new one demotes the previous active row.
type Livestream struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	VideoID    string    `gorm:"column:youtube_video_id;size:32;not null" json:"youtube_video_id"`
	LiveChatID string    `gorm:"size:128" json:"live_chat_id"`
	Status     string    `gorm:"size:10;not null;default:'active';index" json:"status"` // active | finished
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Livestream) TableName() string {
	return "livestreams"
}
