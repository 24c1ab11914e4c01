package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Reward          int64          `gorm:"not null" json:"reward"`
	Status          string         `gorm:"size:10;not null;default:'active';index" json:"status"` // active | inactive
	Type            string         `gorm:"column:task_type;size:12;not null;default:'manual'" json:"task_type"` // manual | link_click
	VerificationURL string         `gorm:"size:512" json:"verification_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
