package models

import "time"

// TaskCompletion is one user's submission for one task. At most one
// non-rejected row may exist per (user, task); a rejected row permits a new
// submission, so the composite index is deliberately not unique.
type TaskCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_completion_user_task;not null" json:"user_id"`
	TaskID    uint      `gorm:"index:idx_completion_user_task;not null" json:"task_id"`
	Status    string    `gorm:"size:10;not null;default:'pending';index" json:"status"` // pending | approved | rejected
	Proof     string    `gorm:"column:proof_data;type:text" json:"proof"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (TaskCompletion) TableName() string {
	return "task_completions"
}
