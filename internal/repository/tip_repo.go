package repository

import (
	"poinku/internal/models"

	"gorm.io/gorm"
)

type TipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{db: db}
}

// TipRow is a transfer joined with both usernames.
type TipRow struct {
	ID                uint   `json:"id"`
	SenderUsername    string `json:"sender_username"`
	RecipientUsername string `json:"recipient_username"`
	Amount            int64  `json:"amount"`
	CreatedAt         string `json:"created_at"`
}

// HistoryForUser lists transfers where the user is sender or recipient.
func (r *TipRepository) HistoryForUser(userID uint, limit int) ([]TipRow, error) {
	var rows []TipRow
	err := r.db.Model(&models.TipTransfer{}).
		Select("tip_history.id, sender.username AS sender_username, recipient.username AS recipient_username, tip_history.amount, tip_history.created_at").
		Joins("JOIN users sender ON sender.id = tip_history.sender_id").
		Joins("JOIN users recipient ON recipient.id = tip_history.recipient_id").
		Where("tip_history.sender_id = ? OR tip_history.recipient_id = ?", userID, userID).
		Order("tip_history.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
