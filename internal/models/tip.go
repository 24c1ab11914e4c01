package models

import "time"

// TipTransfer records one point transfer between users. The two ledger rows
// it pairs with net to zero.
type TipTransfer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"index;not null" json:"sender_id"`
	RecipientID uint      `gorm:"index;not null" json:"recipient_id"`
	Amount      int64     `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (TipTransfer) TableName() string {
	return "tip_history"
}
