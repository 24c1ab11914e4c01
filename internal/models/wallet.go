package models

import "time"

// Wallet is a currency-denominated balance, one row per (user, currency).
// Wallets and points never convert into each other.
type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_wallet_user_currency;not null" json:"user_id"`
	Currency  string    `gorm:"uniqueIndex:idx_wallet_user_currency;size:8;not null" json:"currency"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Wallet) TableName() string {
	return "users_wallet"
}
