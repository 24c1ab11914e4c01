package repository

import (
	"strings"

	"poinku/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) ListByUser(userID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.Where("user_id = ?", userID).Order("currency ASC").Find(&wallets).Error
	return wallets, err
}

func (r *WalletRepository) GetByUserAndCurrency(userID uint, currency string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Where("user_id = ? AND currency = ?", userID, strings.ToUpper(currency)).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// WalletRow is the admin listing shape, wallet joined with its owner.
type WalletRow struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

func (r *WalletRepository) ListAll() ([]WalletRow, error) {
	var rows []WalletRow
	err := r.db.Model(&models.Wallet{}).
		Select("users_wallet.id, users.username, users_wallet.currency, users_wallet.balance").
		Joins("JOIN users ON users.id = users_wallet.user_id").
		Order("users_wallet.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
