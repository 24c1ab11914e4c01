package repository

import (
	"poinku/internal/models"

	"gorm.io/gorm"
)

type ClaimCodeRepository struct {
	db *gorm.DB
}

func NewClaimCodeRepository(db *gorm.DB) *ClaimCodeRepository {
	return &ClaimCodeRepository{db: db}
}

func (r *ClaimCodeRepository) Create(code *models.ClaimCode) error {
	return r.db.Create(code).Error
}

// Delete removes a code and its redemption history.
func (r *ClaimCodeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code_id = ?", id).Delete(&models.ClaimCodeRedemption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ClaimCode{}, id).Error
	})
}

// CodeRow is the admin listing shape with the aggregate redemption count.
type CodeRow struct {
	models.ClaimCode
	RedeemedCount int64 `json:"redeemed_count"`
}

func (r *ClaimCodeRepository) ListWithCounts() ([]CodeRow, error) {
	var rows []CodeRow
	err := r.db.Model(&models.ClaimCode{}).
		Select("claim_codes.*, COUNT(claim_code_redemptions.id) AS redeemed_count").
		Joins("LEFT JOIN claim_code_redemptions ON claim_code_redemptions.code_id = claim_codes.id").
		Group("claim_codes.id").
		Order("claim_codes.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
