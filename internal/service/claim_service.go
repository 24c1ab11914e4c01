package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"poinku/internal/domain"
	"poinku/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClaimService struct {
	db     *gorm.DB
	settle *SettlementService
}

func NewClaimService(db *gorm.DB, settle *SettlementService) *ClaimService {
	return &ClaimService{db: db, settle: settle}
}

// Redeem settles the code's reward and records the redemption atomically.
// The code row is locked so the redemption-count check against max_claims
// cannot race with another redeemer.
func (s *ClaimService) Redeem(userID uint, code string) (*models.LedgerEntry, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	var entry *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cc models.ClaimCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ? AND status = ?", code, domain.CodeActive).
			First(&cc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidCode
			}
			return err
		}
		if cc.ExpiresAt != nil && cc.ExpiresAt.Before(time.Now()) {
			return domain.ErrExpired
		}
		var total int64
		if err := tx.Model(&models.ClaimCodeRedemption{}).
			Where("code_id = ?", cc.ID).Count(&total).Error; err != nil {
			return err
		}
		if cc.MaxClaims > 0 && total >= int64(cc.MaxClaims) {
			return domain.ErrMaxClaimsReached
		}
		var mine int64
		if err := tx.Model(&models.ClaimCodeRedemption{}).
			Where("code_id = ? AND user_id = ?", cc.ID, userID).Count(&mine).Error; err != nil {
			return err
		}
		if mine > 0 {
			return domain.ErrAlreadyUsed
		}
		reason := fmt.Sprintf("Claimed code %s", cc.Code)
		entry, err = s.settle.Apply(tx, userID, cc.Reward, reason, domain.SourceClaimCode)
		if err != nil {
			return err
		}
		return tx.Create(&models.ClaimCodeRedemption{CodeID: cc.ID, UserID: userID}).Error
	})
	if err != nil {
		return nil, err
	}
	s.settle.NotifyBalance(userID)
	return entry, nil
}

// Create registers a new code; an empty code gets a generated one.
func (s *ClaimService) Create(code string, reward int64, expiresAt *time.Time, maxClaims int) (*models.ClaimCode, error) {
	if reward <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	cc := &models.ClaimCode{
		Code:      code,
		Reward:    reward,
		Status:    domain.CodeActive,
		ExpiresAt: expiresAt,
		MaxClaims: maxClaims,
	}
	if err := s.db.Create(cc).Error; err != nil {
		return nil, err
	}
	return cc, nil
}
