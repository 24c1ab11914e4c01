package service

import (
	"errors"
	"fmt"
	"strings"

	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TipService struct {
	db     *gorm.DB
	settle *SettlementService
}

func NewTipService(db *gorm.DB, settle *SettlementService) *TipService {
	return &TipService{db: db, settle: settle}
}

// Send moves points between users: sender debit, recipient credit and the
// transfer record commit together, so the total point supply is unchanged.
func (s *TipService) Send(senderID uint, recipientUsername string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	var recipientID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sender models.User
		if err := tx.First(&sender, senderID).Error; err != nil {
			return err
		}
		if strings.EqualFold(sender.Username, recipientUsername) {
			return domain.ErrSelfTip
		}
		var recipient models.User
		err := tx.Where("LOWER(username) = LOWER(?)", recipientUsername).First(&recipient).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipientNotFound
			}
			return err
		}
		// Lock both rows in ascending id order so opposite-direction tips
		// cannot deadlock on each other.
		first, second := sender.ID, recipient.ID
		if first > second {
			first, second = second, first
		}
		for _, id := range []uint{first, second} {
			var locked models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, id).Error; err != nil {
				return err
			}
		}
		debitReason := fmt.Sprintf("Tip to %s", recipient.Username)
		if _, err := s.settle.Apply(tx, sender.ID, -amount, debitReason, domain.SourceTip); err != nil {
			return err
		}
		creditReason := fmt.Sprintf("Tip from %s", sender.Username)
		if _, err := s.settle.Apply(tx, recipient.ID, amount, creditReason, domain.SourceTip); err != nil {
			return err
		}
		recipientID = recipient.ID
		return tx.Create(&models.TipTransfer{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Amount:      amount,
		}).Error
	})
	if err != nil {
		return err
	}
	s.settle.NotifyBalance(senderID)
	s.settle.NotifyBalance(recipientID)
	return nil
}
