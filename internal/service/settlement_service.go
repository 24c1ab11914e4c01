package service

import (
	"errors"

	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier publishes a fire-and-forget event after a settlement commits.
// It is never part of the transactional guarantee.
type Notifier interface {
	BroadcastToUser(userID uint, payload interface{})
}

// SettlementService is the single choke point for point balance mutation.
// Every delta goes through Apply: the user row is locked for the duration of
// the check-then-mutate sequence and the provenance row is written in the
// same transaction, so the ledger sum and users.points can never diverge.
type SettlementService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewSettlementService(db *gorm.DB, notifier Notifier) *SettlementService {
	return &SettlementService{db: db, notifier: notifier}
}

// Apply mutates the balance and appends the ledger row inside the caller's
// transaction. Debits beyond the current balance fail with
// ErrInsufficientBalance and leave the transaction to roll back.
func (s *SettlementService) Apply(tx *gorm.DB, userID uint, delta int64, reason, source string) (*models.LedgerEntry, error) {
	var u models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if delta < 0 && u.Points+delta < 0 {
		return nil, domain.ErrInsufficientBalance
	}
	if err := tx.Model(&models.User{}).Where("id = ?", u.ID).
		Update("points", gorm.Expr("points + ?", delta)).Error; err != nil {
		return nil, err
	}
	entry := &models.LedgerEntry{
		UserID: userID,
		Points: delta,
		Reason: reason,
		Source: source,
		Status: domain.LedgerSuccess,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Settle runs a single Apply in its own transaction and notifies afterwards.
func (s *SettlementService) Settle(userID uint, delta int64, reason, source string) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := s.Apply(tx, userID, delta, reason, source)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.NotifyBalance(userID)
	return entry, nil
}

// NotifyBalance pushes the user's committed balance over the hub. Callers
// invoke it after their transaction commits; failures are ignored.
func (s *SettlementService) NotifyBalance(userID uint) {
	if s.notifier == nil {
		return
	}
	var u models.User
	if err := s.db.First(&u, userID).Error; err != nil {
		return
	}
	s.notifier.BroadcastToUser(userID, map[string]interface{}{
		"type":    "balance_changed",
		"user_id": u.ID,
		"points":  u.Points,
	})
}
