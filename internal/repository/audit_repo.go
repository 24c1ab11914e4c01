package repository

import (
	"poinku/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(actorID uint, action, description string) error {
	return r.db.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      action,
		Description: description,
	}).Error
}

// AppendTx writes the audit row inside the caller's transaction.
func (r *AuditLogRepository) AppendTx(tx *gorm.DB, actorID uint, action, description string) error {
	return tx.Create(&models.AuditLog{
		ActorID:     actorID,
		Action:      action,
		Description: description,
	}).Error
}

func (r *AuditLogRepository) Recent(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
