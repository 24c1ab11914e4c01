package repository

import (
	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
)

type LivestreamRepository struct {
	db *gorm.DB
}

func NewLivestreamRepository(db *gorm.DB) *LivestreamRepository {
	return &LivestreamRepository{db: db}
}

// CreateActive registers a stream as the single active one, finishing any
// previously active stream in the same transaction.
func (r *LivestreamRepository) CreateActive(stream *models.Livestream) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Livestream{}).
			Where("status = ?", domain.StreamActive).
			Update("status", domain.StreamFinished).Error; err != nil {
			return err
		}
		stream.Status = domain.StreamActive
		return tx.Create(stream).Error
	})
}

func (r *LivestreamRepository) Active() (*models.Livestream, error) {
	var s models.Livestream
	if err := r.db.Where("status = ?", domain.StreamActive).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LivestreamRepository) List() ([]models.Livestream, error) {
	var streams []models.Livestream
	err := r.db.Order("created_at DESC").Find(&streams).Error
	return streams, err
}

func (r *LivestreamRepository) Finish(id uint) error {
	return r.db.Model(&models.Livestream{}).Where("id = ?", id).
		Update("status", domain.StreamFinished).Error
}
