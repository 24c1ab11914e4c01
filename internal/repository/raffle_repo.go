package repository

import (
	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
)

type RaffleRepository struct {
	db *gorm.DB
}

func NewRaffleRepository(db *gorm.DB) *RaffleRepository {
	return &RaffleRepository{db: db}
}

func (r *RaffleRepository) Create(raffle *models.Raffle) error {
	return r.db.Create(raffle).Error
}

func (r *RaffleRepository) GetByID(id uint) (*models.Raffle, error) {
	var raffle models.Raffle
	if err := r.db.First(&raffle, id).Error; err != nil {
		return nil, err
	}
	return &raffle, nil
}

func (r *RaffleRepository) Update(raffle *models.Raffle) error {
	return r.db.Save(raffle).Error
}

func (r *RaffleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("raffle_id = ?", id).Delete(&models.RaffleEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Raffle{}, id).Error
	})
}

func (r *RaffleRepository) ListActive() ([]models.Raffle, error) {
	var raffles []models.Raffle
	err := r.db.Where("status = ?", domain.RaffleActive).Order("created_at DESC").Find(&raffles).Error
	return raffles, err
}

// RaffleRow is the admin listing shape with the entry count.
type RaffleRow struct {
	models.Raffle
	TotalEntries int64 `json:"total_entries"`
}

func (r *RaffleRepository) ListAllWithCounts() ([]RaffleRow, error) {
	var rows []RaffleRow
	err := r.db.Model(&models.Raffle{}).
		Select("raffles.*, COUNT(raffle_entries.id) AS total_entries").
		Joins("LEFT JOIN raffle_entries ON raffle_entries.raffle_id = raffles.id").
		Group("raffles.id").
		Order("raffles.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// EntryRow joins a ticket with its holder.
type EntryRow struct {
	TicketNumber int    `json:"ticket_number"`
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	CreatedAt    string `json:"created_at"`
}

func (r *RaffleRepository) EntriesByRaffle(raffleID uint) ([]EntryRow, error) {
	var rows []EntryRow
	err := r.db.Model(&models.RaffleEntry{}).
		Select("raffle_entries.ticket_number, raffle_entries.user_id, users.username, raffle_entries.created_at").
		Joins("JOIN users ON users.id = raffle_entries.user_id").
		Where("raffle_entries.raffle_id = ?", raffleID).
		Order("raffle_entries.ticket_number ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *RaffleRepository) EntriesByUser(userID uint) ([]models.RaffleEntry, error) {
	var entries []models.RaffleEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// Winners lists drawn raffles most recent first.
func (r *RaffleRepository) Winners() ([]models.Raffle, error) {
	var raffles []models.Raffle
	err := r.db.Where("status = ? AND winner_id IS NOT NULL", domain.RaffleDrawn).
		Order("draw_date DESC").Find(&raffles).Error
	return raffles, err
}
