package repository

import (
	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveTasks   int64 `json:"active_tasks"`
	ActiveRaffles int64 `json:"active_raffles"`
	TotalWallets  int64 `json:"total_wallets"`
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).Where("status = ?", domain.TaskActive).Count(&s.ActiveTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Raffle{}).Where("status = ?", domain.RaffleActive).Count(&s.ActiveRaffles).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Wallet{}).Count(&s.TotalWallets).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
