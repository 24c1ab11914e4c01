package service

import (
	"errors"
	"time"

	"poinku/config"
	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatService awards points for livestream chat activity. Two rules are
// evaluated per message, both may fire at once: a one-time bonus for the
// first qualifying message from a linked channel, and a recurring bonus once
// the cooldown since the last award has elapsed. The cooldown stamp moves
// only when the recurring bonus actually pays.
type ChatService struct {
	db     *gorm.DB
	settle *SettlementService
	cfg    config.RewardsConfig
}

func NewChatService(db *gorm.DB, settle *SettlementService, cfg config.RewardsConfig) *ChatService {
	return &ChatService{db: db, settle: settle, cfg: cfg}
}

// Award processes one chat message. A channel with no linked user, or a
// banned user, yields no entries and no error.
func (s *ChatService) Award(channelID string, messageAt time.Time) ([]models.LedgerEntry, error) {
	var awarded []models.LedgerEntry
	var userID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("youtube_channel_id = ?", channelID).
			First(&u).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if u.IsBanned {
			return nil
		}
		userID = u.ID
		updates := map[string]interface{}{}
		if !u.ChatBonusClaimed {
			entry, err := s.settle.Apply(tx, u.ID, s.cfg.ChatFirstBonus,
				"First livestream chat message bonus", domain.SourceChat)
			if err != nil {
				return err
			}
			awarded = append(awarded, *entry)
			updates["chat_bonus_claimed"] = true
		}
		if u.LastChatAwardAt == nil || messageAt.Sub(*u.LastChatAwardAt) >= s.cfg.ChatCooldown {
			entry, err := s.settle.Apply(tx, u.ID, s.cfg.ChatRecurringBonus,
				"Livestream chat activity bonus", domain.SourceChat)
			if err != nil {
				return err
			}
			awarded = append(awarded, *entry)
			updates["last_chat_award_at"] = messageAt
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", u.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if len(awarded) > 0 {
		s.settle.NotifyBalance(userID)
	}
	return awarded, nil
}
