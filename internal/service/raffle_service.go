package service

import (
	"errors"
	"fmt"
	"time"

	"poinku/internal/domain"
	"poinku/internal/models"
	"poinku/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RaffleService struct {
	db          *gorm.DB
	settle      *SettlementService
	audit       *repository.AuditLogRepository
	ticketPrice int64
}

func NewRaffleService(db *gorm.DB, settle *SettlementService, audit *repository.AuditLogRepository, ticketPrice int64) *RaffleService {
	return &RaffleService{db: db, settle: settle, audit: audit, ticketPrice: ticketPrice}
}

// Exchange debits points and issues amount/ticketPrice tickets against the
// current active raffle. The raffle row is locked before reading
// MAX(ticket_number), so concurrent exchanges cannot allocate overlapping
// numbers; the sequence per raffle stays gapless.
func (s *RaffleService) Exchange(userID uint, amount int64) ([]int, error) {
	if amount <= 0 || amount%s.ticketPrice != 0 {
		return nil, domain.ErrInvalidAmount
	}
	ticketCount := int(amount / s.ticketPrice)
	var numbers []int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var raffle models.Raffle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ?", domain.RaffleActive).
			Order("created_at DESC").
			First(&raffle).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoActiveRaffle
			}
			return err
		}
		reason := fmt.Sprintf("Exchanged %d points for %d raffle tickets", amount, ticketCount)
		if _, err := s.settle.Apply(tx, userID, -amount, reason, domain.SourceRaffle); err != nil {
			return err
		}
		var last int
		if err := tx.Model(&models.RaffleEntry{}).
			Where("raffle_id = ?", raffle.ID).
			Select("COALESCE(MAX(ticket_number), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		numbers = numbers[:0]
		for i := 1; i <= ticketCount; i++ {
			entry := models.RaffleEntry{
				RaffleID:     raffle.ID,
				UserID:       userID,
				TicketNumber: last + i,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			numbers = append(numbers, entry.TicketNumber)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.settle.NotifyBalance(userID)
	return numbers, nil
}

// AssignWinner transitions a raffle to drawn exactly once. The winner must
// hold at least one ticket in the raffle.
func (s *RaffleService) AssignWinner(raffleID, winnerID, actorID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var raffle models.Raffle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&raffle, raffleID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if raffle.Status == domain.RaffleDrawn {
			return domain.ErrAlreadyDrawn
		}
		var winner models.User
		if err := tx.First(&winner, winnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidWinner
			}
			return err
		}
		var tickets int64
		if err := tx.Model(&models.RaffleEntry{}).
			Where("raffle_id = ? AND user_id = ?", raffleID, winnerID).
			Count(&tickets).Error; err != nil {
			return err
		}
		if tickets == 0 {
			return domain.ErrInvalidWinner
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":          domain.RaffleDrawn,
			"winner_id":       winner.ID,
			"winner_username": winner.Username,
			"draw_date":       now,
		}
		if err := tx.Model(&raffle).Updates(updates).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("raffle #%d %q won by %s", raffle.ID, raffle.Title, winner.Username)
		return s.audit.AppendTx(tx, actorID, "raffle_draw", detail)
	})
}
