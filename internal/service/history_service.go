package service

import (
	"sort"
	"time"

	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
)

// FeedItem is one row of the unified activity feed.
type FeedItem struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryService projects ledger provenance and task-completion events into
// one reverse-chronological feed. It is a derived read-only view; balances
// always come from the ledger, never from here.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

type completionRow struct {
	ID        uint
	Status    string
	Title     string
	Reward    int64
	CreatedAt time.Time
}

// Feed merges both event streams in Go rather than with a SQL UNION so the
// projection behaves the same on every dialect the store runs on.
func (s *HistoryService) Feed(userID uint, limit int) ([]FeedItem, error) {
	var entries []models.LedgerEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	var completions []completionRow
	err := s.db.Model(&models.TaskCompletion{}).
		Select("task_completions.id, task_completions.status, tasks.title, tasks.reward, task_completions.created_at").
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.user_id = ?", userID).
		Scan(&completions).Error
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(entries)+len(completions))
	for _, e := range entries {
		items = append(items, FeedItem{
			ID:          e.ID,
			Kind:        "POINT",
			Description: e.Reason,
			Amount:      e.Points,
			CreatedAt:   e.CreatedAt,
		})
	}
	for _, c := range completions {
		kind := "TASK_PENDING"
		var amount int64
		switch c.Status {
		case domain.CompletionApproved:
			kind = "TASK_APPROVED"
			amount = c.Reward
		case domain.CompletionRejected:
			kind = "TASK_REJECTED"
		}
		items = append(items, FeedItem{
			ID:          c.ID,
			Kind:        kind,
			Description: c.Title,
			Amount:      amount,
			CreatedAt:   c.CreatedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
