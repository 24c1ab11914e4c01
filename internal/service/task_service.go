package service

import (
	"errors"
	"fmt"

	"poinku/internal/domain"
	"poinku/internal/models"
	"poinku/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskService covers both reward paths for tasks: manual proof submission
// (paid out on admin approval) and link_click auto-verification (paid out
// immediately, completion and settlement in one transaction).
type TaskService struct {
	db     *gorm.DB
	settle *SettlementService
	audit  *repository.AuditLogRepository
}

func NewTaskService(db *gorm.DB, settle *SettlementService, audit *repository.AuditLogRepository) *TaskService {
	return &TaskService{db: db, settle: settle, audit: audit}
}

// SubmitManualProof records a pending completion. No points move until an
// admin approves it. The user row is locked before the duplicate check so
// two concurrent submits cannot both insert a pending row.
func (s *TaskService) SubmitManualProof(userID, taskID uint, proof string) (*models.TaskCompletion, error) {
	var completion *models.TaskCompletion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if task.Type != domain.TaskTypeManual {
			return domain.ErrWrongTaskType
		}
		var u models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND task_id = ? AND status <> ?", userID, taskID, domain.CompletionRejected).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadySubmitted
		}
		completion = &models.TaskCompletion{
			UserID: userID,
			TaskID: taskID,
			Status: domain.CompletionPending,
			Proof:  proof,
		}
		return tx.Create(completion).Error
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

// AutoVerifyLink settles a link_click task's reward and records the approved
// completion atomically. The user row is locked before the completion check
// so concurrent verifications serialize and only the first one pays. It
// always returns the verification target when the task exists so the caller
// can redirect, even on ErrAlreadyCompleted.
func (s *TaskService) AutoVerifyLink(userID, taskID uint) (string, error) {
	var redirect string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("id = ? AND status = ? AND task_type = ?", taskID, domain.TaskActive, domain.TaskTypeLinkClick).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotEligible
			}
			return err
		}
		redirect = task.VerificationURL
		var u models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND task_id = ? AND status = ?", userID, taskID, domain.CompletionApproved).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyCompleted
		}
		reason := fmt.Sprintf("Completed task: %s", task.Title)
		if _, err := s.settle.Apply(tx, userID, task.Reward, reason, domain.SourceTask); err != nil {
			return err
		}
		return tx.Create(&models.TaskCompletion{
			UserID: userID,
			TaskID: taskID,
			Status: domain.CompletionApproved,
		}).Error
	})
	if err != nil {
		return redirect, err
	}
	s.settle.NotifyBalance(userID)
	return redirect, nil
}

// Approve pays out a pending submission. The completion row is locked so a
// concurrent approval observes the status flip and fails instead of paying
// twice.
func (s *TaskService) Approve(completionID, actorID uint) error {
	var payeeID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var completion models.TaskCompletion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&completion, completionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if completion.Status != domain.CompletionPending {
			return domain.ErrAlreadyProcessed
		}
		var task models.Task
		if err := tx.First(&task, completion.TaskID).Error; err != nil {
			return err
		}
		reason := fmt.Sprintf("Completed task: %s", task.Title)
		if _, err := s.settle.Apply(tx, completion.UserID, task.Reward, reason, domain.SourceTask); err != nil {
			return err
		}
		if err := tx.Model(&completion).Update("status", domain.CompletionApproved).Error; err != nil {
			return err
		}
		payeeID = completion.UserID
		detail := fmt.Sprintf("approved submission #%d (task %q, +%d points to user %d)",
			completion.ID, task.Title, task.Reward, completion.UserID)
		return s.audit.AppendTx(tx, actorID, "task_approve", detail)
	})
	if err != nil {
		return err
	}
	s.settle.NotifyBalance(payeeID)
	return nil
}

// Reject is terminal and pays nothing.
func (s *TaskService) Reject(completionID, actorID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var completion models.TaskCompletion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&completion, completionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if completion.Status != domain.CompletionPending {
			return domain.ErrAlreadyProcessed
		}
		if err := tx.Model(&completion).Update("status", domain.CompletionRejected).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("rejected submission #%d", completion.ID)
		return s.audit.AppendTx(tx, actorID, "task_reject", detail)
	})
}
