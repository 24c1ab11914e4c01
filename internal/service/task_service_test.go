package service

import (
	"sync"
	"testing"

	"poinku/internal/domain"
	"poinku/internal/models"
	"poinku/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *TaskService {
	settle := NewSettlementService(db, nil)
	return NewTaskService(db, settle, repository.NewAuditLogRepository(db))
}

func createTask(t *testing.T, db *gorm.DB, taskType string, reward int64, url string) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:           "Follow the channel",
		Reward:          reward,
		Status:          domain.TaskActive,
		Type:            taskType,
		VerificationURL: url,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestSubmitManualProof(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "alice", 0)
	task := createTask(t, db, domain.TaskTypeManual, 50, "")

	completion, err := svc.SubmitManualProof(u.ID, task.ID, "https://proof.example/shot.png")
	require.NoError(t, err)
	require.Equal(t, domain.CompletionPending, completion.Status)

	// No payout before review.
	require.EqualValues(t, 0, userPoints(t, db, u.ID))

	_, err = svc.SubmitManualProof(u.ID, task.ID, "again")
	require.ErrorIs(t, err, domain.ErrAlreadySubmitted)
}

func TestConcurrentSubmitsKeepOnePending(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "gail", 0)
	task := createTask(t, db, domain.TaskTypeManual, 50, "")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitManualProof(u.ID, task.ID, "proof")
		}(i)
	}
	wg.Wait()

	var accepted, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case err == domain.ErrAlreadySubmitted:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, accepted)
	require.Equal(t, 1, dup)

	var pending int64
	require.NoError(t, db.Model(&models.TaskCompletion{}).
		Where("user_id = ? AND task_id = ? AND status <> ?", u.ID, task.ID, domain.CompletionRejected).
		Count(&pending).Error)
	require.EqualValues(t, 1, pending)
}

func TestSubmitManualProofWrongType(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "bob", 0)
	task := createTask(t, db, domain.TaskTypeLinkClick, 50, "https://target.example")

	_, err := svc.SubmitManualProof(u.ID, task.ID, "proof")
	require.ErrorIs(t, err, domain.ErrWrongTaskType)

	_, err = svc.SubmitManualProof(u.ID, 9999, "proof")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprovePaysExactlyOnce(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "carol", 0)
	admin := createUser(t, db, "root", 0)
	task := createTask(t, db, domain.TaskTypeManual, 75, "")

	completion, err := svc.SubmitManualProof(u.ID, task.ID, "proof")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(completion.ID, admin.ID))
	require.EqualValues(t, 75, userPoints(t, db, u.ID))
	require.EqualValues(t, 75, ledgerSum(t, db, u.ID))

	err = svc.Approve(completion.ID, admin.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	require.EqualValues(t, 75, userPoints(t, db, u.ID))

	// The approval left an audit trail.
	var audits int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "task_approve").Count(&audits).Error)
	require.EqualValues(t, 1, audits)
}

func TestRejectAllowsResubmission(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "dave", 0)
	admin := createUser(t, db, "root", 0)
	task := createTask(t, db, domain.TaskTypeManual, 50, "")

	completion, err := svc.SubmitManualProof(u.ID, task.ID, "blurry screenshot")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(completion.ID, admin.ID))
	require.EqualValues(t, 0, userPoints(t, db, u.ID))

	// Rejection is terminal for that submission but not for the task.
	require.ErrorIs(t, svc.Approve(completion.ID, admin.ID), domain.ErrAlreadyProcessed)

	_, err = svc.SubmitManualProof(u.ID, task.ID, "better screenshot")
	require.NoError(t, err)
}

func TestAutoVerifyLinkPaysOnceAndStillRedirects(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "erin", 0)
	task := createTask(t, db, domain.TaskTypeLinkClick, 30, "https://target.example/page")

	redirect, err := svc.AutoVerifyLink(u.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "https://target.example/page", redirect)
	require.EqualValues(t, 30, userPoints(t, db, u.ID))

	// Re-visiting keeps the redirect but never pays twice.
	redirect, err = svc.AutoVerifyLink(u.ID, task.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	require.Equal(t, "https://target.example/page", redirect)
	require.EqualValues(t, 30, userPoints(t, db, u.ID))
	require.EqualValues(t, 30, ledgerSum(t, db, u.ID))
}

func TestConcurrentAutoVerifyPaysOnce(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "heidi", 0)
	task := createTask(t, db, domain.TaskTypeLinkClick, 30, "https://target.example")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AutoVerifyLink(u.ID, task.ID)
		}(i)
	}
	wg.Wait()

	var paid, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			paid++
		case err == domain.ErrAlreadyCompleted:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, paid)
	require.Equal(t, 1, dup)

	require.EqualValues(t, 30, userPoints(t, db, u.ID))
	require.EqualValues(t, 30, ledgerSum(t, db, u.ID))
	var approved int64
	require.NoError(t, db.Model(&models.TaskCompletion{}).
		Where("user_id = ? AND task_id = ? AND status = ?", u.ID, task.ID, domain.CompletionApproved).
		Count(&approved).Error)
	require.EqualValues(t, 1, approved)
}

func TestAutoVerifyLinkEligibility(t *testing.T) {
	db := testDB(t)
	svc := newTaskService(db)
	u := createUser(t, db, "frank", 0)

	manual := createTask(t, db, domain.TaskTypeManual, 30, "")
	_, err := svc.AutoVerifyLink(u.ID, manual.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotEligible)

	inactive := createTask(t, db, domain.TaskTypeLinkClick, 30, "https://target.example")
	require.NoError(t, db.Model(inactive).Update("status", domain.TaskInactive).Error)
	_, err = svc.AutoVerifyLink(u.ID, inactive.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotEligible)
}
