package repository

import (
	"poinku/internal/domain"
	"poinku/internal/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Update(t *models.Task) error {
	return r.db.Save(t).Error
}

// Delete removes a task together with its completion rows.
func (r *TaskRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

func (r *TaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListActive() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("status = ?", domain.TaskActive).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// CompletedTaskIDs returns the ids of tasks for which the user holds a
// non-rejected completion, for marking the public task list.
func (r *TaskRepository) CompletedTaskIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.TaskCompletion{}).
		Where("user_id = ? AND status <> ?", userID, domain.CompletionRejected).
		Pluck("task_id", &ids).Error
	return ids, err
}

// PendingSubmission is the admin verification queue shape.
type PendingSubmission struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	TaskTitle string `json:"task_title"`
	Proof     string `json:"proof"`
	CreatedAt string `json:"created_at"`
}

func (r *TaskRepository) ListPendingSubmissions() ([]PendingSubmission, error) {
	var rows []PendingSubmission
	err := r.db.Model(&models.TaskCompletion{}).
		Select("task_completions.id, users.username, tasks.title AS task_title, task_completions.proof_data AS proof, task_completions.created_at").
		Joins("JOIN users ON users.id = task_completions.user_id").
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.status = ?", domain.CompletionPending).
		Order("task_completions.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
