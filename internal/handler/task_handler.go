package handler

import (
	"errors"
	"net/http"
	"strconv"

	"poinku/internal/domain"
	"poinku/internal/middleware"
	"poinku/internal/models"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskRepo *repository.TaskRepository
	svc      *service.TaskService
}

func NewTaskHandler(taskRepo *repository.TaskRepository, svc *service.TaskService) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, svc: svc}
}

// List returns active tasks annotated with whether the caller already holds
// a non-rejected submission for each.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskRepo.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	completedIDs, err := h.taskRepo.CompletedTaskIDs(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}
	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, gin.H{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"reward":      t.Reward,
			"task_type":   t.Type,
			"completed":   completed[t.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

type SubmitProofRequest struct {
	Proof string `json:"proof" binding:"required"`
}

// Submit records a manual task proof for admin review.
func (h *TaskHandler) Submit(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	var req SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	completion, err := h.svc.SubmitManualProof(middleware.GetUserID(c), uint(taskID), req.Proof)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "proof submitted for review", "submission_id": completion.ID})
}

type TaskRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Reward          int64  `json:"reward" binding:"required,gt=0"`
	Status          string `json:"status" binding:"omitempty,oneof=active inactive"`
	TaskType        string `json:"task_type" binding:"omitempty,oneof=manual link_click"`
	VerificationURL string `json:"verification_url"`
}

// AdminList returns every task regardless of status.
func (h *TaskHandler) AdminList(c *gin.Context) {
	tasks, err := h.taskRepo.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) AdminCreate(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = domain.TaskActive
	}
	if req.TaskType == "" {
		req.TaskType = domain.TaskTypeManual
	}
	if req.TaskType == domain.TaskTypeLinkClick && req.VerificationURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link_click tasks require a verification_url"})
		return
	}
	task := &models.Task{
		Title:           req.Title,
		Description:     req.Description,
		Reward:          req.Reward,
		Status:          req.Status,
		Type:            req.TaskType,
		VerificationURL: req.VerificationURL,
	}
	if err := h.taskRepo.Create(task); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) AdminUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	task, err := h.taskRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task.Title = req.Title
	task.Description = req.Description
	task.Reward = req.Reward
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.TaskType != "" {
		task.Type = req.TaskType
	}
	task.VerificationURL = req.VerificationURL
	if err := h.taskRepo.Update(task); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := h.taskRepo.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// Verify settles a link_click task and redirects to its target. An already
// completed task still redirects, without paying again.
func (h *TaskHandler) Verify(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	redirect, err := h.svc.AutoVerifyLink(middleware.GetUserID(c), uint(taskID))
	if err != nil && !errors.Is(err, domain.ErrAlreadyCompleted) {
		respondError(c, err)
		return
	}
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"message": "task verified"})
		return
	}
	c.Redirect(http.StatusFound, redirect)
}
