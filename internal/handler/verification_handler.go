package handler

import (
	"net/http"
	"strconv"

	"poinku/internal/middleware"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

// VerificationHandler is the admin review queue for manual task proofs.
type VerificationHandler struct {
	taskRepo *repository.TaskRepository
	svc      *service.TaskService
}

func NewVerificationHandler(taskRepo *repository.TaskRepository, svc *service.TaskService) *VerificationHandler {
	return &VerificationHandler{taskRepo: taskRepo, svc: svc}
}

func (h *VerificationHandler) Pending(c *gin.Context) {
	rows, err := h.taskRepo.ListPendingSubmissions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": rows})
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}
	if err := h.svc.Approve(uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "submission approved"})
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}
	if err := h.svc.Reject(uint(id), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "submission rejected"})
}
