package handler

import (
	"net/http"
	"strconv"

	"poinku/internal/middleware"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	tipRepo *repository.TipRepository
	svc     *service.TipService
}

func NewTipHandler(tipRepo *repository.TipRepository, svc *service.TipService) *TipHandler {
	return &TipHandler{tipRepo: tipRepo, svc: svc}
}

type SendTipRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// Send transfers points to another user by username.
func (h *TipHandler) Send(c *gin.Context) {
	var req SendTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Send(middleware.GetUserID(c), req.Recipient, req.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tip sent"})
}

// History lists transfers the caller took part in, newest first.
func (h *TipHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.tipRepo.HistoryForUser(middleware.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": rows})
}
