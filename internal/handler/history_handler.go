package handler

import (
	"net/http"
	"strconv"

	"poinku/internal/middleware"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc        *service.HistoryService
	ledgerRepo *repository.LedgerRepository
}

func NewHistoryHandler(svc *service.HistoryService, ledgerRepo *repository.LedgerRepository) *HistoryHandler {
	return &HistoryHandler{svc: svc, ledgerRepo: ledgerRepo}
}

// Feed returns the merged activity feed: ledger entries plus task
// submissions in every state, newest first.
func (h *HistoryHandler) Feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.svc.Feed(middleware.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

// Ledger returns the caller's raw point ledger, newest first.
func (h *HistoryHandler) Ledger(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.ledgerRepo.ListByUser(middleware.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
