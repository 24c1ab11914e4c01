package handler

import (
	"net/http"
	"strconv"
	"time"

	"poinku/internal/middleware"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	claimRepo *repository.ClaimCodeRepository
	svc       *service.ClaimService
}

func NewClaimHandler(claimRepo *repository.ClaimCodeRepository, svc *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimRepo: claimRepo, svc: svc}
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// Redeem credits a claim code's reward to the caller. Codes are matched
// case-insensitively.
func (h *ClaimHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.svc.Redeem(middleware.GetUserID(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code redeemed", "reward": entry.Points})
}

func (h *ClaimHandler) AdminList(c *gin.Context) {
	rows, err := h.claimRepo.ListWithCounts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": rows})
}

type CreateCodeRequest struct {
	Code      string     `json:"code"` // optional, generated when empty
	Reward    int64      `json:"reward" binding:"required,gt=0"`
	ExpiresAt *time.Time `json:"expires_at"`
	MaxClaims int        `json:"max_claims" binding:"omitempty,gte=0"`
}

func (h *ClaimHandler) AdminCreate(c *gin.Context) {
	var req CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	code, err := h.svc.Create(req.Code, req.Reward, req.ExpiresAt, req.MaxClaims)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

func (h *ClaimHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code id"})
		return
	}
	if err := h.claimRepo.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code deleted"})
}
