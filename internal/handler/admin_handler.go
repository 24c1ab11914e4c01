package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"poinku/internal/domain"
	"poinku/internal/middleware"
	"poinku/internal/models"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo  *repository.AdminRepository
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
	auditRepo  *repository.AuditLogRepository
	settle     *service.SettlementService
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	auditRepo *repository.AuditLogRepository,
	settle *service.SettlementService,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		auditRepo:  auditRepo,
		settle:     settle,
	}
}

// Dashboard returns aggregate counters plus recent admin activity. A failing
// audit read degrades to an empty list rather than failing the page.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}
	activity, err := h.auditRepo.Recent(20)
	if err != nil {
		log.Printf("[admin] recent activity: %v", err)
		activity = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_activity": activity})
}

// Users lists accounts with optional username/email search and pagination.
func (h *AdminHandler) Users(c *gin.Context) {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	users, total, err := h.userRepo.List(search, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page})
}

func (h *AdminHandler) Ban(c *gin.Context)   { h.setBanned(c, true) }
func (h *AdminHandler) Unban(c *gin.Context) { h.setBanned(c, false) }

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if uint(id) == middleware.GetUserID(c) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot ban yourself"})
		return
	}
	if err := h.userRepo.SetBanned(uint(id), banned); err != nil {
		respondError(c, err)
		return
	}
	action := "unban_user"
	if banned {
		action = "ban_user"
	}
	_ = h.auditRepo.Append(middleware.GetUserID(c), action, fmt.Sprintf("user %d", id))
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

type TipPointRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"` // negative deducts
	Reason string `json:"reason"`
}

// TipPoint grants or deducts points by admin action. Deductions observe the
// non-negative balance rule like every other debit.
func (h *AdminHandler) TipPoint(c *gin.Context) {
	var req TipPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-zero"})
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = "Admin adjustment"
	}
	entry, err := h.settle.Settle(req.UserID, req.Amount, reason, domain.SourceAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = h.auditRepo.Append(middleware.GetUserID(c), "tip_point",
		fmt.Sprintf("user %d: %+d points (%s)", req.UserID, req.Amount, reason))
	c.JSON(http.StatusOK, gin.H{"message": "points adjusted", "entry_id": entry.ID})
}

// Wallets lists every wallet with its owner.
func (h *AdminHandler) Wallets(c *gin.Context) {
	rows, err := h.walletRepo.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": rows})
}
