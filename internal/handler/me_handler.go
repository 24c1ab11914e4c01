package handler

import (
	"net/http"
	"strings"

	"poinku/internal/middleware"
	"poinku/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

func NewMeHandler(userRepo *repository.UserRepository, walletRepo *repository.WalletRepository) *MeHandler {
	return &MeHandler{userRepo: userRepo, walletRepo: walletRepo}
}

// Me returns the authenticated user's profile, point balance and wallets.
func (h *MeHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	wallets, err := h.walletRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	channelLinked := u.ChannelID != nil && *u.ChannelID != ""
	c.JSON(http.StatusOK, gin.H{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"role":           u.Role,
		"points":         u.Points,
		"google_linked":  u.GoogleID != nil,
		"channel_linked": channelLinked,
		"wallets":        wallets,
		"created_at":     u.CreatedAt,
	})
}

// Points returns just the current balance, for cheap polling fallback when
// the websocket is unavailable.
func (h *MeHandler) Points(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": u.Points})
}

// Wallet returns one wallet by currency code.
func (h *MeHandler) Wallet(c *gin.Context) {
	currency := strings.ToUpper(c.Param("currency"))
	w, err := h.walletRepo.GetByUserAndCurrency(middleware.GetUserID(c), currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
