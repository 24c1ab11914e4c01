package handler

import (
	"net/http"
	"strconv"

	"poinku/internal/middleware"
	"poinku/internal/models"
	"poinku/internal/repository"
	"poinku/internal/service"

	"github.com/gin-gonic/gin"
)

type RaffleHandler struct {
	raffleRepo *repository.RaffleRepository
	svc        *service.RaffleService
}

func NewRaffleHandler(raffleRepo *repository.RaffleRepository, svc *service.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleRepo: raffleRepo, svc: svc}
}

// List returns active raffles plus the caller's ticket numbers.
func (h *RaffleHandler) List(c *gin.Context) {
	raffles, err := h.raffleRepo.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.raffleRepo.EntriesByUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	mine := make(map[uint][]int)
	for _, e := range entries {
		mine[e.RaffleID] = append(mine[e.RaffleID], e.TicketNumber)
	}
	out := make([]gin.H, 0, len(raffles))
	for _, r := range raffles {
		out = append(out, gin.H{
			"id":         r.ID,
			"title":      r.Title,
			"reward":     r.Reward,
			"status":     r.Status,
			"my_tickets": mine[r.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"raffles": out})
}

// Winners returns drawn raffles with their winner.
func (h *RaffleHandler) Winners(c *gin.Context) {
	raffles, err := h.raffleRepo.Winners()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": raffles})
}

type ExchangeRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Exchange converts points into raffle tickets on the active raffle.
func (h *RaffleHandler) Exchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tickets, err := h.svc.Exchange(middleware.GetUserID(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "points exchanged", "ticket_numbers": tickets})
}

type RaffleRequest struct {
	Title  string `json:"title" binding:"required"`
	Reward string `json:"reward"`
}

func (h *RaffleHandler) AdminList(c *gin.Context) {
	rows, err := h.raffleRepo.ListAllWithCounts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffles": rows})
}

func (h *RaffleHandler) AdminCreate(c *gin.Context) {
	var req RaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raffle := &models.Raffle{Title: req.Title, Reward: req.Reward}
	if err := h.raffleRepo.Create(raffle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, raffle)
}

func (h *RaffleHandler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid raffle id"})
		return
	}
	if err := h.raffleRepo.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "raffle deleted"})
}

// AdminEntries lists every ticket of a raffle with its holder.
func (h *RaffleHandler) AdminEntries(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid raffle id"})
		return
	}
	rows, err := h.raffleRepo.EntriesByRaffle(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": rows})
}

type SetWinnerRequest struct {
	WinnerID uint `json:"winner_id" binding:"required"`
}

// AdminSetWinner marks a raffle drawn with the given winner. A raffle is
// drawn at most once.
func (h *RaffleHandler) AdminSetWinner(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid raffle id"})
		return
	}
	var req SetWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.AssignWinner(uint(id), req.WinnerID, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "winner assigned"})
}
