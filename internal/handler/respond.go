package handler

import (
	"errors"
	"log"
	"net/http"

	"poinku/internal/domain"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// statusFor maps domain errors to HTTP status codes. Handlers switch on the
// error kind, never on message text.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrNoActiveRaffle),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrWrongTaskType),
		errors.Is(err, domain.ErrTaskNotEligible):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrAlreadyUsed),
		errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrMaxClaimsReached),
		errors.Is(err, domain.ErrAlreadyDrawn),
		errors.Is(err, domain.ErrInvalidWinner):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSelfTip):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBanned):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped error response. Internal errors are logged
// and masked.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
