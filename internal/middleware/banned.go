package middleware

import (
	"net/http"

	"poinku/internal/repository"

	"github.com/gin-gonic/gin"
)

// NotBanned blocks requests from banned accounts. Use after AuthRequired.
// Ban state lives on the user row, not in the token, so a fresh lookup is
// required for the ban to take effect before token expiry.
func NotBanned(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := userRepo.GetByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if u.IsBanned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is banned"})
			return
		}
		c.Next()
	}
}
