package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllowPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow("a"))
	}
	require.False(t, limiter.Allow("a"))

	// Other keys have their own budget.
	require.True(t, limiter.Allow("b"))
}

func TestAllowWindowExpiry(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, 20*time.Millisecond)

	require.True(t, limiter.Allow("a"))
	require.False(t, limiter.Allow("a"))
	time.Sleep(30 * time.Millisecond)
	require.True(t, limiter.Allow("a"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(NewInMemoryRateLimiter(2, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
