package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allowLocal("1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, rl.allowLocal("1.2.3.4"))

	// Another client has its own bucket.
	assert.True(t, rl.allowLocal("5.6.7.8"))
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.allowLocal("1.2.3.4"))
	assert.False(t, rl.allowLocal("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.allowLocal("1.2.3.4"))
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.Equal(t, 5, rl.limit)
	assert.Equal(t, time.Minute, rl.interval)
}

func TestRateLimiterMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, time.Minute)
	router := gin.New()
	router.POST("/orders", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
