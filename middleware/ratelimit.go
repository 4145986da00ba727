package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tshirt-store/models"
)

// RateLimiter throttles order submissions per client IP over a fixed
// window. Counts live in redis when the cache is up so restarts do not
// reset windows; otherwise an in-memory map serves the same contract.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 5
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		buckets:  make(map[string]*bucket),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.Request.Context(), c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Message: "Too many orders, please try again in a minute",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	if models.RedisClient != nil {
		return rl.allowRedis(ctx, key)
	}
	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) bool {
	redisKey := "ratelimit:orders:" + key

	count, err := models.RedisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		// Cache trouble must not block customers.
		return rl.allowLocal(key)
	}
	if count == 1 {
		models.RedisClient.Expire(ctx, redisKey, rl.interval)
	}
	return count <= int64(rl.limit)
}

func (rl *RateLimiter) allowLocal(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.lastReset) > rl.interval {
		rl.buckets[key] = &bucket{count: 1, lastReset: now}
		rl.sweep(now)
		return true
	}

	b.count++
	return b.count <= rl.limit
}

// sweep drops expired buckets so the map stays bounded. Called with the
// lock held.
func (rl *RateLimiter) sweep(now time.Time) {
	if len(rl.buckets) < 500 {
		return
	}
	cutoff := now.Add(-rl.interval)
	for key, b := range rl.buckets {
		if b.lastReset.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}
