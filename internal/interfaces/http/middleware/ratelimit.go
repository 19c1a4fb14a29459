package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter implements a fixed-window in-memory rate limiter keyed by
// client IP. It guards the credential endpoints against brute force; it is
// not a general API quota.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitEntry
	limit   int
	window  time.Duration
}

type rateLimitEntry struct {
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*rateLimitEntry),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, e := range rl.clients {
			if now.Sub(e.lastReset) > rl.window*2 {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether a request from the given key fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, ok := rl.clients[key]
	if !ok || now.Sub(e.lastReset) >= rl.window {
		rl.clients[key] = &rateLimitEntry{count: 1, lastReset: now}
		return true
	}
	if e.count >= rl.limit {
		return false
	}
	e.count++
	return true
}

// Middleware returns a gin middleware enforcing the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited,
					"Too many requests, slow down", requestID))
			return
		}
		c.Next()
	}
}
