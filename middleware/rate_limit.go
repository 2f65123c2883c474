package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/pkg/logger"
)

// rateLimiter counts requests per client IP inside a fixed window. The
// shell fronts a single user in practice, so a coarse counter is enough
// to stop a runaway preview poller from hammering the backend.
type rateLimiter struct {
	mu        sync.Mutex
	counts    map[string]int
	windowEnd time.Time
	limit     int
	window    time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		counts:    make(map[string]int),
		windowEnd: time.Now().Add(window),
		limit:     limit,
		window:    window,
	}
}

// allow records one request for ip and reports whether it stays within
// the limit
func (l *rateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.windowEnd) {
		l.counts = make(map[string]int)
		l.windowEnd = now.Add(l.window)
	}

	if l.counts[ip] >= l.limit {
		return false
	}
	l.counts[ip]++
	return true
}

// RateLimit rejects requests beyond limit per window with 429
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := newRateLimiter(limit, window)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.allow(ip) {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", ip)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
