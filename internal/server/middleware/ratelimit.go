// file: internal/server/middleware/ratelimit.go
// version: 1.1.0
// guid: 2446816b-96dc-4269-83a6-6df314c9b1f8

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter is a lightweight per-client token bucket limiter keyed by
// client IP. Idle entries are pruned so the map does not grow with every
// visitor ever seen.
type ClientRateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*clientEntry
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

func NewClientRateLimiter(requestsPerMinute, burst int) *ClientRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientRateLimiter{
		entries:        make(map[string]*clientEntry),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
	}
}

func (r *ClientRateLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.entries, k)
		}
	}

	entry, ok := r.entries[key]
	if !ok {
		entry = &clientEntry{
			limiter:  rate.NewLimiter(rate.Limit(float64(r.requestsPerMin)/60.0), r.burst),
			lastSeen: now,
		}
		r.entries[key] = entry
		return entry.limiter
	}

	entry.lastSeen = now
	return entry.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (r *ClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !r.limiterFor(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
