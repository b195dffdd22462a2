package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Per-IP limits. Voice platforms retry aggressively when a webhook stalls,
// so the burst stays generous.
const (
	requestsPerSecond = 5
	burstSize         = 20
)

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit rejects callers that exceed the per-IP budget with a 429.
func RateLimit(logger *zap.Logger) gin.HandlerFunc {
	store := &limiterStore{limiters: make(map[string]*rate.Limiter)}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
