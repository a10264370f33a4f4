package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bms-digital/user-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type rateLimiter struct {
	requests   map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func (rl *rateLimiter) cleanup(now time.Time) {
	for ip, stamps := range rl.requests {
		var valid []time.Time
		for _, t := range stamps {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.requests[ip] = valid
		} else {
			delete(rl.requests, ip)
		}
	}
}

// RateLimit enforces a sliding-window per-IP request cap
func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := &rateLimiter{
		requests:   make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		limiter.mu.Lock()
		defer limiter.mu.Unlock()

		limiter.cleanup(now)

		stamps := limiter.requests[ip]
		if len(stamps) >= maxRequest {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("current_requests", len(stamps)),
				zap.Int("max_requests", maxRequest),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": duration.Seconds(),
			})
			c.Abort()
			return
		}

		limiter.requests[ip] = append(stamps, now)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequest-len(stamps)-1))

		c.Next()
	}
}
