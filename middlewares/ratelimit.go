package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// NewRateLimiterMiddleware creates a middleware enforcing a global request
// rate across all clients.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
