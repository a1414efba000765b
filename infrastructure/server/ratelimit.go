package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimited creates middleware that enforces a token bucket rate
// limit on the estimate endpoint. Requests over budget are rejected
// immediately with 429 rather than queued; the computation is cheap
// enough that callers should simply retry.
func rateLimited(limiter *rate.Limiter) gin.HandlerFunc {
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
