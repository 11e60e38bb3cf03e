package middlewares

import (
	"net/http"
	"time"

	"github.com/MOON-roa-png/BodegaMati/config"

	"github.com/gin-gonic/gin"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 10
)

// RateLimiter throttles per client IP via a redis counter. Without redis it
// is a no-op; the login endpoint still works, just unthrottled.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()
		count, err := config.RedisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			config.RedisClient.Expire(c.Request.Context(), key, rateLimitPeriod)
		}
		if count > rateLimitCount {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
