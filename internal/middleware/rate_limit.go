package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shjra/Shjra-Maps/internal/database"
)

const (
	SearchMaxRequests = 30 // par minute et par IP
	searchCooldown    = 1 * time.Minute
)

// SearchRateLimit limite les recherches par IP (anti-spam). Sans Redis le
// middleware laisse tout passer.
func SearchRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "search_requests:" + c.ClientIP()

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= SearchMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"error":       "Too many requests",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, searchCooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}
