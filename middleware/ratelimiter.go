package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// The sync endpoint posts in 500-event chunks, so the window must stay
// generous enough for a full calendar import.
func RateLimiter() gin.HandlerFunc {
	store := memory.NewStore()
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  300,
	}

	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}
