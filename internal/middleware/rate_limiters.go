package middleware

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/models"
	"golang.org/x/time/rate"
)

// limiterInfo holds a client's rate limiter and when it was last seen, in
// unix nanoseconds.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimitByIP applies rate limiting to requests per IP address. Limiters
// idle for longer than expiration are dropped every cleanupInterval until ctx
// is done.
func RateLimitByIP(ctx context.Context, rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	go cleanupLimiters(ctx, &limiters, cleanupInterval, expiration)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		fresh := &limiterInfo{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
		actual, _ := limiters.LoadOrStore(ip, fresh)

		info := actual.(*limiterInfo)
		info.lastSeen.Store(time.Now().UnixNano())

		if !info.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: "Too many requests",
				Code:  models.ErrCodeRateLimited,
			})
			return
		}

		c.Next()
	}
}

func cleanupLimiters(ctx context.Context, limiters *sync.Map, interval, expiration time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			evictIdle(limiters, now, expiration)
		}
	}
}

// evictIdle drops limiters not seen within expiration of now.
func evictIdle(limiters *sync.Map, now time.Time, expiration time.Duration) {
	limiters.Range(func(key, value interface{}) bool {
		lastSeen := time.Unix(0, value.(*limiterInfo).lastSeen.Load())
		if now.Sub(lastSeen) > expiration {
			limiters.Delete(key)
		}
		return true
	})
}
