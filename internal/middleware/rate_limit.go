package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// RateLimit applies a per-IP token bucket across all routes.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute < 1 {
		perMinute = 1
	}

	var (
		mu       sync.Mutex
		limiters = map[string]*clientLimiter{}
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := max(perMinute/2, 1)

	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		for key, cl := range limiters {
			if now.After(cl.expires) {
				delete(limiters, key)
			}
		}

		if cl, ok := limiters[ip]; ok {
			cl.expires = now.Add(5 * time.Minute)
			return cl.limiter
		}

		cl := &clientLimiter{
			limiter: rate.NewLimiter(limit, burst),
			expires: now.Add(5 * time.Minute),
		}
		limiters[ip] = cl
		return cl.limiter
	}

	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
