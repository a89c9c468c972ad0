package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var rlMu sync.Mutex
var clients = make(map[string]*clientInfo)

// localRateLimit is the in-process fixed-window limiter, used when no Redis
// is configured. State is per-process only.
func localRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rlMu.Lock()
		ci, ok := clients[ip]
		if !ok {
			ci = &clientInfo{last: time.Now(), count: 1}
			clients[ip] = ci
			rlMu.Unlock()
			c.Next()
			return
		}

		now := time.Now()
		if now.Sub(ci.last) > window {
			ci.last = now
			ci.count = 1
			rlMu.Unlock()
			c.Next()
			return
		}

		ci.count++
		count := ci.count
		rlMu.Unlock()

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// RateLimit picks the Redis-backed limiter when a client is configured and
// the local one otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	redisLimit := redisRateLimit(maxRequests, window)
	localLimit := localRateLimit(maxRequests, window)

	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimit(c)
			return
		}
		localLimit(c)
	}
}
