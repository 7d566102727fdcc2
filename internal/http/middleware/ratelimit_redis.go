package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client backing the
// rate limiters. With an empty addr, or when the ping fails, the client
// stays nil and limits are enforced in process memory instead.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

// incr bumps the fixed-window counter for key, preferring Redis.
func incr(key string, dur time.Duration) int64 {
	if redisClient == nil {
		return int64(memIncr(key, dur))
	}

	ctx := context.Background()
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		// fail-open on Redis errors: availability beats strictness here
		return 0
	}
	if val == 1 {
		redisClient.Expire(ctx, key, dur)
	}
	return val
}

// RateLimit is a fixed-window per-IP limiter (INCR/EXPIRE scheme).
func RateLimit(maxRequests int, dur time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		RLRequests.WithLabelValues(c.FullPath()).Inc()

		key := "rl:" + strconv.FormatInt(int64(dur.Seconds()), 10) + ":" + c.ClientIP()
		val := incr(key, dur)

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(dur.Seconds()),
			})
			return
		}
		c.Next()
	}
}

// DecisionRateLimit limits decision submissions per participant (not per
// IP). Requires the JWT middleware to have run first.
func DecisionRateLimit(maxDecisions int, dur time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID, ok := ParticipantID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "decision_rl:" + participantID + ":" + strconv.FormatInt(int64(dur.Seconds()), 10)
		val := incr(key, dur)

		if val > int64(maxDecisions) {
			RLBlocked.WithLabelValues("decision:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "decision rate limit exceeded",
				"retry_after": int(dur.Seconds()),
			})
			return
		}
		c.Next()
	}
}
