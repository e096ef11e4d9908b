package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// memoryLimiterSweepEvery bounds how often expired fallback entries are dropped
const memoryLimiterSweepEvery = 5 * time.Minute

// memoryLimiter is the per-middleware fallback store. Expired entries are
// swept from hit itself, so no background goroutine outlives the middleware.
type memoryLimiter struct {
	entries sync.Map

	sweepMu   sync.Mutex
	nextSweep time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      100,
		Window:     1 * time.Minute,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ApplyRateLimitConfig throttles application submissions per authenticated user
func ApplyRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     10,
		Window:    1 * time.Minute,
		KeyPrefix: "rl:apply:",
		KeyFunc: func(c *gin.Context) string {
			if id := c.GetInt64(string(domain.KeyUserID)); id != 0 {
				return strconv.FormatInt(id, 10)
			}
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// It counts in Redis when client is non-nil and falls back to process memory otherwise.
func RateLimitMiddleware(config RateLimitConfig, client *goredis.Client) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	store := &memoryLimiter{}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time

		if client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				logger.Log.Warnw("Rate limiter redis error", "key", fullKey, "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = store.hit(fullKey, config, now)
			}
		} else {
			count, resetAt = store.hit(fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Infow("Rate limit triggered",
				"ip", c.ClientIP(), "path", c.FullPath(), "request_id", c.GetString(string(domain.KeyRequestID)))

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// hit increments the in-memory counter for key
func (m *memoryLimiter) hit(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	m.maybeSweep(now)

	entryI, _ := m.entries.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(config.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// maybeSweep drops expired entries at most once per memoryLimiterSweepEvery
func (m *memoryLimiter) maybeSweep(now time.Time) {
	m.sweepMu.Lock()
	if now.Before(m.nextSweep) {
		m.sweepMu.Unlock()
		return
	}
	m.nextSweep = now.Add(memoryLimiterSweepEvery)
	m.sweepMu.Unlock()

	m.entries.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			m.entries.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}
