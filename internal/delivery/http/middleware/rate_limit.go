package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"recruiter-pipeline-backend/config"
	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/metrics"
	"recruiter-pipeline-backend/pkg/redis"
	"recruiter-pipeline-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor; owner id when authenticated, client IP otherwise
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Redis client; nil uses the shared client from pkg/redis
	Client func() *goredis.Client
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

// RateLimitFromConfig builds the pipeline API limit from RATE_LIMIT_* settings
func RateLimitFromConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:     cfg.RateLimitThreshold,
		Window:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:pipeline:",
		KeyFunc:   ownerOrIP,
	}
}

func ownerOrIP(c *gin.Context) string {
	if owner := c.GetString(string(domain.KeyOwnerID)); owner != "" {
		return "owner:" + owner
	}
	return "ip:" + c.ClientIP()
}

// memoryLimiter is the fallback counter store used when Redis is unavailable
type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	sweptAt time.Time
}

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{entries: make(map[string]*rateLimitEntry)}
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// drop expired windows at most once per window
	if now.Sub(m.sweptAt) > window {
		for k, e := range m.entries {
			if now.After(e.resetAt) {
				delete(m.entries, k)
			}
		}
		m.sweptAt = now
	}

	entry, ok := m.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(window)}
		m.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ownerOrIP
	}
	if cfg.Client == nil {
		cfg.Client = redis.Client
	}
	fallback := newMemoryLimiter()

	return func(c *gin.Context) {
		if cfg.Limit <= 0 {
			c.Next()
			return
		}

		fullKey := cfg.KeyPrefix + cfg.KeyFunc(c)
		now := time.Now()

		var (
			count   int
			resetAt time.Time
			backend = "memory"
		)
		if client := cfg.Client(); client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, cfg.Window)
			if err != nil {
				logRateLimitDegraded(c, err)
				if cfg.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = fallback.hit(fullKey, cfg.Window, now)
			} else {
				backend = "redis"
			}
		} else {
			count, resetAt = fallback.hit(fullKey, cfg.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			metrics.RateLimited.WithLabelValues(backend).Inc()
			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(string(domain.KeyRequestID)),
				c.FullPath(),
			)

			response.Retry(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, int(window.Seconds())).Result()
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

func logRateLimitDegraded(c *gin.Context, err error) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventRateLimitDegraded,
		IP:        c.ClientIP(),
		RequestID: c.GetString(string(domain.KeyRequestID)),
		Details:   map[string]interface{}{"error": err.Error()},
	})
}
