package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/logging"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether one more request for key fits in its budget
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter is a fixed-window limiter shared by every API instance
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a new Redis backed limiter
func NewRedisLimiter(client *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: client, config: config, now: time.Now}
}

// Allow counts the request in the current window
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	return Decision{
		Allowed:   count <= rl.config.Limit,
		Limit:     rl.config.Limit,
		Remaining: max(rl.config.Limit-count, 0),
		ResetAt:   windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter is an in-process token bucket per key, used when no Redis
// server is configured
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimitConfig
	now      func() time.Time
}

// NewLocalLimiter refills Limit tokens evenly over Window
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
		now:      time.Now,
	}
}

func (l *LocalLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		every := l.config.Window / time.Duration(max(l.config.Limit, 1))
		lim = rate.NewLimiter(rate.Every(every), l.config.Limit)
		l.limiters[key] = lim
	}
	return lim
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()
	lim := l.limiter(key)
	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	resetAt := now
	if tokens < 1 {
		wait := time.Duration((1 - tokens) / float64(lim.Limit()) * float64(time.Second))
		resetAt = now.Add(wait)
	}
	return Decision{
		Allowed:   allowed,
		Limit:     l.config.Limit,
		Remaining: max(int(math.Floor(tokens)), 0),
		ResetAt:   resetAt,
	}, nil
}

// KeyFunc derives the rate limit key of a request
type KeyFunc func(c *gin.Context) string

// ByClientIP keys requests by client address
func ByClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// ByUser keys authenticated requests by user and the rest by client address
func ByUser(c *gin.Context) string {
	if id, ok := CurrentUserID(c); ok {
		return "user:" + id.String()
	}
	return ByClientIP(c)
}

// RateLimit enforces limiter for every request. A limiter failure lets the
// request through.
func RateLimit(limiter Limiter, scope string, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := limiter.Allow(c.Request.Context(), scope+":"+keyFn(c))
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("rate limit check failed", "scope", scope, "error", err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			rateLimitRejects.WithLabelValues(scope).Inc()
			retryAfter := int(math.Ceil(time.Until(d.ResetAt).Seconds()))
			retryAfter = max(retryAfter, 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperr.Response{
				Message: fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", retryAfter),
			})
			return
		}

		c.Next()
	}
}
