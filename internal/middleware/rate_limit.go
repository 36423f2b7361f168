package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Name labels rejections in metrics and logs
	Name string
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter counts a request for key and decides whether it may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RejectionRecorder is told about every rejected request
type RejectionRecorder interface {
	RecordRateLimited(limiter string)
}

// RedisLimiter implements fixed windows shared by every process using the same redis
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a fixed window limiter on redisClient
func NewRedisLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{redis: redisClient, config: config, now: time.Now}
}

// Allow increments the caller's counter for the current window
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
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= rl.config.Limit,
		Remaining: remaining,
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter keeps a token bucket per key in process memory. It refills
// continuously, so it approximates the fixed window rather than matching it.
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	config  RateLimitConfig
	now     func() time.Time
}

// NewLocalLimiter creates an in-process limiter
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*rate.Limiter),
		config:  config,
		now:     time.Now,
	}
}

func (l *LocalLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		b = rate.NewLimiter(rate.Every(every), l.config.Limit)
		l.buckets[key] = b
	}
	return b
}

// Allow takes a token from key's bucket
func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()
	b := l.bucket(key)
	allowed := b.AllowN(now, 1)

	tokens := b.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}
	// Time until the bucket is full again
	missing := float64(l.config.Limit) - tokens
	reset := now.Add(time.Duration(missing * float64(time.Second) / float64(b.Limit())))
	return Decision{Allowed: allowed, Remaining: remaining, Reset: reset}, nil
}

// RateLimiter enforces a limit per authenticated user. It uses redis when
// available and falls back to the local limiter when redis fails.
type RateLimiter struct {
	primary  Limiter
	fallback Limiter
	config   RateLimitConfig
	recorder RejectionRecorder
	log      *zap.Logger
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		fallback: NewLocalLimiter(config),
		config:   config,
		log:      log,
	}
	if redisClient != nil {
		rl.primary = NewRedisLimiter(redisClient, config)
	}
	return rl
}

// WithRecorder reports rejections to rec
func (rl *RateLimiter) WithRecorder(rec RejectionRecorder) *RateLimiter {
	rl.recorder = rec
	return rl
}

// Allow checks key against redis, or the local limiter when redis is absent or failing
func (rl *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if rl.primary != nil {
		d, err := rl.primary.Allow(ctx, key)
		if err == nil {
			return d, nil
		}
		rl.log.Warn("rate limit check failed, using local limiter",
			zap.String("limiter", rl.config.Name), zap.Error(err))
	}
	return rl.fallback.Allow(ctx, key)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		d, err := rl.Allow(c.Request.Context(), userID)
		if err != nil {
			// Log error but don't fail the request
			rl.log.Error("rate limit check failed", zap.String("limiter", rl.config.Name), zap.Error(err))
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

		if !d.Allowed {
			if rl.recorder != nil {
				rl.recorder.RecordRateLimited(rl.config.Name)
			}
			retry := int(time.Until(d.Reset).Seconds())
			if retry < 0 {
				retry = 0
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"rate_limit_remaining": d.Remaining,
				"rate_limit_reset":     d.Reset.Unix(),
				"retry_after":          retry,
			})
			return
		}

		c.Next()
	}
}

// NewRecipeCreationRateLimiter limits how many recipes a user may create per window
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Name:      "recipe_creation",
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_creation",
	}, log)
}
