package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/log"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	WindowSize  time.Duration // Time window for rate limiting (e.g., 1 minute)
	MaxRequests int64         // Maximum requests allowed in the window

	KeyPrefix    string
	KeyGenerator func(*gin.Context) string

	SkipPaths     []string
	SkipCondition func(*gin.Context) bool

	OnLimitReached func(*gin.Context, RateLimitInfo)
}

// RateLimitInfo contains rate limit status information
type RateLimitInfo struct {
	Key        string
	Limit      int64
	Remaining  int64
	RetryAt    time.Time
	WindowSize time.Duration
}

const (
	headerRateLimit = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
)

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		WindowSize:     time.Minute,
		MaxRequests:    100,
		KeyPrefix:      "rate_limit:",
		KeyGenerator:   defaultKeyGenerator,
		SkipPaths:      []string{"/health"},
		OnLimitReached: defaultOnLimitReached,
	}
}

// RateLimit counts requests per key in fixed windows kept in the cache.
func (m *middlewares) RateLimit(config ...RateLimitConfig) gin.HandlerFunc {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = defaultKeyGenerator
	}
	if cfg.OnLimitReached == nil {
		cfg.OnLimitReached = defaultOnLimitReached
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rate_limit:"
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = time.Minute
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 100
	}

	skipPaths := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	onLimit := cfg.OnLimitReached
	cfg.OnLimitReached = func(c *gin.Context, info RateLimitInfo) {
		m.logger.WarnContext(c.Request.Context(), "Rate limit exceeded",
			log.String("key", info.Key),
			log.Int64("limit", info.Limit),
			log.String("client_ip", common.GetClientIP(c)),
			log.Path(c.Request.URL.Path),
		)
		onLimit(c, info)
	}

	return func(c *gin.Context) {
		if !m.rateLimit.Enabled || skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}
		if cfg.SkipCondition != nil && cfg.SkipCondition(c) {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cfg.KeyGenerator(c)
		info, allowed, err := checkRateLimit(c.Request.Context(), m.cache, key, cfg, time.Now())
		if err != nil {
			// fail open
			m.logger.ErrorContext(c.Request.Context(), "Rate limit check failed", log.String("key", key), log.Error(err))
			c.Next()
			return
		}

		c.Header(headerRateLimit, strconv.FormatInt(info.Limit, 10))
		c.Header(headerRemaining, strconv.FormatInt(info.Remaining, 10))

		if !allowed {
			cfg.OnLimitReached(c, info)
			return
		}
		c.Next()
	}
}

// APIRateLimits applies the configured general limit to every API request.
func (m *middlewares) APIRateLimits() gin.HandlerFunc {
	return m.RateLimit(RateLimitConfig{
		WindowSize:   m.rateLimit.Window,
		MaxRequests:  m.rateLimit.MaxRequests,
		KeyPrefix:    "rate_limit:api:",
		KeyGenerator: UserKeyGenerator,
		SkipPaths:    []string{"/health"},
	})
}

// LoginRateLimits applies the stricter login limit, keyed by client IP.
func (m *middlewares) LoginRateLimits() gin.HandlerFunc {
	return m.RateLimit(RateLimitConfig{
		WindowSize:   m.rateLimit.Window,
		MaxRequests:  m.rateLimit.LoginMaxRequests,
		KeyPrefix:    "rate_limit:login:",
		KeyGenerator: defaultKeyGenerator,
	})
}

func checkRateLimit(ctx context.Context, c cache.Client, key string, cfg RateLimitConfig, now time.Time) (RateLimitInfo, bool, error) {
	windowStart := now.Truncate(cfg.WindowSize)
	resetTime := windowStart.Add(cfg.WindowSize)
	windowKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

	current, err := c.Increment(ctx, windowKey, 1, cfg.WindowSize)
	if err != nil {
		return RateLimitInfo{}, true, err
	}

	remaining := cfg.MaxRequests - current
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitInfo{
		Key:        key,
		Limit:      cfg.MaxRequests,
		Remaining:  remaining,
		RetryAt:    resetTime,
		WindowSize: cfg.WindowSize,
	}, current <= cfg.MaxRequests, nil
}

func defaultKeyGenerator(c *gin.Context) string {
	return "ip:" + common.GetClientIP(c)
}

func defaultOnLimitReached(c *gin.Context, info RateLimitInfo) {
	common.ResponseTooManyRequests(c, info.RetryAt)
}

// UserKeyGenerator keys by authenticated user, falling back to client IP.
func UserKeyGenerator(c *gin.Context) string {
	if user := common.GetUserFromCtx(c); user != nil {
		return "user:" + user.ID
	}
	return defaultKeyGenerator(c)
}

// EndpointKeyGenerator keys by route and client IP.
func EndpointKeyGenerator(c *gin.Context) string {
	return fmt.Sprintf("endpoint:%s:%s:%s", c.Request.Method, c.FullPath(), common.GetClientIP(c))
}
