package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/log"
)

// Middlewares defines all available middleware methods
type Middlewares interface {
	// Rate limiting middlewares
	RateLimit(config ...RateLimitConfig) gin.HandlerFunc
	APIRateLimits() gin.HandlerFunc
	LoginRateLimits() gin.HandlerFunc

	// Logging middlewares
	LoggingMiddleware(config ...LoggerConfig) gin.HandlerFunc
	RequestIDMiddleware() gin.HandlerFunc
	Recovery() gin.HandlerFunc

	CORS(config ...CORSConfig) gin.HandlerFunc

	// Authentication middlewares. Both pass every request through when auth is not required.
	Authenticator() gin.HandlerFunc
	RequirePermission(tags ...string) gin.HandlerFunc
}

// TokenAuthenticator resolves a bearer token to an active user with its role.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

type RateLimitSettings struct {
	Enabled          bool
	Window           time.Duration
	MaxRequests      int64
	LoginMaxRequests int64
}

// Dependencies holds all dependencies needed by middlewares
type Dependencies struct {
	Cache       cache.Client
	Logger      log.Logger
	Auth        TokenAuthenticator
	RequireAuth bool
	RateLimit   RateLimitSettings
}

func NewMiddlewares(deps Dependencies) Middlewares {
	return &middlewares{
		cache:       deps.Cache,
		logger:      deps.Logger,
		auth:        deps.Auth,
		requireAuth: deps.RequireAuth,
		rateLimit:   deps.RateLimit,
	}
}

type middlewares struct {
	cache       cache.Client
	logger      log.Logger
	auth        TokenAuthenticator
	requireAuth bool
	rateLimit   RateLimitSettings
}
