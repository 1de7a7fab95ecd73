package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/pkg/log"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig allows every origin. Credentials are only allowed for listed origins.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Cache-Control",
			"X-Requested-With",
			common.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			common.RequestIDHeader,
			"Retry-After",
		},
		MaxAge: 86400, // 24 hours
	}
}

// CORS returns a middleware that handles CORS. Empty fields of config take the defaults.
func (m *middlewares) CORS(config ...CORSConfig) gin.HandlerFunc {
	cfg := DefaultCORSConfig()
	if len(config) > 0 {
		if len(config[0].AllowOrigins) > 0 {
			cfg.AllowOrigins = config[0].AllowOrigins
			cfg.AllowCredentials = config[0].AllowCredentials
		}
		if len(config[0].AllowMethods) > 0 {
			cfg.AllowMethods = config[0].AllowMethods
		}
		if len(config[0].AllowHeaders) > 0 {
			cfg.AllowHeaders = config[0].AllowHeaders
		}
		if len(config[0].ExposeHeaders) > 0 {
			cfg.ExposeHeaders = config[0].ExposeHeaders
		}
		if config[0].MaxAge > 0 {
			cfg.MaxAge = config[0].MaxAge
		}
	}
	allowAll := lo.Contains(cfg.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(cfg.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		case origin != "":
			m.logger.Debug("CORS request from disallowed origin",
				log.String("origin", origin),
				log.Path(c.Request.URL.Path),
			)
		}

		c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
		c.Header("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
		c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
