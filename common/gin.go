package common

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/domain"
)

const (
	UserContextKey      = "user"
	RequestIDContextKey = "request_id"
	RequestIDHeader     = "X-Request-ID"
)

// GetClientIP gets the real client IP address
func GetClientIP(c *gin.Context) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip != "" && net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	remoteIP, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return remoteIP
}

func SetUserToCtx(c *gin.Context, user *domain.User) {
	c.Set(UserContextKey, user)
}

// GetUserFromCtx returns the authenticated user, or nil when auth is off.
func GetUserFromCtx(c *gin.Context) *domain.User {
	if v, ok := c.Get(UserContextKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}
