package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func (m *middlewares) Authenticator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.requireAuth {
			c.Next()
			return
		}

		token := extractBearerToken(c)
		if token == "" {
			common.ResponseUnauthorized(c)
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			common.ResponseError(c, err)
			return
		}

		common.SetUserToCtx(c, user)
		c.Request = c.Request.WithContext(log.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// RequirePermission lets the request through when the user's role carries any of tags.
func (m *middlewares) RequirePermission(tags ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.requireAuth {
			c.Next()
			return
		}

		user := common.GetUserFromCtx(c)
		if user == nil {
			common.ResponseUnauthorized(c)
			return
		}

		for _, tag := range tags {
			if user.HasPermission(tag) {
				c.Next()
				return
			}
		}

		m.logger.WarnContext(c.Request.Context(), "Permission denied",
			log.Strings("required", tags),
			log.String("role_id", user.RoleID),
			log.Path(c.Request.URL.Path),
		)
		common.ResponseError(c, domain.ErrForbidden.WithDetail("required", tags))
	}
}
