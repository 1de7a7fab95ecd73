package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

type LoggerConfig struct {
	// SkipPaths is an url path array which logs are not written.
	SkipPaths []string

	// EnableRequestBody enables logging of JSON request bodies. Multipart uploads are never logged.
	EnableRequestBody bool

	// MaxBodySize sets the maximum size of request body to log.
	// Optional. Default value is 4096 bytes.
	MaxBodySize int
}

// LoggingMiddleware logs one line per request, at a level picked from the status code.
func (m *middlewares) LoggingMiddleware(config ...LoggerConfig) gin.HandlerFunc {
	var conf LoggerConfig
	if len(config) > 0 {
		conf = config[0]
	}
	if conf.MaxBodySize == 0 {
		conf.MaxBodySize = 4096
	}

	skipPaths := make(map[string]bool, len(conf.SkipPaths))
	for _, path := range conf.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		var requestBody []byte
		if conf.EnableRequestBody && c.Request.Body != nil && c.ContentType() == gin.MIMEJSON {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, int64(conf.MaxBodySize)))
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(requestBody), c.Request.Body))
		}

		c.Next()

		latency := time.Since(start)
		if latency > time.Minute {
			latency = latency.Truncate(time.Second)
		}

		fields := []log.Field{
			log.Method(c.Request.Method),
			log.Path(path),
			log.StatusCode(c.Writer.Status()),
			log.Latency(latency),
			log.String("client_ip", common.GetClientIP(c)),
			log.String("user_agent", c.Request.UserAgent()),
			log.Int("response_size", c.Writer.Size()),
		}
		if len(requestBody) > 0 {
			fields = append(fields, log.String("request_body", string(requestBody)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, log.Strings("errors", c.Errors.Errors()))
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			m.logger.ErrorContext(ctx, "HTTP Request Completed", fields...)
		case status >= http.StatusBadRequest:
			m.logger.WarnContext(ctx, "HTTP Request Completed", fields...)
		default:
			m.logger.InfoContext(ctx, "HTTP Request Completed", fields...)
		}
	}
}

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func (m *middlewares) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(common.RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set(common.RequestIDContextKey, requestID)
		c.Header(common.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

func (m *middlewares) Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		m.logger.ErrorContext(c.Request.Context(), "Panic recovered",
			log.Any("panic", recovered),
			log.Method(c.Request.Method),
			log.Path(c.Request.URL.Path),
		)
		common.ResponseError(c, domain.ErrInternalServerError)
	})
}
