package common

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

// ResponseT is the envelope every endpoint answers with.
type ResponseT[T any] struct {
	Success    bool                   `json:"success"`
	Data       T                      `json:"data,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Pagination *domain.Pagination     `json:"pagination,omitempty"`
	Meta       any                    `json:"meta,omitempty"`
}

var logger Logger

// SetLogger sets the logger for response logging
func SetLogger(l Logger) {
	logger = l
}

func Response[T any](c *gin.Context, status int, body ResponseT[T]) {
	c.AbortWithStatusJSON(status, body)
}

// Success responses
func ResponseOK[T any](c *gin.Context, data T, message string) {
	Response(c, http.StatusOK, ResponseT[T]{Success: true, Data: data, Message: message})
}

func ResponseCreated[T any](c *gin.Context, data T, message string) {
	Response(c, http.StatusCreated, ResponseT[T]{Success: true, Data: data, Message: message})
}

func ResponseMessage(c *gin.Context, message string) {
	Response(c, http.StatusOK, ResponseT[any]{Success: true, Message: message})
}

// ResponsePage answers a list endpoint. A nil slice is sent as [].
func ResponsePage[T any](c *gin.Context, data []T, pagination *domain.Pagination) {
	if data == nil {
		data = []T{}
	}
	Response(c, http.StatusOK, ResponseT[[]T]{Success: true, Data: data, Pagination: pagination})
}

func ResponseWithMeta[T any](c *gin.Context, data T, meta any) {
	Response(c, http.StatusOK, ResponseT[T]{Success: true, Data: data, Meta: meta})
}

func responseDetailedError(c *gin.Context, dErr *domain.DetailedError) {
	Response(c, dErr.StatusCode(), ResponseT[any]{
		Success: false,
		Error:   dErr.Message(),
		Code:    dErr.ID(),
		Details: dErr.Details(),
	})
}

// ResponseBadRequest answers 400. Binding errors are turned into field level messages.
func ResponseBadRequest(c *gin.Context, err error) {
	responseDetailedError(c, BindingError(err))
}

func ResponseUnauthorized(c *gin.Context) {
	responseDetailedError(c, &domain.ErrUnauthorized)
}

func ResponseForbidden(c *gin.Context) {
	responseDetailedError(c, &domain.ErrForbidden)
}

func ResponseNotFound(c *gin.Context, message string) {
	responseDetailedError(c, domain.ErrNotFound.WithError(message))
}

// ResponseError maps err onto the envelope. Anything that is not a DetailedError
// becomes a 500 with a fixed message; the cause is only logged.
func ResponseError(c *gin.Context, err error) {
	dErr, ok := domain.AsDetailedError(err)
	if !ok {
		dErr = domain.ErrInternalServerError.WithWrap(err)
	}

	if dErr.StatusCode() >= http.StatusInternalServerError && logger != nil {
		logger.Error("Request failed",
			"status", dErr.StatusCode(),
			"code", dErr.ID(),
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", log.RequestIDFrom(c.Request.Context()),
		)
	}

	responseDetailedError(c, dErr)
}

func ResponseTooManyRequests(c *gin.Context, retryAt time.Time) {
	var retryAfterSeconds int64
	if !retryAt.IsZero() {
		retryAfterSeconds = int64(time.Until(retryAt).Seconds())
		if retryAfterSeconds > 0 {
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
		}
	}

	Response(c, http.StatusTooManyRequests, ResponseT[map[string]interface{}]{
		Success: false,
		Error:   domain.ErrTooManyRequests.Message(),
		Code:    domain.ErrTooManyRequests.ID(),
		Data: map[string]interface{}{
			"retryAfterSeconds": retryAfterSeconds,
		},
	})
}
