package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type AuthHandler struct {
	usecase     domain.AuthUsecase
	middlewares middleware.Middlewares
}

func NewAuthHandler(
	usecase domain.AuthUsecase,
	middlewares middleware.Middlewares,
) *AuthHandler {
	return &AuthHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	// Public routes
	auth.POST("/login", h.middlewares.LoginRateLimits(), h.Login)
	auth.POST("/logout", h.Logout)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	resp, err := h.usecase.Login(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, resp, "Login berhasil")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req domain.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	if err := h.usecase.Logout(c.Request.Context(), &req); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Logout berhasil")
}
