package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type UserHandler struct {
	usecase     domain.UserUsecase
	middlewares middleware.Middlewares
}

func NewUserHandler(usecase domain.UserUsecase, middlewares middleware.Middlewares) *UserHandler {
	return &UserHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(h.middlewares.Authenticator())

	users.GET("", h.middlewares.RequirePermission(domain.PermUsersRead), h.List)
	users.POST("", h.middlewares.RequirePermission(domain.PermUsersCreate), h.Create)
	users.GET("/:id", h.middlewares.RequirePermission(domain.PermUsersRead), h.GetByID)
	users.PUT("/:id", h.middlewares.RequirePermission(domain.PermUsersUpdate), h.Update)
	users.DELETE("/:id", h.middlewares.RequirePermission(domain.PermUsersDelete), h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.UserFilter
	)
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	users, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, query.ToFindPageOption("created_at DESC"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponsePage(c, users, pagination)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req domain.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	user, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, user, "User berhasil ditambahkan")
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "")
}

func (h *UserHandler) Update(c *gin.Context) {
	var req domain.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	user, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User berhasil diperbarui")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "User berhasil dihapus")
}
