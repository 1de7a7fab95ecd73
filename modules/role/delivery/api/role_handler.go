package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type RoleHandler struct {
	usecase     domain.RoleUsecase
	middlewares middleware.Middlewares
}

func NewRoleHandler(usecase domain.RoleUsecase, middlewares middleware.Middlewares) *RoleHandler {
	return &RoleHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	roles.Use(h.middlewares.Authenticator())

	roles.GET("", h.middlewares.RequirePermission(domain.PermRolesRead), h.List)
	roles.POST("", h.middlewares.RequirePermission(domain.PermRolesCreate), h.Create)
	roles.GET("/:id", h.middlewares.RequirePermission(domain.PermRolesRead), h.GetByID)
	roles.PUT("/:id", h.middlewares.RequirePermission(domain.PermRolesUpdate), h.Update)
	roles.DELETE("/:id", h.middlewares.RequirePermission(domain.PermRolesDelete), h.Delete)
}

func (h *RoleHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.RoleFilter
	)
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	roles, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, query.ToFindPageOption("nama ASC"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponsePage(c, roles, pagination)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req domain.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	role, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, role, "Role berhasil ditambahkan")
}

func (h *RoleHandler) GetByID(c *gin.Context) {
	role, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "")
}

func (h *RoleHandler) Update(c *gin.Context) {
	var req domain.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	role, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "Role berhasil diperbarui")
}

func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Role berhasil dihapus")
}
