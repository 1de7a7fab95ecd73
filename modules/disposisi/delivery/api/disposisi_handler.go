package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type DisposisiHandler struct {
	usecase     domain.DisposisiUsecase
	middlewares middleware.Middlewares
}

func NewDisposisiHandler(usecase domain.DisposisiUsecase, middlewares middleware.Middlewares) *DisposisiHandler {
	return &DisposisiHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *DisposisiHandler) RegisterRoutes(rg *gin.RouterGroup) {
	disposisi := rg.Group("/disposisi")
	disposisi.Use(h.middlewares.Authenticator())

	disposisi.GET("", h.middlewares.RequirePermission(domain.PermDisposisiRead), h.List)
	disposisi.POST("", h.middlewares.RequirePermission(domain.PermDisposisiCreate), h.Create)
	disposisi.GET("/:id", h.middlewares.RequirePermission(domain.PermDisposisiRead), h.GetByID)
	disposisi.PUT("/:id", h.middlewares.RequirePermission(domain.PermDisposisiUpdate), h.Update)
	disposisi.DELETE("/:id", h.middlewares.RequirePermission(domain.PermDisposisiDelete), h.Delete)
}

func (h *DisposisiHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.DisposisiFilter
	)
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	rows, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, query.ToFindPageOption("created_at DESC"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponsePage(c, rows, pagination)
}

func (h *DisposisiHandler) Create(c *gin.Context) {
	var req domain.DisposisiCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	disposisi, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, disposisi, "Disposisi berhasil ditambahkan")
}

func (h *DisposisiHandler) GetByID(c *gin.Context) {
	disposisi, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, disposisi, "")
}

func (h *DisposisiHandler) Update(c *gin.Context) {
	var req domain.DisposisiUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	disposisi, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, disposisi, "Disposisi berhasil diperbarui")
}

func (h *DisposisiHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Disposisi berhasil dihapus")
}
