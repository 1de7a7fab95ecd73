package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type ArsipHandler struct {
	usecase     domain.ArsipUsecase
	middlewares middleware.Middlewares
}

func NewArsipHandler(usecase domain.ArsipUsecase, middlewares middleware.Middlewares) *ArsipHandler {
	return &ArsipHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *ArsipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	arsip := rg.Group("/arsip")
	arsip.Use(h.middlewares.Authenticator())

	arsip.GET("", h.middlewares.RequirePermission(domain.PermArsipRead), h.List)
	arsip.POST("", h.middlewares.RequirePermission(domain.PermArsipCreate), h.Create)
	arsip.GET("/:id", h.middlewares.RequirePermission(domain.PermArsipRead), h.GetByID)
	arsip.PUT("/:id", h.middlewares.RequirePermission(domain.PermArsipUpdate), h.Update)
	arsip.DELETE("/:id", h.middlewares.RequirePermission(domain.PermArsipDelete), h.Delete)
}

func (h *ArsipHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.ArsipFilter
	)
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	rows, pagination, err := h.usecase.FindPage(c.Request.Context(), &filter, query.ToFindPageOption("tanggal_arsip DESC"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponsePage(c, rows, pagination)
}

func (h *ArsipHandler) Create(c *gin.Context) {
	var req domain.ArsipCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	arsip, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, arsip, "Arsip berhasil ditambahkan")
}

func (h *ArsipHandler) GetByID(c *gin.Context) {
	arsip, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, arsip, "")
}

func (h *ArsipHandler) Update(c *gin.Context) {
	var req domain.ArsipUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	arsip, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, arsip, "Arsip berhasil diperbarui")
}

func (h *ArsipHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Arsip berhasil dihapus")
}
