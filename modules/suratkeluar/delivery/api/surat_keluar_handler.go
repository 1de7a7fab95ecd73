package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type SuratKeluarHandler struct {
	usecase     domain.SuratKeluarUsecase
	middlewares middleware.Middlewares
}

func NewSuratKeluarHandler(usecase domain.SuratKeluarUsecase, middlewares middleware.Middlewares) *SuratKeluarHandler {
	return &SuratKeluarHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *SuratKeluarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	surat := rg.Group("/surat-keluar")
	surat.Use(h.middlewares.Authenticator())

	surat.GET("", h.middlewares.RequirePermission(domain.PermSuratKeluarRead), h.List)
	surat.POST("", h.middlewares.RequirePermission(domain.PermSuratKeluarCreate), h.Create)
	surat.GET("/:id", h.middlewares.RequirePermission(domain.PermSuratKeluarRead), h.GetByID)
	surat.PUT("/:id", h.middlewares.RequirePermission(domain.PermSuratKeluarUpdate), h.Update)
	surat.DELETE("/:id", h.middlewares.RequirePermission(domain.PermSuratKeluarDelete), h.Delete)
}

func (h *SuratKeluarHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.SuratKeluarFilter
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

func (h *SuratKeluarHandler) Create(c *gin.Context) {
	var req domain.SuratKeluarCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	surat, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, surat, "Surat keluar berhasil ditambahkan")
}

func (h *SuratKeluarHandler) GetByID(c *gin.Context) {
	surat, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, surat, "")
}

func (h *SuratKeluarHandler) Update(c *gin.Context) {
	var req domain.SuratKeluarUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	surat, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, surat, "Surat keluar berhasil diperbarui")
}

func (h *SuratKeluarHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Surat keluar berhasil dihapus")
}
