package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

type SuratMasukHandler struct {
	usecase     domain.SuratMasukUsecase
	middlewares middleware.Middlewares
}

func NewSuratMasukHandler(usecase domain.SuratMasukUsecase, middlewares middleware.Middlewares) *SuratMasukHandler {
	return &SuratMasukHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *SuratMasukHandler) RegisterRoutes(rg *gin.RouterGroup) {
	surat := rg.Group("/surat-masuk")
	surat.Use(h.middlewares.Authenticator())

	surat.GET("", h.middlewares.RequirePermission(domain.PermSuratMasukRead), h.List)
	surat.POST("", h.middlewares.RequirePermission(domain.PermSuratMasukCreate), h.Create)
	surat.GET("/:id", h.middlewares.RequirePermission(domain.PermSuratMasukRead), h.GetByID)
	surat.PUT("/:id", h.middlewares.RequirePermission(domain.PermSuratMasukUpdate), h.Update)
	surat.DELETE("/:id", h.middlewares.RequirePermission(domain.PermSuratMasukDelete), h.Delete)
}

func (h *SuratMasukHandler) List(c *gin.Context) {
	var (
		query  domain.PageQuery
		filter domain.SuratMasukFilter
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

func (h *SuratMasukHandler) Create(c *gin.Context) {
	var req domain.SuratMasukCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	surat, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, surat, "Surat masuk berhasil ditambahkan")
}

func (h *SuratMasukHandler) GetByID(c *gin.Context) {
	surat, err := h.usecase.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, surat, "")
}

func (h *SuratMasukHandler) Update(c *gin.Context) {
	var req domain.SuratMasukUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	surat, err := h.usecase.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, surat, "Surat masuk berhasil diperbarui")
}

func (h *SuratMasukHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseMessage(c, "Surat masuk berhasil dihapus")
}
