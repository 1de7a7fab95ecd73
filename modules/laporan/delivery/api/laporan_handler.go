package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

var errGenerateFailed = domain.ErrInternalServerError.
	WithID("LAPORAN_GENERATE_FAILED").
	WithError("Gagal generate laporan")

type LaporanHandler struct {
	usecase     domain.LaporanUsecase
	middlewares middleware.Middlewares
	loc         *time.Location
}

func NewLaporanHandler(usecase domain.LaporanUsecase, middlewares middleware.Middlewares, loc *time.Location) *LaporanHandler {
	return &LaporanHandler{
		usecase:     usecase,
		middlewares: middlewares,
		loc:         loc,
	}
}

func (h *LaporanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	laporan := rg.Group("/laporan")
	laporan.Use(h.middlewares.Authenticator())

	laporan.GET("/generate", h.middlewares.RequirePermission(domain.PermLaporanGenerate), h.Generate)
}

func (h *LaporanHandler) Generate(c *gin.Context) {
	var req domain.LaporanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}
	rng, err := req.Range(h.loc)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	laporan, err := h.usecase.Generate(c.Request.Context(), domain.ParseJenisLaporan(req.Jenis), rng)
	if err != nil {
		if _, ok := domain.AsDetailedError(err); !ok {
			err = errGenerateFailed.WithWrap(err)
		}
		common.ResponseError(c, err)
		return
	}
	common.ResponseWithMeta(c, laporan.Data, laporan.Meta)
}
