package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
)

var errStatsFailed = domain.ErrInternalServerError.
	WithID("DASHBOARD_STATS_FAILED").
	WithError("Gagal mengambil data statistik")

type DashboardHandler struct {
	usecase     domain.DashboardUsecase
	middlewares middleware.Middlewares
}

func NewDashboardHandler(usecase domain.DashboardUsecase, middlewares middleware.Middlewares) *DashboardHandler {
	return &DashboardHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(h.middlewares.Authenticator())

	dashboard.GET("/stats", h.middlewares.RequirePermission(domain.PermDashboardRead), h.Stats)
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	var req domain.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ResponseBadRequest(c, err)
		return
	}

	stats, err := h.usecase.Stats(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		if _, ok := domain.AsDetailedError(err); !ok {
			err = errStatsFailed.WithWrap(err)
		}
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, stats, "")
}
