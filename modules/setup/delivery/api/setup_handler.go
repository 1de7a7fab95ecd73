package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
)

var (
	errStatusFailed = domain.ErrInternalServerError.WithID("SETUP_STATUS_FAILED").WithError("Failed to check initialization status")
	errInitFailed   = domain.ErrInternalServerError.WithID("SETUP_FAILED").WithError("Failed to initialize data")
)

// SetupHandler serves the first-run endpoints. They stay public so an empty installation can be bootstrapped.
type SetupHandler struct {
	usecase domain.SetupUsecase
}

func NewSetupHandler(usecase domain.SetupUsecase) *SetupHandler {
	return &SetupHandler{usecase: usecase}
}

func (h *SetupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/init", h.Status)
	rg.POST("/init", h.Initialize)
}

func (h *SetupHandler) Status(c *gin.Context) {
	status, err := h.usecase.Status(c.Request.Context())
	if err != nil {
		common.ResponseError(c, errStatusFailed.WithWrap(err))
		return
	}
	common.ResponseOK(c, status, "")
}

func (h *SetupHandler) Initialize(c *gin.Context) {
	result, err := h.usecase.Initialize(c.Request.Context())
	if err != nil {
		if _, ok := domain.AsDetailedError(err); !ok {
			err = errInitFailed.WithWrap(err)
		}
		common.ResponseError(c, err)
		return
	}
	if result.AlreadyExist {
		common.ResponseOK(c, result, "Roles already initialized")
		return
	}
	common.ResponseOK(c, result, "Default roles and admin user created successfully")
}
