package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
	"github.com/realboxofme/sintas/pkg/upload"
)

type AttachmentHandler struct {
	usecase     domain.AttachmentUsecase
	middlewares middleware.Middlewares
	maxSize     int64
}

func NewAttachmentHandler(usecase domain.AttachmentUsecase, middlewares middleware.Middlewares, maxSize int64) *AttachmentHandler {
	return &AttachmentHandler{
		usecase:     usecase,
		middlewares: middlewares,
		maxSize:     maxSize,
	}
}

func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(h.middlewares.Authenticator())

	files.POST("", h.middlewares.RequirePermission(
		domain.PermSuratMasukCreate, domain.PermSuratMasukUpdate,
		domain.PermSuratKeluarCreate, domain.PermSuratKeluarUpdate,
	), h.Upload)
	files.GET("/url", h.middlewares.RequirePermission(
		domain.PermSuratMasukRead, domain.PermSuratKeluarRead, domain.PermArsipRead,
	), h.URL)
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.ResponseError(c, domain.ErrUploadFileRequired.WithWrap(err))
		return
	}
	// reject before loading the file into memory
	if h.maxSize > 0 && header.Size > h.maxSize {
		common.ResponseError(c, domain.ErrUploadFileTooLarge.WithDetail("maxSize", h.maxSize))
		return
	}

	file, err := upload.ReadFileHeader(header)
	if err != nil {
		common.ResponseError(c, domain.ErrUploadFailed.WithWrap(err))
		return
	}

	attachment, err := h.usecase.Upload(c.Request.Context(), &domain.AttachmentUploadRequest{
		Name:    file.Name,
		Mime:    file.Mime,
		Content: file.Content,
	})
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, attachment, "File berhasil diunggah")
}

func (h *AttachmentHandler) URL(c *gin.Context) {
	url, err := h.usecase.AccessURL(c.Request.Context(), c.Query("key"))
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, gin.H{"url": url}, "")
}
