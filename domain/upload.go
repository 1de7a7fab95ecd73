package domain

import (
	"context"
	"net/http"
)

/****************************
*        Upload errors      *
****************************/

var (
	ErrUploadFileRequired = &DetailedError{
		IDField:         "UPLOAD_FILE_REQUIRED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "File surat wajib diunggah",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrUploadFileTooLarge = &DetailedError{
		IDField:         "UPLOAD_FILE_TOO_LARGE",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Ukuran file melebihi batas",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrUploadInvalidContentType = ErrUnsupportedMediaType.
					WithID("UPLOAD_INVALID_CONTENT_TYPE").
					WithError("Tipe file tidak didukung, gunakan PDF atau gambar")
	ErrUploadFailed = &DetailedError{
		IDField:         "UPLOAD_FAILED",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "Gagal mengunggah file",
		StatusCodeField: http.StatusInternalServerError,
	}
	ErrFileKeyRequired = &DetailedError{
		IDField:         "FILE_KEY_REQUIRED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Parameter key wajib diisi",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrInvalidFileKey = &DetailedError{
		IDField:         "INVALID_FILE_KEY",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Key file tidak valid",
		StatusCodeField: http.StatusBadRequest,
	}
)

// AllowedAttachmentTypes lists the MIME types accepted for letter scans.
var AllowedAttachmentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
}

/***************************************
*       Upload entities and types      *
***************************************/

// Attachment is a stored letter scan. FileSurat and FileNama are copied into the letter record.
type Attachment struct {
	FileSurat string `json:"fileSurat"`
	FileNama  string `json:"fileNama"`
	URL       string `json:"url"`
	Mime      string `json:"mime"`
	Size      int64  `json:"size"`
	Provider  string `json:"provider"`
}

type AttachmentUploadRequest struct {
	Name    string
	Mime    string
	Content []byte
}

/***************************************
*  Upload usecase interfaces and types  *
****************************************/

type AttachmentUsecase interface {
	Upload(ctx context.Context, req *AttachmentUploadRequest) (*Attachment, error)
	// AccessURL returns a URL the client can fetch the stored file from.
	AccessURL(ctx context.Context, key string) (string, error)
}
