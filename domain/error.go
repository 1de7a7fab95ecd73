package domain

import (
	stderr "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrRecordNotFound keeps usecases independent of the storage library's error values
var ErrRecordNotFound = errors.New("record not found")

// Common errors shared by every module.
// Messages are user facing and written in Indonesian.
var (
	ErrNotFound = DetailedError{
		IDField:         "NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Data tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}

	ErrUnauthorized = DetailedError{
		IDField:         "UNAUTHORIZED",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Anda belum login atau sesi tidak valid",
		StatusCodeField: http.StatusUnauthorized,
	}

	ErrForbidden = DetailedError{
		IDField:         "FORBIDDEN",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "Anda tidak memiliki akses untuk tindakan ini",
		StatusCodeField: http.StatusForbidden,
	}

	ErrTooManyRequests = DetailedError{
		IDField:         "TOO_MANY_REQUESTS",
		StatusDescField: http.StatusText(http.StatusTooManyRequests),
		ErrorField:      "Terlalu banyak permintaan, silakan coba lagi nanti",
		StatusCodeField: http.StatusTooManyRequests,
	}

	ErrInternalServerError = DetailedError{
		IDField:         "INTERNAL_SERVER_ERROR",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "Terjadi kesalahan pada server",
		StatusCodeField: http.StatusInternalServerError,
	}

	ErrBadRequest = DetailedError{
		IDField:         "BAD_REQUEST",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Permintaan tidak valid",
		StatusCodeField: http.StatusBadRequest,
	}

	ErrUnsupportedMediaType = DetailedError{
		IDField:         "UNSUPPORTED_MEDIA_TYPE",
		StatusDescField: http.StatusText(http.StatusUnsupportedMediaType),
		ErrorField:      "Tipe file tidak didukung",
		StatusCodeField: http.StatusUnsupportedMediaType,
	}
)

// Validation errors raised by the entity validators
var (
	ErrMissingRequiredField = &DetailedError{
		IDField:         "MISSING_REQUIRED_FIELD",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Field wajib tidak lengkap",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrInvalidField = &DetailedError{
		IDField:         "INVALID_FIELD",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Nilai field tidak valid",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrDuplicateValue = &DetailedError{
		IDField:         "DUPLICATE_VALUE",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Data dengan nilai ini sudah ada",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrReferenceViolation = &DetailedError{
		IDField:         "REFERENCE_VIOLATION",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Data terkait tidak valid atau masih digunakan",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrDeleteBlocked = &DetailedError{
		IDField:         "DELETE_BLOCKED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Data tidak dapat dihapus karena masih digunakan",
		StatusCodeField: http.StatusBadRequest,
	}
)

// MissingField reports a required attribute that was absent or blank.
func MissingField(field string) *DetailedError {
	return ErrMissingRequiredField.
		WithReasonf("field %s wajib diisi", field).
		WithDetail("field", field)
}

// InvalidField reports an attribute whose value is outside its allowed set or format.
func InvalidField(field string, value any) *DetailedError {
	return ErrInvalidField.
		WithReasonf("nilai %v tidak valid untuk field %s", value, field).
		WithDetail("field", field)
}

type DetailedError struct {
	// Stable identifier of the error, e.g. SURAT_MASUK_NOT_FOUND
	IDField string `json:"id,omitempty"`

	// HTTP status code
	StatusCodeField int `json:"code,omitempty"`

	// HTTP status text
	StatusDescField string `json:"status,omitempty"`

	// Request ID for tracing, usually a UUID
	RIDField string `json:"request,omitempty"`

	// Human readable reason, more specific than the message
	ReasonField string `json:"reason,omitempty"`

	// Debug information, never sent to clients
	DebugField string `json:"debug,omitempty"`

	// The message shown to the caller
	ErrorField string `json:"message"`

	DetailsField map[string]interface{} `json:"details,omitempty"`

	err error
}

func (e DetailedError) Unwrap() error {
	return e.err
}

func (e DetailedError) WithWrap(err error) *DetailedError {
	e.err = err
	return &e
}

func (e DetailedError) WithID(id string) *DetailedError {
	e.IDField = id
	return &e
}

func (e DetailedError) Is(err error) bool {
	switch te := err.(type) {
	case DetailedError:
		return e.IDField == te.IDField && e.StatusCodeField == te.StatusCodeField
	case *DetailedError:
		return e.IDField == te.IDField && e.StatusCodeField == te.StatusCodeField
	default:
		return false
	}
}

func (e DetailedError) Status() string {
	return e.StatusDescField
}

func (e DetailedError) ID() string {
	return e.IDField
}

func (e DetailedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.ErrorField, e.err)
	}
	return e.ErrorField
}

// Message is the caller facing text without the wrapped cause.
func (e DetailedError) Message() string {
	return e.ErrorField
}

func (e DetailedError) Reason() string {
	return e.ReasonField
}

func (e DetailedError) Debug() string {
	return e.DebugField
}

func (e DetailedError) Details() map[string]interface{} {
	return e.DetailsField
}

func (e DetailedError) StatusCode() int {
	return e.StatusCodeField
}

func (e DetailedError) WithReason(reason string) *DetailedError {
	e.ReasonField = reason
	return &e
}

func (e DetailedError) WithReasonf(reason string, args ...interface{}) *DetailedError {
	return e.WithReason(fmt.Sprintf(reason, args...))
}

func (e DetailedError) WithError(message string) *DetailedError {
	e.ErrorField = message
	return &e
}

func (e DetailedError) WithErrorf(message string, args ...interface{}) *DetailedError {
	return e.WithError(fmt.Sprintf(message, args...))
}

func (e DetailedError) WithDebug(debug string) *DetailedError {
	e.DebugField = debug
	return &e
}

func (e DetailedError) WithRequestID(rid string) *DetailedError {
	e.RIDField = rid
	return &e
}

func (e DetailedError) WithDetail(key string, detail interface{}) *DetailedError {
	details := make(map[string]interface{}, len(e.DetailsField)+1)
	for k, v := range e.DetailsField {
		details[k] = v
	}
	details[key] = detail
	e.DetailsField = details
	return &e
}

// AsDetailedError unwraps err until it finds a DetailedError.
func AsDetailedError(err error) (*DetailedError, bool) {
	if err == nil {
		return nil, false
	}
	var dp *DetailedError
	if stderr.As(err, &dp) {
		return dp, true
	}
	var dv DetailedError
	if stderr.As(err, &dv) {
		return &dv, true
	}
	return nil, false
}

// IsRecordNotFound reports whether err is, or wraps, ErrRecordNotFound.
func IsRecordNotFound(err error) bool {
	return stderr.Is(err, ErrRecordNotFound)
}
