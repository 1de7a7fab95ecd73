package common

import (
	"encoding/json"
	stderr "errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/realboxofme/sintas/domain"
	appvalidator "github.com/realboxofme/sintas/validator"
)

// BindingError converts an error from gin binding into a client facing DetailedError.
// A failed required check becomes a missing field error; other rule failures carry
// the translated message.
func BindingError(err error) *domain.DetailedError {
	if err == nil {
		return &domain.ErrBadRequest
	}
	if dErr, ok := domain.AsDetailedError(err); ok {
		return dErr
	}

	var verrs validator.ValidationErrors
	if stderr.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == appvalidator.Required {
			return domain.MissingField(fe.Field())
		}
		return domain.ErrInvalidField.
			WithError(appvalidator.Translate(fe)).
			WithDetail("field", fe.Field())
	}

	var typeErr *json.UnmarshalTypeError
	if stderr.As(err, &typeErr) {
		return domain.InvalidField(typeErr.Field, typeErr.Value)
	}

	if stderr.Is(err, io.EOF) {
		return domain.ErrBadRequest.WithError("Body permintaan kosong")
	}

	var syntaxErr *json.SyntaxError
	if stderr.As(err, &syntaxErr) {
		return domain.ErrBadRequest.WithError("Format JSON tidak valid")
	}

	return domain.ErrBadRequest.WithReason(strings.TrimSpace(err.Error()))
}
