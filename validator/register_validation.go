package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/utils"
)

type Registration struct {
	Tag  string
	Func validator.Func
}

var defaultRegistrations = [...]Registration{
	{Tag: PhoneNumber, Func: IsValidPhoneNumber},
	{Tag: NotEmpty, Func: IsNotEmpty},
	{Tag: SifatSurat, Func: IsValidSifatSurat},
	{Tag: StatusSuratMasuk, Func: IsValidStatusSuratMasuk},
	{Tag: StatusSuratKeluar, Func: IsValidStatusSuratKeluar},
	{Tag: StatusDisposisi, Func: IsValidStatusDisposisi},
	{Tag: JenisSurat, Func: IsValidJenisSurat},
	{Tag: StatusArsip, Func: IsValidStatusArsip},
	{Tag: Permission, Func: IsValidPermission},
}

func IsValidPhoneNumber(fl validator.FieldLevel) bool {
	input := fl.Field().String()
	if input == "" {
		return true
	}
	return utils.IsValidPhone(input)
}

func IsNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func IsValidSifatSurat(fl validator.FieldLevel) bool {
	return domain.SifatSurat(fl.Field().String()).IsValid()
}

func IsValidStatusSuratMasuk(fl validator.FieldLevel) bool {
	return domain.StatusSuratMasuk(fl.Field().String()).IsValid()
}

func IsValidStatusSuratKeluar(fl validator.FieldLevel) bool {
	return domain.StatusSuratKeluar(fl.Field().String()).IsValid()
}

func IsValidStatusDisposisi(fl validator.FieldLevel) bool {
	return domain.StatusDisposisi(fl.Field().String()).IsValid()
}

func IsValidJenisSurat(fl validator.FieldLevel) bool {
	return domain.JenisSurat(fl.Field().String()).IsValid()
}

func IsValidStatusArsip(fl validator.FieldLevel) bool {
	return domain.StatusArsip(fl.Field().String()).IsValid()
}

// IsValidPermission accepts only the capability tags known to the system.
func IsValidPermission(fl validator.FieldLevel) bool {
	return lo.Contains(domain.AllPermissions, fl.Field().String())
}
