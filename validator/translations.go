package validator

import (
	"log"

	idLocale "github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
)

const DefaultLocale = "id"

func (v *validatorImpl) initTranslator() {
	id := idLocale.New()
	v.uni = ut.New(id, id)

	trans, _ := v.uni.GetTranslator(DefaultLocale)
	v.translator = trans

	if err := id_translations.RegisterDefaultTranslations(v.validate, trans); err != nil {
		log.Printf("Failed to register Indonesian translations: %v", err)
	}
}

func (v *validatorImpl) registerCustomTranslations() {
	trans, ok := v.uni.GetTranslator(DefaultLocale)
	if !ok {
		panic("Translator for 'id' not found")
	}

	translations := map[string]string{
		PhoneNumber:       "{0} harus berupa nomor telepon yang valid",
		NotEmpty:          "{0} tidak boleh kosong",
		SifatSurat:        "{0} harus salah satu dari Biasa, Penting, Rahasia",
		StatusSuratMasuk:  "{0} harus salah satu dari Diterima, Diproses, Selesai, Diarsipkan",
		StatusSuratKeluar: "{0} harus salah satu dari Draft, Disetujui, Dikirim, Diarsipkan",
		StatusDisposisi:   "{0} harus salah satu dari Pending, Selesai",
		JenisSurat:        "{0} harus salah satu dari SuratMasuk, SuratKeluar",
		StatusArsip:       "{0} harus salah satu dari Aktif, Inaktif, Dimusnahkan",
		Permission:        "{0} berisi permission yang tidak dikenal",
	}

	for tag, message := range translations {
		tag, message := tag, message
		err := v.validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			log.Printf("Failed to register translation for %s: %v", tag, err)
		}
	}
}

// Translate renders a field error in Indonesian using the default validator.
func Translate(fe validator.FieldError) string {
	trans, err := DefaultValidator().GetTranslator(DefaultLocale)
	if err != nil {
		return fe.Error()
	}
	return fe.Translate(trans)
}
