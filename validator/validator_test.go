package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/realboxofme/sintas/domain"
)

type letterInput struct {
	Sifat   domain.SifatSurat        `json:"sifatSurat" binding:"required,sifat_surat"`
	Status  *domain.StatusSuratMasuk `json:"status" binding:"omitempty,status_surat_masuk"`
	Telepon string                   `json:"telepon" binding:"omitempty,phone_number"`
	Jenis   domain.JenisSurat        `json:"jenisSurat" binding:"omitempty,jenis_surat"`
	Perms   []string                 `json:"permissions" binding:"omitempty,dive,permission"`
}

func TestValidateStruct(t *testing.T) {
	selesai := domain.StatusSuratMasukSelesai
	unknown := domain.StatusSuratMasuk("Hilang")

	tests := []struct {
		name      string
		input     letterInput
		wantField string
		wantTag   string
	}{
		{
			name: "valid",
			input: letterInput{
				Sifat:   domain.SifatSuratPenting,
				Status:  &selesai,
				Telepon: "081234567890",
				Jenis:   domain.JenisSuratKeluar,
				Perms:   []string{domain.PermArsipRead},
			},
		},
		{
			name:      "missing sifat",
			input:     letterInput{},
			wantField: "sifatSurat",
			wantTag:   Required,
		},
		{
			name:      "unknown sifat",
			input:     letterInput{Sifat: "Biasa Saja"},
			wantField: "sifatSurat",
			wantTag:   SifatSurat,
		},
		{
			name:      "unknown status pointer",
			input:     letterInput{Sifat: domain.SifatSuratBiasa, Status: &unknown},
			wantField: "status",
			wantTag:   StatusSuratMasuk,
		},
		{
			name:      "bad phone",
			input:     letterInput{Sifat: domain.SifatSuratBiasa, Telepon: "12"},
			wantField: "telepon",
			wantTag:   PhoneNumber,
		},
		{
			name:      "unknown permission",
			input:     letterInput{Sifat: domain.SifatSuratBiasa, Perms: []string{"surat:fly"}},
			wantField: "permissions[0]",
			wantTag:   Permission,
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(&tt.input)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v", err)
				}
				return
			}

			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("ValidateStruct() error = %v, want ValidationErrors", err)
			}
			if verrs[0].Field() != tt.wantField || verrs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", verrs[0].Field(), verrs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	err := DefaultValidator().ValidateStruct(&letterInput{Sifat: "Kilat"})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	msg := Translate(verrs[0])
	if !strings.Contains(msg, "sifatSurat") || !strings.Contains(msg, "Rahasia") {
		t.Errorf("Translate() = %q", msg)
	}
}
