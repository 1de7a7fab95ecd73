package domain

import (
	"context"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

/**********************************
*        Surat keluar errors      *
**********************************/
var (
	ErrSuratKeluarNotFound = &DetailedError{
		IDField:         "SURAT_KELUAR_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Surat keluar tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrPengirimNotFound = ErrUserNotFound.
				WithID("PENGIRIM_NOT_FOUND").
				WithError("Pengirim tidak ditemukan")
)

type StatusSuratKeluar string

const (
	StatusSuratKeluarDraft      StatusSuratKeluar = "Draft"
	StatusSuratKeluarDisetujui  StatusSuratKeluar = "Disetujui"
	StatusSuratKeluarDikirim    StatusSuratKeluar = "Dikirim"
	StatusSuratKeluarDiarsipkan StatusSuratKeluar = "Diarsipkan"
)

var StatusSuratKeluarValues = []StatusSuratKeluar{
	StatusSuratKeluarDraft,
	StatusSuratKeluarDisetujui,
	StatusSuratKeluarDikirim,
	StatusSuratKeluarDiarsipkan,
}

func (s StatusSuratKeluar) IsValid() bool {
	return lo.Contains(StatusSuratKeluarValues, s)
}

/**********************************************
*       Surat keluar entities and types       *
**********************************************/

type SuratKeluar struct {
	SQLModel
	NomorSurat     string            `json:"nomorSurat" gorm:"type:varchar(100);uniqueIndex;not null"`
	TanggalSurat   Date              `json:"tanggalSurat" gorm:"not null"`
	Penerima       string            `json:"penerima" gorm:"type:varchar(255);not null"`
	AlamatPenerima string            `json:"alamatPenerima" gorm:"type:text"`
	Perihal        string            `json:"perihal" gorm:"type:text;not null"`
	SifatSurat     SifatSurat        `json:"sifatSurat" gorm:"type:varchar(20);not null;index"`
	PengirimID     string            `json:"pengirimId" gorm:"type:varchar(36);not null;index"`
	Pengirim       *User             `json:"pengirim,omitempty" gorm:"foreignKey:PengirimID;constraint:OnDelete:RESTRICT"`
	FileSurat      string            `json:"fileSurat" gorm:"type:text"`
	FileNama       string            `json:"fileNama" gorm:"type:varchar(255)"`
	Catatan        string            `json:"catatan" gorm:"type:text"`
	Status         StatusSuratKeluar `json:"status" gorm:"type:varchar(20);not null;index"`
	Arsip          []*Arsip          `json:"arsip,omitempty" gorm:"foreignKey:SuratKeluarID;constraint:OnDelete:CASCADE"`
}

func (SuratKeluar) TableName() string {
	return "surat_keluar"
}

func (s *SuratKeluar) Validate() error {
	s.NomorSurat = strings.TrimSpace(s.NomorSurat)
	s.Penerima = strings.TrimSpace(s.Penerima)
	s.AlamatPenerima = strings.TrimSpace(s.AlamatPenerima)
	s.Perihal = strings.TrimSpace(s.Perihal)
	s.PengirimID = strings.TrimSpace(s.PengirimID)
	s.FileSurat = strings.TrimSpace(s.FileSurat)
	s.FileNama = strings.TrimSpace(s.FileNama)
	s.Catatan = strings.TrimSpace(s.Catatan)

	switch {
	case s.NomorSurat == "":
		return MissingField("nomorSurat")
	case s.TanggalSurat.IsZero():
		return MissingField("tanggalSurat")
	case s.Penerima == "":
		return MissingField("penerima")
	case s.Perihal == "":
		return MissingField("perihal")
	case s.SifatSurat == "":
		return MissingField("sifatSurat")
	case s.PengirimID == "":
		return MissingField("pengirimId")
	}
	if !s.SifatSurat.IsValid() {
		return InvalidField("sifatSurat", s.SifatSurat)
	}
	if s.Status == "" {
		s.Status = StatusSuratKeluarDraft
	}
	if !s.Status.IsValid() {
		return InvalidField("status", s.Status)
	}
	return nil
}

type SuratKeluarFilter struct {
	ID            *string            `json:"id" form:"id"`
	IDNe          *string            `json:"id_ne" form:"id_ne"`
	NomorSurat    *string            `json:"nomorSurat" form:"nomorSurat"`
	PengirimID    *string            `json:"pengirimId" form:"pengirimId"`
	Status        *StatusSuratKeluar `json:"status" form:"status"`
	SifatSurat    *SifatSurat        `json:"sifat" form:"sifat"`
	SearchTerm    *string            `json:"search" form:"search"`
	CreatedWithin *DateRange         `json:"-" form:"-"`
}

/****************************************************
*       Surat keluar usecase interfaces and types   *
****************************************************/
type SuratKeluarUsecase interface {
	Create(ctx context.Context, req *SuratKeluarCreateRequest) (*SuratKeluar, error)
	FindByID(ctx context.Context, id string) (*SuratKeluar, error)
	FindPage(ctx context.Context, filter *SuratKeluarFilter, option *FindPageOption) ([]*SuratKeluar, *Pagination, error)
	Update(ctx context.Context, id string, req *SuratKeluarUpdateRequest) (*SuratKeluar, error)
	Delete(ctx context.Context, id string) error
}

type SuratKeluarCreateRequest struct {
	NomorSurat     string            `json:"nomorSurat" binding:"required"`
	TanggalSurat   Date              `json:"tanggalSurat"`
	Penerima       string            `json:"penerima" binding:"required"`
	AlamatPenerima string            `json:"alamatPenerima"`
	Perihal        string            `json:"perihal" binding:"required"`
	SifatSurat     SifatSurat        `json:"sifatSurat" binding:"required,sifat_surat"`
	PengirimID     string            `json:"pengirimId" binding:"required"`
	FileSurat      string            `json:"fileSurat"`
	FileNama       string            `json:"fileNama"`
	Catatan        string            `json:"catatan"`
	Status         StatusSuratKeluar `json:"status" binding:"omitempty,status_surat_keluar"`
}

type SuratKeluarUpdateRequest struct {
	NomorSurat     *string            `json:"nomorSurat,omitempty"`
	TanggalSurat   *Date              `json:"tanggalSurat,omitempty"`
	Penerima       *string            `json:"penerima,omitempty"`
	AlamatPenerima *string            `json:"alamatPenerima,omitempty"`
	Perihal        *string            `json:"perihal,omitempty"`
	SifatSurat     *SifatSurat        `json:"sifatSurat,omitempty" binding:"omitempty,sifat_surat"`
	PengirimID     *string            `json:"pengirimId,omitempty"`
	FileSurat      *string            `json:"fileSurat,omitempty"`
	FileNama       *string            `json:"fileNama,omitempty"`
	Catatan        *string            `json:"catatan,omitempty"`
	Status         *StatusSuratKeluar `json:"status,omitempty" binding:"omitempty,status_surat_keluar"`
}
