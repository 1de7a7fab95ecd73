package domain

import (
	"context"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

/*********************************
*        Surat masuk errors      *
*********************************/
var (
	ErrSuratMasukNotFound = &DetailedError{
		IDField:         "SURAT_MASUK_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Surat masuk tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrNomorSuratAlreadyExists = &DetailedError{
		IDField:         "NOMOR_SURAT_ALREADY_EXISTS",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Nomor surat sudah ada",
		StatusCodeField: http.StatusBadRequest,
		DetailsField:    map[string]interface{}{"field": "nomorSurat"},
	}
	ErrPenerimaNotFound = ErrUserNotFound.
				WithID("PENERIMA_NOT_FOUND").
				WithError("Penerima tidak ditemukan")
)

/********************************************
*       Shared letter enums and values      *
********************************************/

type SifatSurat string

const (
	SifatSuratBiasa   SifatSurat = "Biasa"
	SifatSuratPenting SifatSurat = "Penting"
	SifatSuratRahasia SifatSurat = "Rahasia"
)

var SifatSuratValues = []SifatSurat{SifatSuratBiasa, SifatSuratPenting, SifatSuratRahasia}

func (s SifatSurat) IsValid() bool {
	return lo.Contains(SifatSuratValues, s)
}

type StatusSuratMasuk string

const (
	StatusSuratMasukDiterima   StatusSuratMasuk = "Diterima"
	StatusSuratMasukDiproses   StatusSuratMasuk = "Diproses"
	StatusSuratMasukSelesai    StatusSuratMasuk = "Selesai"
	StatusSuratMasukDiarsipkan StatusSuratMasuk = "Diarsipkan"
)

var StatusSuratMasukValues = []StatusSuratMasuk{
	StatusSuratMasukDiterima,
	StatusSuratMasukDiproses,
	StatusSuratMasukSelesai,
	StatusSuratMasukDiarsipkan,
}

func (s StatusSuratMasuk) IsValid() bool {
	return lo.Contains(StatusSuratMasukValues, s)
}

/*********************************************
*       Surat masuk entities and types       *
*********************************************/

type SuratMasuk struct {
	SQLModel
	NomorSurat   string           `json:"nomorSurat" gorm:"type:varchar(100);uniqueIndex;not null"`
	TanggalSurat Date             `json:"tanggalSurat" gorm:"not null"`
	Pengirim     string           `json:"pengirim" gorm:"type:varchar(255);not null"`
	Perihal      string           `json:"perihal" gorm:"type:text;not null"`
	SifatSurat   SifatSurat       `json:"sifatSurat" gorm:"type:varchar(20);not null;index"`
	PenerimaID   string           `json:"penerimaId" gorm:"type:varchar(36);not null;index"`
	Penerima     *User            `json:"penerima,omitempty" gorm:"foreignKey:PenerimaID;constraint:OnDelete:RESTRICT"`
	FileSurat    string           `json:"fileSurat" gorm:"type:text"`
	FileNama     string           `json:"fileNama" gorm:"type:varchar(255)"`
	Catatan      string           `json:"catatan" gorm:"type:text"`
	Status       StatusSuratMasuk `json:"status" gorm:"type:varchar(20);not null;index"`
	Disposisi    []*Disposisi     `json:"disposisi,omitempty" gorm:"foreignKey:SuratMasukID;constraint:OnDelete:CASCADE"`
	Arsip        []*Arsip         `json:"arsip,omitempty" gorm:"foreignKey:SuratMasukID;constraint:OnDelete:CASCADE"`
}

func (SuratMasuk) TableName() string {
	return "surat_masuk"
}

func (s *SuratMasuk) Validate() error {
	s.NomorSurat = strings.TrimSpace(s.NomorSurat)
	s.Pengirim = strings.TrimSpace(s.Pengirim)
	s.Perihal = strings.TrimSpace(s.Perihal)
	s.PenerimaID = strings.TrimSpace(s.PenerimaID)
	s.FileSurat = strings.TrimSpace(s.FileSurat)
	s.FileNama = strings.TrimSpace(s.FileNama)
	s.Catatan = strings.TrimSpace(s.Catatan)

	switch {
	case s.NomorSurat == "":
		return MissingField("nomorSurat")
	case s.TanggalSurat.IsZero():
		return MissingField("tanggalSurat")
	case s.Pengirim == "":
		return MissingField("pengirim")
	case s.Perihal == "":
		return MissingField("perihal")
	case s.SifatSurat == "":
		return MissingField("sifatSurat")
	case s.PenerimaID == "":
		return MissingField("penerimaId")
	}
	if !s.SifatSurat.IsValid() {
		return InvalidField("sifatSurat", s.SifatSurat)
	}
	if s.Status == "" {
		s.Status = StatusSuratMasukDiterima
	}
	if !s.Status.IsValid() {
		return InvalidField("status", s.Status)
	}
	return nil
}

type SuratMasukFilter struct {
	ID            *string           `json:"id" form:"id"`
	IDNe          *string           `json:"id_ne" form:"id_ne"`
	NomorSurat    *string           `json:"nomorSurat" form:"nomorSurat"`
	PenerimaID    *string           `json:"penerimaId" form:"penerimaId"`
	Status        *StatusSuratMasuk `json:"status" form:"status"`
	SifatSurat    *SifatSurat       `json:"sifat" form:"sifat"`
	SearchTerm    *string           `json:"search" form:"search"`
	CreatedWithin *DateRange        `json:"-" form:"-"`
}

/***************************************************
*       Surat masuk usecase interfaces and types   *
***************************************************/
type SuratMasukUsecase interface {
	Create(ctx context.Context, req *SuratMasukCreateRequest) (*SuratMasuk, error)
	FindByID(ctx context.Context, id string) (*SuratMasuk, error)
	FindPage(ctx context.Context, filter *SuratMasukFilter, option *FindPageOption) ([]*SuratMasuk, *Pagination, error)
	Update(ctx context.Context, id string, req *SuratMasukUpdateRequest) (*SuratMasuk, error)
	Delete(ctx context.Context, id string) error
}

type SuratMasukCreateRequest struct {
	NomorSurat   string     `json:"nomorSurat" binding:"required"`
	TanggalSurat Date       `json:"tanggalSurat"`
	Pengirim     string     `json:"pengirim" binding:"required"`
	Perihal      string     `json:"perihal" binding:"required"`
	SifatSurat   SifatSurat `json:"sifatSurat" binding:"required,sifat_surat"`
	PenerimaID   string     `json:"penerimaId" binding:"required"`
	FileSurat    string     `json:"fileSurat"`
	FileNama     string     `json:"fileNama"`
	Catatan      string     `json:"catatan"`
}

type SuratMasukUpdateRequest struct {
	NomorSurat   *string           `json:"nomorSurat,omitempty"`
	TanggalSurat *Date             `json:"tanggalSurat,omitempty"`
	Pengirim     *string           `json:"pengirim,omitempty"`
	Perihal      *string           `json:"perihal,omitempty"`
	SifatSurat   *SifatSurat       `json:"sifatSurat,omitempty" binding:"omitempty,sifat_surat"`
	PenerimaID   *string           `json:"penerimaId,omitempty"`
	FileSurat    *string           `json:"fileSurat,omitempty"`
	FileNama     *string           `json:"fileNama,omitempty"`
	Catatan      *string           `json:"catatan,omitempty"`
	Status       *StatusSuratMasuk `json:"status,omitempty" binding:"omitempty,status_surat_masuk"`
}
