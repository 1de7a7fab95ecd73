package domain

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
)

/***************************
*        Arsip errors      *
***************************/
var (
	ErrArsipNotFound = &DetailedError{
		IDField:         "ARSIP_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Arsip tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrArsipSubjectMismatch = &DetailedError{
		IDField:         "ARSIP_SUBJECT_MISMATCH",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Arsip harus merujuk tepat satu surat sesuai jenis surat",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrPengarsipNotFound = ErrUserNotFound.
				WithID("PENGARSIP_NOT_FOUND").
				WithError("User pengarsip tidak ditemukan")
)

type JenisSurat string

const (
	JenisSuratMasuk  JenisSurat = "SuratMasuk"
	JenisSuratKeluar JenisSurat = "SuratKeluar"
)

var JenisSuratValues = []JenisSurat{JenisSuratMasuk, JenisSuratKeluar}

func (j JenisSurat) IsValid() bool {
	return lo.Contains(JenisSuratValues, j)
}

type StatusArsip string

const (
	StatusArsipAktif       StatusArsip = "Aktif"
	StatusArsipInaktif     StatusArsip = "Inaktif"
	StatusArsipDimusnahkan StatusArsip = "Dimusnahkan"
)

var StatusArsipValues = []StatusArsip{StatusArsipAktif, StatusArsipInaktif, StatusArsipDimusnahkan}

func (s StatusArsip) IsValid() bool {
	return lo.Contains(StatusArsipValues, s)
}

/***************************************
*       Arsip entities and types       *
***************************************/

type Arsip struct {
	SQLModel
	JenisSurat       JenisSurat   `json:"jenisSurat" gorm:"type:varchar(20);not null;index"`
	SuratMasukID     *string      `json:"suratMasukId" gorm:"type:varchar(36);index"`
	SuratMasuk       *SuratMasuk  `json:"suratMasuk,omitempty" gorm:"foreignKey:SuratMasukID"`
	SuratKeluarID    *string      `json:"suratKeluarId" gorm:"type:varchar(36);index"`
	SuratKeluar      *SuratKeluar `json:"suratKeluar,omitempty" gorm:"foreignKey:SuratKeluarID"`
	Kategori         string       `json:"kategori" gorm:"type:varchar(100);not null;index"`
	LokasiArsip      string       `json:"lokasiArsip" gorm:"type:varchar(255)"`
	Retensi          int          `json:"retensi" gorm:"not null"`
	StatusArsip      StatusArsip  `json:"statusArsip" gorm:"type:varchar(20);not null;index"`
	DiarsipkanOlehID string       `json:"diarsipkanOlehId" gorm:"type:varchar(36);not null;index"`
	DiarsipkanOleh   *User        `json:"diarsipkanOleh,omitempty" gorm:"foreignKey:DiarsipkanOlehID;constraint:OnDelete:RESTRICT"`
	Catatan          string       `json:"catatan" gorm:"type:text"`
	TanggalArsip     time.Time    `json:"tanggalArsip" gorm:"not null;index"`
}

func (Arsip) TableName() string {
	return "arsip"
}

// SubjectID returns the id of the letter the archive points at.
func (a *Arsip) SubjectID() string {
	switch a.JenisSurat {
	case JenisSuratMasuk:
		return lo.FromPtr(a.SuratMasukID)
	case JenisSuratKeluar:
		return lo.FromPtr(a.SuratKeluarID)
	}
	return ""
}

func (a *Arsip) Validate() error {
	a.Kategori = strings.TrimSpace(a.Kategori)
	a.LokasiArsip = strings.TrimSpace(a.LokasiArsip)
	a.DiarsipkanOlehID = strings.TrimSpace(a.DiarsipkanOlehID)
	a.Catatan = strings.TrimSpace(a.Catatan)
	a.SuratMasukID = lo.EmptyableToPtr(strings.TrimSpace(lo.FromPtr(a.SuratMasukID)))
	a.SuratKeluarID = lo.EmptyableToPtr(strings.TrimSpace(lo.FromPtr(a.SuratKeluarID)))

	switch {
	case a.JenisSurat == "":
		return MissingField("jenisSurat")
	case a.Kategori == "":
		return MissingField("kategori")
	case a.DiarsipkanOlehID == "":
		return MissingField("diarsipkanOlehId")
	}
	if !a.JenisSurat.IsValid() {
		return InvalidField("jenisSurat", a.JenisSurat)
	}

	switch a.JenisSurat {
	case JenisSuratMasuk:
		if a.SuratMasukID == nil {
			return MissingField("suratMasukId")
		}
		if a.SuratKeluarID != nil {
			return ErrArsipSubjectMismatch
		}
	case JenisSuratKeluar:
		if a.SuratKeluarID == nil {
			return MissingField("suratKeluarId")
		}
		if a.SuratMasukID != nil {
			return ErrArsipSubjectMismatch
		}
	}

	if a.Retensi < 0 {
		return InvalidField("retensi", a.Retensi)
	}
	if a.StatusArsip == "" {
		a.StatusArsip = StatusArsipAktif
	}
	if !a.StatusArsip.IsValid() {
		return InvalidField("statusArsip", a.StatusArsip)
	}
	return nil
}

type ArsipFilter struct {
	ID               *string      `json:"id" form:"id"`
	SuratMasukID     *string      `json:"suratMasukId" form:"suratMasukId"`
	SuratKeluarID    *string      `json:"suratKeluarId" form:"suratKeluarId"`
	DiarsipkanOlehID *string      `json:"diarsipkanOlehId" form:"diarsipkanOlehId"`
	JenisSurat       *JenisSurat  `json:"jenisSurat" form:"jenisSurat"`
	Kategori         *string      `json:"kategori" form:"kategori"`
	StatusArsip      *StatusArsip `json:"statusArsip" form:"statusArsip"`
	SearchTerm       *string      `json:"search" form:"search"`
	CreatedWithin    *DateRange   `json:"-" form:"-"`
}

/*********************************************
*       Arsip usecase interfaces and types   *
*********************************************/
type ArsipUsecase interface {
	Create(ctx context.Context, req *ArsipCreateRequest) (*Arsip, error)
	FindByID(ctx context.Context, id string) (*Arsip, error)
	FindPage(ctx context.Context, filter *ArsipFilter, option *FindPageOption) ([]*Arsip, *Pagination, error)
	Update(ctx context.Context, id string, req *ArsipUpdateRequest) (*Arsip, error)
	Delete(ctx context.Context, id string) error
}

type ArsipCreateRequest struct {
	JenisSurat       JenisSurat  `json:"jenisSurat" binding:"required,jenis_surat"`
	SuratMasukID     *string     `json:"suratMasukId"`
	SuratKeluarID    *string     `json:"suratKeluarId"`
	Kategori         string      `json:"kategori" binding:"required"`
	LokasiArsip      string      `json:"lokasiArsip"`
	Retensi          int         `json:"retensi" binding:"gte=0"`
	StatusArsip      StatusArsip `json:"statusArsip" binding:"omitempty,status_arsip"`
	DiarsipkanOlehID string      `json:"diarsipkanOlehId" binding:"required"`
	Catatan          string      `json:"catatan"`
}

type ArsipUpdateRequest struct {
	Kategori    *string      `json:"kategori,omitempty"`
	LokasiArsip *string      `json:"lokasiArsip,omitempty"`
	Retensi     *int         `json:"retensi,omitempty" binding:"omitempty,gte=0"`
	StatusArsip *StatusArsip `json:"statusArsip,omitempty" binding:"omitempty,status_arsip"`
	Catatan     *string      `json:"catatan,omitempty"`
}
