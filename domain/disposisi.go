package domain

import (
	"context"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

/*******************************
*        Disposisi errors      *
*******************************/
var (
	ErrDisposisiNotFound = &DetailedError{
		IDField:         "DISPOSISI_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Disposisi tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrDariUserNotFound = ErrUserNotFound.
				WithID("DARI_USER_NOT_FOUND").
				WithError("User pemberi disposisi tidak ditemukan")
	ErrKeUserNotFound = ErrUserNotFound.
				WithID("KE_USER_NOT_FOUND").
				WithError("User penerima disposisi tidak ditemukan")
)

type StatusDisposisi string

const (
	StatusDisposisiPending StatusDisposisi = "Pending"
	StatusDisposisiSelesai StatusDisposisi = "Selesai"
)

var StatusDisposisiValues = []StatusDisposisi{StatusDisposisiPending, StatusDisposisiSelesai}

func (s StatusDisposisi) IsValid() bool {
	return lo.Contains(StatusDisposisiValues, s)
}

/*******************************************
*       Disposisi entities and types       *
*******************************************/

type Disposisi struct {
	SQLModel
	SuratMasukID string          `json:"suratMasukId" gorm:"type:varchar(36);not null;index"`
	SuratMasuk   *SuratMasuk     `json:"suratMasuk,omitempty" gorm:"foreignKey:SuratMasukID"`
	DariID       string          `json:"dariId" gorm:"type:varchar(36);not null;index"`
	Dari         *User           `json:"dari,omitempty" gorm:"foreignKey:DariID;constraint:OnDelete:RESTRICT"`
	KeID         string          `json:"keId" gorm:"type:varchar(36);not null;index"`
	Ke           *User           `json:"ke,omitempty" gorm:"foreignKey:KeID;constraint:OnDelete:RESTRICT"`
	Instruksi    string          `json:"instruksi" gorm:"type:text;not null"`
	Catatan      string          `json:"catatan" gorm:"type:text"`
	Status       StatusDisposisi `json:"status" gorm:"type:varchar(20);not null;index"`
}

func (Disposisi) TableName() string {
	return "disposisi"
}

func (d *Disposisi) Validate() error {
	d.SuratMasukID = strings.TrimSpace(d.SuratMasukID)
	d.DariID = strings.TrimSpace(d.DariID)
	d.KeID = strings.TrimSpace(d.KeID)
	d.Instruksi = strings.TrimSpace(d.Instruksi)
	d.Catatan = strings.TrimSpace(d.Catatan)

	switch {
	case d.SuratMasukID == "":
		return MissingField("suratMasukId")
	case d.DariID == "":
		return MissingField("dariId")
	case d.KeID == "":
		return MissingField("keId")
	case d.Instruksi == "":
		return MissingField("instruksi")
	}
	if d.Status == "" {
		d.Status = StatusDisposisiPending
	}
	if !d.Status.IsValid() {
		return InvalidField("status", d.Status)
	}
	return nil
}

type DisposisiFilter struct {
	ID            *string          `json:"id" form:"id"`
	IDNe          *string          `json:"id_ne" form:"id_ne"`
	SuratMasukID  *string          `json:"suratMasukId" form:"suratMasukId"`
	DariID        *string          `json:"dariId" form:"dariId"`
	KeID          *string          `json:"keId" form:"keId"`
	UserID        *string          `json:"-" form:"-"`
	Status        *StatusDisposisi `json:"status" form:"status"`
	CreatedWithin *DateRange       `json:"-" form:"-"`
}

/*************************************************
*       Disposisi usecase interfaces and types   *
*************************************************/
type DisposisiUsecase interface {
	Create(ctx context.Context, req *DisposisiCreateRequest) (*Disposisi, error)
	FindByID(ctx context.Context, id string) (*Disposisi, error)
	FindPage(ctx context.Context, filter *DisposisiFilter, option *FindPageOption) ([]*Disposisi, *Pagination, error)
	Update(ctx context.Context, id string, req *DisposisiUpdateRequest) (*Disposisi, error)
	Delete(ctx context.Context, id string) error
}

type DisposisiCreateRequest struct {
	SuratMasukID string `json:"suratMasukId" binding:"required"`
	DariID       string `json:"dariId" binding:"required"`
	KeID         string `json:"keId" binding:"required"`
	Instruksi    string `json:"instruksi" binding:"required"`
	Catatan      string `json:"catatan"`
}

type DisposisiUpdateRequest struct {
	Instruksi *string          `json:"instruksi,omitempty"`
	Catatan   *string          `json:"catatan,omitempty"`
	Status    *StatusDisposisi `json:"status,omitempty" binding:"omitempty,status_disposisi"`
}
