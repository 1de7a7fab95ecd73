package domain

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
)

/****************************
*        User errors        *
****************************/
var (
	ErrUserNotFound = &DetailedError{
		IDField:         "USER_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "User tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrEmailAlreadyExists = &DetailedError{
		IDField:         "EMAIL_ALREADY_EXISTS",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Email sudah terdaftar",
		StatusCodeField: http.StatusBadRequest,
		DetailsField:    map[string]interface{}{"field": "email"},
	}
	ErrPasswordHashFailed = &DetailedError{
		IDField:         "PASSWORD_HASH_FAILED",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "Terjadi kesalahan pada server",
		StatusCodeField: http.StatusInternalServerError,
	}
	ErrUserInUse = &DetailedError{
		IDField:         "USER_IN_USE",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "User tidak dapat dihapus karena memiliki data terkait. Set status menjadi non-aktif saja.",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrUserInactive = &DetailedError{
		IDField:         "USER_INACTIVE",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "Akun Anda telah dinonaktifkan",
		StatusCodeField: http.StatusForbidden,
	}
)

/***************************************
*       User entities and types       *
***************************************/

type User struct {
	SQLModel
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(72);not null"`
	Nama      string         `json:"nama" gorm:"type:varchar(100);not null"`
	NIP       string         `json:"nip" gorm:"column:nip;type:varchar(50)"`
	Jabatan   string         `json:"jabatan" gorm:"type:varchar(100)"`
	Telepon   string         `json:"telepon" gorm:"type:varchar(20)"`
	IsActive  bool           `json:"isActive" gorm:"not null;index"`
	RoleID    string         `json:"roleId" gorm:"type:varchar(36);not null;index"`
	Role      *Role          `json:"role,omitempty" gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
	Aktivitas *UserAktivitas `json:"aktivitas,omitempty" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserAktivitas lists the most recent records a user took part in.
type UserAktivitas struct {
	SuratMasuk    []*SuratMasuk  `json:"suratMasuk"`
	SuratKeluar   []*SuratKeluar `json:"suratKeluar"`
	DisposisiDari []*Disposisi   `json:"disposisiDari"`
	DisposisiKe   []*Disposisi   `json:"disposisiKe"`
}

// UserAktivitasLimit is the number of recent records returned per activity list.
const UserAktivitasLimit = 5

// UserReferenceCounts counts the records that keep a user from being deleted.
type UserReferenceCounts struct {
	SuratMasuk  int64
	SuratKeluar int64
	Disposisi   int64
	Arsip       int64
}

func (c UserReferenceCounts) Total() int64 {
	return c.SuratMasuk + c.SuratKeluar + c.Disposisi + c.Arsip
}

func (u *User) Validate() error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Nama = strings.TrimSpace(u.Nama)
	u.NIP = strings.TrimSpace(u.NIP)
	u.Jabatan = strings.TrimSpace(u.Jabatan)
	u.Telepon = strings.TrimSpace(u.Telepon)
	u.RoleID = strings.TrimSpace(u.RoleID)

	if u.Email == "" {
		return MissingField("email")
	}
	if u.Password == "" {
		return MissingField("password")
	}
	if u.Nama == "" {
		return MissingField("nama")
	}
	if u.RoleID == "" {
		return MissingField("roleId")
	}
	if !IsEmail(u.Email) {
		return InvalidField("email", u.Email)
	}
	return nil
}

func (u *User) HasPermission(tag string) bool {
	return u != nil && u.Role.HasPermission(tag)
}

// IsEmail reports whether s is a bare address such as user@example.com.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}

type UserFilter struct {
	ID         *string `json:"id" form:"id"`
	IDNe       *string `json:"id_ne" form:"id_ne"`
	Email      *string `json:"email" form:"email"`
	RoleID     *string `json:"roleId" form:"roleId"`
	IsActive   *bool   `json:"isActive" form:"isActive"`
	SearchTerm *string `json:"search" form:"search"`
}

/**********************************************
*       User usecase interfaces and types      *
**********************************************/
type UserUsecase interface {
	Create(ctx context.Context, req *UserCreateRequest) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindPage(ctx context.Context, filter *UserFilter, option *FindPageOption) ([]*User, *Pagination, error)
	Update(ctx context.Context, id string, req *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Nama     string `json:"nama" binding:"required"`
	NIP      string `json:"nip"`
	Jabatan  string `json:"jabatan"`
	Telepon  string `json:"telepon" binding:"omitempty,phone_number"`
	RoleID   string `json:"roleId" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Nama     *string `json:"nama,omitempty"`
	NIP      *string `json:"nip,omitempty"`
	Jabatan  *string `json:"jabatan,omitempty"`
	Telepon  *string `json:"telepon,omitempty" binding:"omitempty,phone_number"`
	RoleID   *string `json:"roleId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
