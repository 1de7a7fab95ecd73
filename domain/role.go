package domain

import (
	"context"
	"net/http"
	"strings"
)

/****************************
*        Role errors        *
****************************/
var (
	ErrRoleNotFound = &DetailedError{
		IDField:         "ROLE_NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "Role tidak ditemukan",
		StatusCodeField: http.StatusNotFound,
	}
	ErrRoleNameAlreadyExists = &DetailedError{
		IDField:         "ROLE_NAME_ALREADY_EXISTS",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Role dengan nama ini sudah ada",
		StatusCodeField: http.StatusBadRequest,
		DetailsField:    map[string]interface{}{"field": "nama"},
	}
	ErrRoleInUse = &DetailedError{
		IDField:         "ROLE_IN_USE",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Role tidak dapat dihapus karena masih memiliki users",
		StatusCodeField: http.StatusBadRequest,
	}
)

/***************************************
*       Role entities and types       *
***************************************/

type Role struct {
	SQLModel
	Nama        string      `json:"nama" gorm:"type:varchar(100);uniqueIndex;not null"`
	Deskripsi   string      `json:"deskripsi" gorm:"type:text"`
	Permissions StringSlice `json:"permissions" gorm:"type:jsonb;not null"`
	Users       []*User     `json:"users,omitempty" gorm:"foreignKey:RoleID"`
	UserCount   int64       `json:"userCount" gorm:"-"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) Validate() error {
	r.Nama = strings.TrimSpace(r.Nama)
	if r.Nama == "" {
		return MissingField("nama")
	}
	r.Permissions = NewStringSlice(r.Permissions)
	return nil
}

func (r *Role) HasPermission(tag string) bool {
	return r != nil && r.Permissions.Contains(tag)
}

type RoleFilter struct {
	ID         *string `json:"id" form:"id"`
	IDNe       *string `json:"id_ne" form:"id_ne"`
	Nama       *string `json:"nama" form:"nama"`
	SearchTerm *string `json:"search" form:"search"`
}

/**********************************************
*       Role usecase interfaces and types      *
**********************************************/
type RoleUsecase interface {
	Create(ctx context.Context, req *RoleCreateRequest) (*Role, error)
	FindByID(ctx context.Context, id string) (*Role, error)
	FindPage(ctx context.Context, filter *RoleFilter, option *FindPageOption) ([]*Role, *Pagination, error)
	Update(ctx context.Context, id string, req *RoleUpdateRequest) (*Role, error)
	Delete(ctx context.Context, id string) error
}

type RoleCreateRequest struct {
	Nama        string   `json:"nama" binding:"required"`
	Deskripsi   string   `json:"deskripsi"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,permission"`
}

type RoleUpdateRequest struct {
	Nama        *string  `json:"nama,omitempty"`
	Deskripsi   *string  `json:"deskripsi,omitempty"`
	Permissions []string `json:"permissions,omitempty" binding:"omitempty,dive,permission"`
}
