package domain

import "context"

// SetupStatus describes whether the default roles and admin account exist.
type SetupStatus struct {
	Initialized bool  `json:"initialized"`
	RolesCount  int64 `json:"rolesCount"`
	UsersCount  int64 `json:"usersCount"`
}

// SetupResult is returned by a seeding run. AlreadyExist is set when roles were present and nothing was written.
type SetupResult struct {
	Initialized  bool `json:"initialized"`
	Roles        int  `json:"roles,omitempty"`
	User         int  `json:"user,omitempty"`
	AlreadyExist bool `json:"-"`
}

type SetupUsecase interface {
	Status(ctx context.Context) (*SetupStatus, error)
	Initialize(ctx context.Context) (*SetupResult, error)
}

const (
	RoleAdmin       = "Admin"
	RoleKepalaDinas = "Kepala Dinas"
	RoleSekretaris  = "Sekretaris"
	RoleStaff       = "Staff"
)

// DefaultRoles returns fresh copies of the roles created on first start.
func DefaultRoles() []*Role {
	return []*Role{
		{
			Nama:        RoleAdmin,
			Deskripsi:   "Akses penuh ke semua fitur",
			Permissions: NewStringSlice(AllPermissions),
		},
		{
			Nama:      RoleKepalaDinas,
			Deskripsi: "Akses untuk persetujuan dan laporan",
			Permissions: NewStringSlice([]string{
				PermDashboardRead,
				PermSuratMasukRead,
				PermSuratKeluarRead, PermSuratKeluarCreate, PermSuratKeluarUpdate,
				PermDisposisiRead, PermDisposisiCreate, PermDisposisiUpdate,
				PermArsipRead,
				PermLaporanRead, PermLaporanGenerate,
				PermUsersRead,
			}),
		},
		{
			Nama:      RoleSekretaris,
			Deskripsi: "Akses untuk disposisi dan koordinasi",
			Permissions: NewStringSlice([]string{
				PermDashboardRead,
				PermSuratMasukRead, PermSuratMasukCreate, PermSuratMasukUpdate,
				PermSuratKeluarRead, PermSuratKeluarCreate, PermSuratKeluarUpdate,
				PermDisposisiRead, PermDisposisiCreate, PermDisposisiUpdate,
				PermArsipRead, PermArsipCreate,
				PermLaporanRead, PermLaporanGenerate,
				PermUsersRead,
			}),
		},
		{
			Nama:      RoleStaff,
			Deskripsi: "Akses terbatas untuk operasional",
			Permissions: NewStringSlice([]string{
				PermDashboardRead,
				PermSuratMasukRead,
				PermSuratKeluarRead, PermSuratKeluarCreate,
				PermArsipRead,
				PermLaporanRead,
			}),
		},
	}
}
