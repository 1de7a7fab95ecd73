package domain

// Capability tags carried by roles, formatted as resource:action.
const (
	PermDashboardRead = "dashboard:read"

	PermSuratMasukRead   = "surat-masuk:read"
	PermSuratMasukCreate = "surat-masuk:create"
	PermSuratMasukUpdate = "surat-masuk:update"
	PermSuratMasukDelete = "surat-masuk:delete"

	PermSuratKeluarRead   = "surat-keluar:read"
	PermSuratKeluarCreate = "surat-keluar:create"
	PermSuratKeluarUpdate = "surat-keluar:update"
	PermSuratKeluarDelete = "surat-keluar:delete"

	PermDisposisiRead   = "disposisi:read"
	PermDisposisiCreate = "disposisi:create"
	PermDisposisiUpdate = "disposisi:update"
	PermDisposisiDelete = "disposisi:delete"

	PermArsipRead   = "arsip:read"
	PermArsipCreate = "arsip:create"
	PermArsipUpdate = "arsip:update"
	PermArsipDelete = "arsip:delete"

	PermLaporanRead     = "laporan:read"
	PermLaporanGenerate = "laporan:generate"

	PermUsersRead   = "users:read"
	PermUsersCreate = "users:create"
	PermUsersUpdate = "users:update"
	PermUsersDelete = "users:delete"

	PermRolesRead   = "roles:read"
	PermRolesCreate = "roles:create"
	PermRolesUpdate = "roles:update"
	PermRolesDelete = "roles:delete"
)

// AllPermissions is the full capability list granted to the Admin role.
var AllPermissions = []string{
	PermDashboardRead,
	PermSuratMasukRead, PermSuratMasukCreate, PermSuratMasukUpdate, PermSuratMasukDelete,
	PermSuratKeluarRead, PermSuratKeluarCreate, PermSuratKeluarUpdate, PermSuratKeluarDelete,
	PermDisposisiRead, PermDisposisiCreate, PermDisposisiUpdate, PermDisposisiDelete,
	PermArsipRead, PermArsipCreate, PermArsipUpdate, PermArsipDelete,
	PermLaporanRead, PermLaporanGenerate,
	PermUsersRead, PermUsersCreate, PermUsersUpdate, PermUsersDelete,
	PermRolesRead, PermRolesCreate, PermRolesUpdate, PermRolesDelete,
}
