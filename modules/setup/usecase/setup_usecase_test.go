package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/testutil"
)

type adminCfg struct{}

func (adminCfg) AdminDefaultEmail() string    { return " Admin@SINTAS.com " }
func (adminCfg) AdminDefaultPassword() string { return "admin123" }
func (adminCfg) AdminDefaultName() string     { return "Administrator" }

func newTestUsecase() (domain.SetupUsecase, *testutil.Fixtures, *testutil.Transactor, *testutil.Invalidator) {
	fx := testutil.NewFixtures()
	tx := &testutil.Transactor{}
	stats := &testutil.Invalidator{}
	return NewSetupUsecase(fx.Roles, fx.Users, tx, testutil.Hasher{}, adminCfg{}, stats), fx, tx, stats
}

func TestInitialize(t *testing.T) {
	uc, fx, tx, stats := newTestUsecase()
	ctx := context.Background()

	before, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if before.Initialized || before.RolesCount != 0 {
		t.Fatalf("status before = %+v", before)
	}

	result, err := uc.Initialize(ctx)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if result.AlreadyExist || result.Roles != 4 || result.User != 1 {
		t.Errorf("result = %+v", result)
	}
	if tx.Calls.Load() != 1 || stats.Calls.Load() != 1 {
		t.Errorf("transactions = %d, invalidations = %d", tx.Calls.Load(), stats.Calls.Load())
	}

	users := fx.Users.Rows()
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	admin := users[0]
	if admin.Email != "admin@sintas.com" || admin.Password != "hashed:admin123" || admin.NIP != "ADMIN001" || !admin.IsActive {
		t.Errorf("admin = %+v", admin)
	}
	role, err := fx.Roles.FindByID(ctx, admin.RoleID, nil)
	if err != nil || role.Nama != domain.RoleAdmin || len(role.Permissions) != len(domain.AllPermissions) {
		t.Errorf("admin role = %+v, err = %v", role, err)
	}

	after, _ := uc.Status(ctx)
	if !after.Initialized || after.RolesCount != 4 || after.UsersCount != 1 {
		t.Errorf("status after = %+v", after)
	}

	again, err := uc.Initialize(ctx)
	if err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if !again.AlreadyExist || !again.Initialized {
		t.Errorf("second result = %+v", again)
	}
	if n := len(fx.Roles.Rows()); n != 4 {
		t.Errorf("roles after second run = %d, want 4", n)
	}
}

func TestDefaultRolePermissions(t *testing.T) {
	roles := domain.DefaultRoles()
	byName := make(map[string]*domain.Role, len(roles))
	for _, r := range roles {
		byName[r.Nama] = r
	}

	tests := []struct {
		role    string
		perm    string
		granted bool
	}{
		{domain.RoleAdmin, domain.PermRolesDelete, true},
		{domain.RoleKepalaDinas, domain.PermLaporanGenerate, true},
		{domain.RoleKepalaDinas, domain.PermSuratMasukCreate, false},
		{domain.RoleSekretaris, domain.PermArsipCreate, true},
		{domain.RoleSekretaris, domain.PermUsersCreate, false},
		{domain.RoleStaff, domain.PermSuratKeluarCreate, true},
		{domain.RoleStaff, domain.PermDisposisiRead, false},
	}
	for _, tt := range tests {
		if got := byName[tt.role].HasPermission(tt.perm); got != tt.granted {
			t.Errorf("%s has %s = %v, want %v", tt.role, tt.perm, got, tt.granted)
		}
	}
}

type failingRoles struct {
	*testutil.RoleRepo
	err error
}

func (f failingRoles) CreateMany(context.Context, []*domain.Role) error { return f.err }

func TestInitializeConcurrentDuplicate(t *testing.T) {
	fx := testutil.NewFixtures()
	stats := &testutil.Invalidator{}
	roles := failingRoles{RoleRepo: fx.Roles, err: domain.ErrDuplicateValue.WithWrap(errors.New("roles_nama_key"))}
	uc := NewSetupUsecase(roles, fx.Users, &testutil.Transactor{}, testutil.Hasher{}, adminCfg{}, stats)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := uc.Initialize(context.Background())
			if err != nil || !result.AlreadyExist {
				t.Errorf("Initialize() = %+v, %v", result, err)
			}
		}()
	}
	wg.Wait()
	if stats.Calls.Load() != 0 {
		t.Errorf("invalidated %d times on a no-op", stats.Calls.Load())
	}
}
