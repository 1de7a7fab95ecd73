package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/testutil"
)

func newTestUsecase() (domain.UserUsecase, *testutil.Fixtures, *testutil.Invalidator) {
	fx := testutil.NewFixtures()
	stats := &testutil.Invalidator{}
	return NewUserUsecase(fx.Users, fx.Roles, testutil.Hasher{}, stats), fx, stats
}

func TestUserCreate(t *testing.T) {
	uc, fx, stats := newTestUsecase()
	staff := fx.AddRole("Staff")
	existing := fx.AddUser("Budi", staff)

	tests := []struct {
		name    string
		req     domain.UserCreateRequest
		wantErr error
	}{
		{
			name: "created",
			req: domain.UserCreateRequest{
				Email: " Sari@Dinas.go.id ", Password: "rahasia", Nama: "Sari",
				Telepon: "0812-3456-7890", RoleID: staff.ID,
			},
		},
		{"missing nama", domain.UserCreateRequest{Email: "a@b.id", Password: "x", RoleID: staff.ID}, domain.ErrMissingRequiredField},
		{"unknown role", domain.UserCreateRequest{Email: "a@b.id", Password: "x", Nama: "A", RoleID: "missing"}, domain.ErrRoleNotFound},
		{"duplicate email", domain.UserCreateRequest{Email: existing.Email, Password: "x", Nama: "A", RoleID: staff.ID}, domain.ErrEmailAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := uc.Create(context.Background(), &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if user.Email != "sari@dinas.go.id" {
				t.Errorf("email = %q, want normalised", user.Email)
			}
			if user.Password != "hashed:rahasia" {
				t.Errorf("password stored as %q, want hash", user.Password)
			}
			if user.Telepon != "+6281234567890" {
				t.Errorf("telepon = %q, want E.164", user.Telepon)
			}
			if !user.IsActive || user.Role == nil || user.Role.ID != staff.ID {
				t.Errorf("user = %+v", user)
			}
		})
	}
	if stats.Calls.Load() != 1 {
		t.Errorf("dashboard invalidated %d times, want 1", stats.Calls.Load())
	}
}

func TestUserFindByIDIncludesAktivitas(t *testing.T) {
	uc, fx, _ := newTestUsecase()
	user := fx.AddUser("Budi", fx.AddRole("Staff"))

	got, err := uc.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Aktivitas == nil || got.Aktivitas.SuratMasuk == nil || got.Role == nil {
		t.Errorf("user = %+v", got)
	}

	if _, err := uc.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown id: error = %v", err)
	}
}

func TestUserUpdate(t *testing.T) {
	uc, fx, _ := newTestUsecase()
	staff := fx.AddRole("Staff")
	admin := fx.AddRole("Admin")
	budi := fx.AddUser("Budi", staff)
	sari := fx.AddUser("Sari", staff)
	ctx := context.Background()

	if _, err := uc.Update(ctx, budi.ID, &domain.UserUpdateRequest{Email: lo.ToPtr(sari.Email)}); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("taken email: error = %v", err)
	}
	if _, err := uc.Update(ctx, budi.ID, &domain.UserUpdateRequest{RoleID: lo.ToPtr("missing")}); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("unknown role: error = %v", err)
	}

	got, err := uc.Update(ctx, budi.ID, &domain.UserUpdateRequest{
		Password: lo.ToPtr("baru"),
		RoleID:   lo.ToPtr(admin.ID),
		IsActive: lo.ToPtr(false),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Password != "hashed:baru" || got.IsActive || got.RoleID != admin.ID || got.Nama != "Budi" {
		t.Errorf("user = %+v", got)
	}
	if got.Role == nil || got.Role.ID != admin.ID {
		t.Errorf("role not reloaded: %+v", got.Role)
	}
}

func TestUserDelete(t *testing.T) {
	uc, fx, _ := newTestUsecase()
	staff := fx.AddRole("Staff")
	busy := fx.AddUser("Budi", staff)
	idle := fx.AddUser("Sari", staff)
	fx.Users.Refs[busy.ID] = domain.UserReferenceCounts{SuratMasuk: 2}

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"referenced user", busy.ID, domain.ErrUserInUse},
		{"unknown user", "missing", domain.ErrUserNotFound},
		{"deleted", idle.ID, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Delete(context.Background(), tt.id)
			if tt.wantErr == nil && err != nil || tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
