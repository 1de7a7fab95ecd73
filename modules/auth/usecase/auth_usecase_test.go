package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/testutil"
)

// stubTokens issues the user id as the token.
type stubTokens struct {
	expiresAt time.Time
}

func (s stubTokens) Generate(user *domain.User) (string, time.Time, error) {
	return "token:" + user.ID, s.expiresAt, nil
}

func (stubTokens) Verify(tokenStr string) (*domain.JwtClaims, error) {
	id, ok := strings.CutPrefix(tokenStr, "token:")
	if !ok {
		return nil, errors.New("malformed token")
	}
	return &domain.JwtClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: id}}, nil
}

func newTestUsecase(t *testing.T) (*authUsecase, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	uc := NewAuthUsecase(fx.Users, stubTokens{expiresAt: now.Add(24 * time.Hour)}, testutil.Hasher{}).(*authUsecase)
	uc.now = func() time.Time { return now }
	return uc, fx
}

func TestLogin(t *testing.T) {
	uc, fx := newTestUsecase(t)
	admin := fx.AddUser("Admin", fx.AddRole("Admin", domain.AllPermissions...))
	inactive := fx.AddUser("Mantan Staff", nil)
	inactive.IsActive = false

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{"ok with messy email", domain.LoginRequest{Email: "  " + strings.ToUpper(admin.Email), Password: "secret"}, nil},
		{"missing password", domain.LoginRequest{Email: admin.Email}, domain.ErrCredentialsRequired},
		{"missing email", domain.LoginRequest{Password: "secret"}, domain.ErrCredentialsRequired},
		{"unknown email", domain.LoginRequest{Email: "nobody@sintas.test", Password: "secret"}, domain.ErrInvalidCredentials},
		{"wrong password", domain.LoginRequest{Email: admin.Email, Password: "guess"}, domain.ErrInvalidCredentials},
		{"inactive with wrong password", domain.LoginRequest{Email: inactive.Email, Password: "guess"}, domain.ErrInvalidCredentials},
		{"inactive", domain.LoginRequest{Email: inactive.Email, Password: "secret"}, domain.ErrUserInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Login(context.Background(), &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.User.ID != admin.ID || resp.User.Role == nil {
				t.Errorf("user = %+v", resp.User)
			}
			if resp.AccessToken != "token:"+admin.ID || resp.ExpiresIn != 86400 {
				t.Errorf("token = %q expiresIn = %d", resp.AccessToken, resp.ExpiresIn)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	uc, fx := newTestUsecase(t)
	user := fx.AddUser("Budi", nil)

	tests := []struct {
		userID  string
		wantErr error
	}{
		{user.ID, nil},
		{" ", domain.ErrUserIDRequired},
		{"missing", domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		err := uc.Logout(context.Background(), &domain.LogoutRequest{UserID: tt.userID})
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Logout(%q) error = %v, want %v", tt.userID, err, tt.wantErr)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	uc, fx := newTestUsecase(t)
	role := fx.AddRole("Staff", domain.PermSuratMasukRead)
	active := fx.AddUser("Sari", role)
	disabled := fx.AddUser("Joko", role)
	disabled.IsActive = false

	user, err := uc.Authenticate(context.Background(), "token:"+active.ID)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !user.HasPermission(domain.PermSuratMasukRead) || user.HasPermission(domain.PermUsersDelete) {
		t.Errorf("permissions = %v", user.Role)
	}

	rejected := []struct {
		token string
		want  error
	}{
		{"garbage", domain.ErrInvalidToken},
		{"token:deleted-user", domain.ErrInvalidToken},
		{"token:" + disabled.ID, domain.ErrUserInactive},
	}
	for _, tt := range rejected {
		if _, err := uc.Authenticate(context.Background(), tt.token); !errors.Is(err, tt.want) {
			t.Errorf("Authenticate(%q) error = %v, want %v", tt.token, err, tt.want)
		}
	}
}
