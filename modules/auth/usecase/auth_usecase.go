package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/realboxofme/sintas/domain"
)

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type TokenProvider interface {
	Generate(user *domain.User) (string, time.Time, error)
	Verify(tokenStr string) (*domain.JwtClaims, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
}

type authUsecase struct {
	userRepo UserRepository
	tokens   TokenProvider
	hasher   Hasher
	now      func() time.Time
}

func NewAuthUsecase(userRepo UserRepository, tokens TokenProvider, hasher Hasher) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		now:      time.Now,
	}
}

var withRole = &domain.FindOneOption{Preloads: []string{"Role"}}

// Login checks the password before the active flag so a disabled account is only
// revealed to someone who knows its password.
func (a *authUsecase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	user, err := a.userRepo.FindOne(ctx, &domain.UserFilter{Email: &email}, withRole)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !a.hasher.Compare(user.Password, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, expiresAt, err := a.tokens.Generate(user)
	if err != nil {
		return nil, domain.ErrInternalServerError.WithWrap(err)
	}

	return &domain.LoginResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(expiresAt.Sub(a.now()).Seconds()),
	}, nil
}

// Logout only confirms the user exists. Access tokens are stateless and expire on their own.
func (a *authUsecase) Logout(ctx context.Context, req *domain.LogoutRequest) error {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if _, err := a.userRepo.FindByID(ctx, userID, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrUserNotFound.WithWrap(err)
		}
		return err
	}
	return nil
}

func (a *authUsecase) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := a.tokens.Verify(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidToken.WithWrap(err)
	}

	user, err := a.userRepo.FindByID(ctx, claims.Subject, withRole)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrInvalidToken.WithWrap(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}
