package domain

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

/****************************
*        Auth errors        *
****************************/
var (
	ErrInvalidCredentials = &DetailedError{
		IDField:         "INVALID_CREDENTIALS",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Email atau password salah",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrInvalidToken = &DetailedError{
		IDField:         "INVALID_TOKEN",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "Token tidak valid atau sudah kedaluwarsa",
		StatusCodeField: http.StatusUnauthorized,
	}
	ErrCredentialsRequired = &DetailedError{
		IDField:         "CREDENTIALS_REQUIRED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Email dan password wajib diisi",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrUserIDRequired = &DetailedError{
		IDField:         "USER_ID_REQUIRED",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "User ID diperlukan",
		StatusCodeField: http.StatusBadRequest,
	}
)

/***************************************
*       Auth entities and types       *
***************************************/

type JwtClaims struct {
	RoleID string `json:"rid,omitempty"`
	jwt.RegisteredClaims
}

/**********************************************
*       Auth usecase interfaces and types      *
**********************************************/
type AuthUsecase interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, req *LogoutRequest) error
	// Authenticate resolves an access token to an active user with its role loaded.
	Authenticate(ctx context.Context, accessToken string) (*User, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type LogoutRequest struct {
	UserID string `json:"userId"`
}
