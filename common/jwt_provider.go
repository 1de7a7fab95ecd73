package common

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/realboxofme/sintas/domain"
)

type JwtProviderConfig interface {
	AccessTokenExpiresIn() time.Duration
	AccessTokenSecret() string
	TokenIssuer() string
}

type JWTProvider struct {
	cfg JwtProviderConfig
	now func() time.Time
}

func NewJWTProvider(cfg JwtProviderConfig) *JWTProvider {
	return &JWTProvider{cfg: cfg, now: time.Now}
}

// Generate signs an HS256 access token for the user.
func (j *JWTProvider) Generate(user *domain.User) (string, time.Time, error) {
	if user == nil || user.ID == "" {
		return "", time.Time{}, errors.New("user id is required")
	}
	now := j.now()
	expiresAt := now.Add(j.cfg.AccessTokenExpiresIn())
	claims := domain.JwtClaims{
		RoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.cfg.TokenIssuer(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.AccessTokenSecret()))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWTProvider) Verify(tokenStr string) (*domain.JwtClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &domain.JwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.cfg.AccessTokenSecret()), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.cfg.TokenIssuer()),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*domain.JwtClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
