package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/middleware"
	"github.com/realboxofme/sintas/modules/auth/usecase"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenCfg struct{}

func (tokenCfg) AccessTokenExpiresIn() time.Duration { return time.Hour }
func (tokenCfg) AccessTokenSecret() string             { return "handler-test-secret" }
func (tokenCfg) TokenIssuer() string                   { return "sintas" }

func TestAuthHandler(t *testing.T) {
	fx := testutil.NewFixtures()
	admin := fx.AddUser("Admin", fx.AddRole("Admin", domain.AllPermissions...))

	tokens := common.NewJWTProvider(tokenCfg{})
	uc := usecase.NewAuthUsecase(fx.Users, tokens, testutil.Hasher{})
	mw := middleware.NewMiddlewares(middleware.Dependencies{Logger: log.NewNopLogger()})

	r := gin.New()
	NewAuthHandler(uc, mw).RegisterRoutes(r.Group("/api"))

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"login", "/api/auth/login", `{"email":"` + admin.Email + `","password":"secret"}`, http.StatusOK, "Login berhasil"},
		{"login missing password", "/api/auth/login", `{"email":"` + admin.Email + `"}`, http.StatusBadRequest, "Email dan password wajib diisi"},
		{"login wrong password", "/api/auth/login", `{"email":"` + admin.Email + `","password":"x"}`, http.StatusUnauthorized, "Email atau password salah"},
		{"logout", "/api/auth/logout", `{"userId":"` + admin.ID + `"}`, http.StatusOK, "Logout berhasil"},
		{"logout without id", "/api/auth/logout", `{}`, http.StatusBadRequest, "User ID diperlukan"},
		{"logout unknown", "/api/auth/logout", `{"userId":"nope"}`, http.StatusNotFound, "User tidak ditemukan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantCode, w.Body)
			}
			var body struct {
				Message string `json:"message"`
				Error   string `json:"error"`
				Data    struct {
					User        map[string]any `json:"user"`
					AccessToken string         `json:"accessToken"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := body.Message + body.Error; got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
			if tt.name != "login" {
				return
			}
			if _, leaked := body.Data.User["password"]; leaked {
				t.Error("login response exposes the password")
			}
			if _, err := uc.Authenticate(req.Context(), body.Data.AccessToken); err != nil {
				t.Errorf("issued token rejected: %v", err)
			}
		})
	}
}
