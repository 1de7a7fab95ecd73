package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `
app:
  name: SINTAS
  version: 2.0.0
  timezone: Asia/Jakarta
  token_issuer: sintas-test
  access_token_expires_in: 2h
  require_auth: true
server:
  host: 0.0.0.0
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
  shutdown_timeout: 3s
  max_upload_size_mb: 5
  allowed_origins:
    - http://localhost:3000
cache:
  provider: memory
  default_ttl: 1m
  dashboard_ttl: 30s
logger:
  level: debug
  format: console
  output_path: stdout
rate_limit:
  enabled: true
  window: 30s
  max_requests: 50
  login_max_requests: 5
upload:
  provider: local
  public_path: /uploads
email:
  enabled: false
`

func loadTestConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("POSTGRES_DBNAME", "sintas_test")

	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// keep uploads inside the temp dir
	cfg.(*config).UploadCfg.LocalDirStr = filepath.Join(dir, "uploads")
	return cfg
}

func TestLoad(t *testing.T) {
	cfg := loadTestConfig(t)

	if got := cfg.App().Version(); got != "2.0.0" {
		t.Errorf("Version() = %q, want 2.0.0", got)
	}
	if got := cfg.App().AccessTokenExpiresIn(); got != 2*time.Hour {
		t.Errorf("AccessTokenExpiresIn() = %v, want 2h", got)
	}
	if !cfg.App().RequireAuth() {
		t.Error("RequireAuth() = false, want true")
	}
	if got := cfg.App().AccessTokenSecret(); got != "test-secret" {
		t.Errorf("AccessTokenSecret() = %q, want value from env", got)
	}
	if got := cfg.App().Location().String(); got != "Asia/Jakarta" {
		t.Errorf("Location() = %q, want Asia/Jakarta", got)
	}
	if got := cfg.Server().Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", got)
	}
	if got := cfg.Database().Name(); got != "sintas_test" {
		t.Errorf("Database().Name() = %q, want sintas_test", got)
	}
	if got := cfg.Database().Port(); got != "5432" {
		t.Errorf("Database().Port() = %q, want default 5432", got)
	}
	if got := cfg.Cache().DashboardTTL(); got != 30*time.Second {
		t.Errorf("DashboardTTL() = %v, want 30s", got)
	}
	if got := cfg.RateLimit().LoginMaxRequests(); got != 5 {
		t.Errorf("LoginMaxRequests() = %d, want 5", got)
	}
	if got := cfg.Upload().S3PresignURLTTL(); got != 15*time.Minute {
		t.Errorf("S3PresignURLTTL() = %v, want default 15m", got)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if MustGet() != cfg {
		t.Error("MustGet() returned a different instance")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config)
		wantErr string
	}{
		{
			name:    "invalid environment",
			mutate:  func(c *config) { c.AppCfg.EnvironmentStr = "staging" },
			wantErr: "ENV=staging is invalid",
		},
		{
			name:    "missing token secret",
			mutate:  func(c *config) { c.AppCfg.AccessTokenSecretStr = "" },
			wantErr: "ACCESS_TOKEN_SECRET",
		},
		{
			name: "short secret in production",
			mutate: func(c *config) {
				c.AppCfg.EnvironmentStr = ProductionEnv
				c.AppCfg.AccessTokenSecretStr = "short"
			},
			wantErr: "at least 32 characters",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *config) { c.AppCfg.TimeZoneStr = "Mars/Olympus" },
			wantErr: "timezone",
		},
		{
			name:    "bad port",
			mutate:  func(c *config) { c.ServerCfg.PortInt = 70000 },
			wantErr: "port must be between",
		},
		{
			name:    "bad origin",
			mutate:  func(c *config) { c.ServerCfg.AllowedOriginsArr = []string{"localhost:3000"} },
			wantErr: "allowed origin",
		},
		{
			name:    "unknown cache provider",
			mutate:  func(c *config) { c.CacheCfg.ProviderStr = "memcached" },
			wantErr: "cache provider must be one of",
		},
		{
			name: "redis checked when it backs the cache",
			mutate: func(c *config) {
				c.CacheCfg.ProviderStr = "redis"
				c.RedisCfg.PortInt = 0
			},
			wantErr: "redis port",
		},
		{
			name:    "idle above open conns",
			mutate:  func(c *config) { c.DatabaseCfg.MaxIdleConnsInt = 100 },
			wantErr: "max_idle_conns cannot be greater",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *config) { c.UploadCfg.ProviderStr = "s3" },
			wantErr: "s3_bucket_name is required",
		},
		{
			name: "sendgrid without key",
			mutate: func(c *config) {
				c.EmailCfg.EnabledBool = true
				c.EmailCfg.ProviderStr = "sendgrid"
			},
			wantErr: "SENDGRID_API_KEY",
		},
		{
			name:    "rate limit disabled skips checks",
			mutate:  func(c *config) { c.RateLimitCfg.EnabledBool = false; c.RateLimitCfg.MaxRequestsInt = 0 },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t).(*config)
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
