package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Validate validates the configuration
func Validate(cfg Config) error {
	if err := validateApp(cfg.App()); err != nil {
		return fmt.Errorf("app config validation failed: %w", err)
	}

	if err := validateServer(cfg.Server()); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabase(cfg.Database()); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateCache(cfg.Cache()); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	// Redis is only dialled when it backs the cache.
	if cfg.Cache().Provider() == "redis" {
		if err := validateRedis(cfg.Redis()); err != nil {
			return fmt.Errorf("redis config validation failed: %w", err)
		}
	}

	if err := validateLogger(cfg.Logger()); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := validateRateLimit(cfg.RateLimit()); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := validateUpload(cfg.Upload()); err != nil {
		return fmt.Errorf("upload config validation failed: %w", err)
	}

	if err := validateEmail(cfg.Email()); err != nil {
		return fmt.Errorf("email config validation failed: %w", err)
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if !lo.Contains(allowed, value) {
		return fmt.Errorf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
	return nil
}

func validateApp(cfg AppConfig) error {
	switch cfg.Environment() {
	case LocalEnv, DevelopmentEnv, ProductionEnv:
	default:
		return fmt.Errorf("ENV=%s is invalid, only accept `%s`, `%s`, `%s`", cfg.Environment(), LocalEnv, DevelopmentEnv, ProductionEnv)
	}

	if _, err := time.LoadLocation(cfg.TimeZone()); err != nil {
		return fmt.Errorf("timezone %q is invalid: %w", cfg.TimeZone(), err)
	}

	if cfg.TokenIssuer() == "" {
		return fmt.Errorf("token_issuer is required")
	}

	if cfg.AccessTokenExpiresIn() <= 0 {
		return fmt.Errorf("access_token_expires_in must be positive")
	}

	if cfg.AccessTokenSecret() == "" {
		return fmt.Errorf("access token secret is required, please set ACCESS_TOKEN_SECRET env variable")
	}

	if cfg.IsProduction() && len(cfg.AccessTokenSecret()) < 32 {
		return fmt.Errorf("access token secret must be at least 32 characters in production")
	}

	if cfg.AdminDefaultEmail() == "" {
		return fmt.Errorf("admin default email is required, please set SYSTEM_ADMIN_DEFAULT_EMAIL env variable")
	}

	if cfg.AdminDefaultPassword() == "" {
		return fmt.Errorf("admin default password is required, please set SYSTEM_ADMIN_DEFAULT_PASSWORD env variable")
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("host is required")
	}

	if cfg.Host() != "0.0.0.0" && cfg.Host() != "localhost" {
		if net.ParseIP(cfg.Host()) == nil {
			return fmt.Errorf("host must be a valid IP address or 'localhost'")
		}
	}

	if cfg.Port() <= 0 || cfg.Port() > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	if cfg.ReadTimeout() <= 0 {
		return fmt.Errorf("read_timeout must be positive")
	}

	if cfg.WriteTimeout() <= 0 {
		return fmt.Errorf("write_timeout must be positive")
	}

	if cfg.ShutdownTimeout() <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}

	if cfg.MaxUploadSizeMB() <= 0 {
		return fmt.Errorf("max_upload_size_mb must be positive")
	}

	for _, origin := range cfg.AllowedOrigins() {
		if origin != "*" && !strings.HasPrefix(origin, "http") {
			return fmt.Errorf("allowed origin %q must start with http:// or https://", origin)
		}
	}

	return nil
}

func validateDatabase(cfg DatabaseConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("database host is required")
	}

	if port, err := strconv.Atoi(cfg.Port()); err != nil {
		return fmt.Errorf("database port must be numeric: %w", err)
	} else if port <= 0 || port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}

	if cfg.User() == "" {
		return fmt.Errorf("database user is required")
	}

	if cfg.Name() == "" {
		return fmt.Errorf("database name is required")
	}

	if cfg.MaxOpenConns() <= 0 {
		return fmt.Errorf("max_open_conns must be positive")
	}

	if cfg.MaxIdleConns() <= 0 {
		return fmt.Errorf("max_idle_conns must be positive")
	}

	if cfg.MaxIdleConns() > cfg.MaxOpenConns() {
		return fmt.Errorf("max_idle_conns cannot be greater than max_open_conns")
	}

	if cfg.ConnMaxLifetime() <= 0 {
		return fmt.Errorf("conn_max_lifetime must be positive")
	}

	if err := oneOf("ssl_mode", cfg.SSLMode(), "disable", "require", "verify-ca", "verify-full"); err != nil {
		return err
	}

	if cfg.EnableLog() {
		if err := oneOf("database log_level", cfg.LogLevel(), "silent", "error", "warn", "info"); err != nil {
			return err
		}
	}

	return nil
}

func validateRedis(cfg RedisConfig) error {
	if cfg.Host() == "" {
		return fmt.Errorf("redis host is required")
	}

	if cfg.Port() <= 0 || cfg.Port() > 65535 {
		return fmt.Errorf("redis port must be between 1 and 65535")
	}

	if cfg.DB() < 0 || cfg.DB() > 15 {
		return fmt.Errorf("redis db must be between 0 and 15")
	}

	return nil
}

func validateCache(cfg CacheConfig) error {
	if err := oneOf("cache provider", cfg.Provider(), "redis", "memory"); err != nil {
		return err
	}

	if cfg.DefaultTTL() <= 0 {
		return fmt.Errorf("default_ttl must be positive")
	}

	if cfg.DashboardTTL() < 0 {
		return fmt.Errorf("dashboard_ttl must not be negative")
	}

	return nil
}

func validateLogger(cfg LoggerConfig) error {
	if err := oneOf("log level", cfg.Level(), "debug", "info", "warn", "error", "fatal"); err != nil {
		return err
	}

	if err := oneOf("log format", cfg.Format(), "json", "console"); err != nil {
		return err
	}

	out := cfg.OutputPath()
	if out == "" {
		return fmt.Errorf("output_path is required")
	}
	if out == "stdout" || out == "stderr" {
		return nil
	}

	// Create log directory if it doesn't exist
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
	}

	if cfg.MaxFileSizeMB() <= 0 {
		return fmt.Errorf("max_file_size_mb must be positive")
	}

	if cfg.MaxFileAgeDays() <= 0 {
		return fmt.Errorf("max_file_age_days must be positive")
	}

	if cfg.MaxBackupFiles() <= 0 {
		return fmt.Errorf("max_backup_files must be positive")
	}

	return nil
}

func validateRateLimit(cfg RateLimitConfig) error {
	if !cfg.Enabled() {
		return nil
	}

	if cfg.Window() <= 0 {
		return fmt.Errorf("window must be positive")
	}

	if cfg.MaxRequests() <= 0 {
		return fmt.Errorf("max_requests must be positive")
	}

	if cfg.LoginMaxRequests() <= 0 {
		return fmt.Errorf("login_max_requests must be positive")
	}

	return nil
}

func validateUpload(cfg UploadConfig) error {
	provider := cfg.Provider()
	if provider != "s3" && provider != "local" {
		return fmt.Errorf("upload provider must be 's3' or 'local'")
	}

	if provider == "local" {
		if cfg.LocalDir() == "" {
			return fmt.Errorf("local_dir is required when provider is 'local'")
		}

		if err := os.MkdirAll(cfg.LocalDir(), 0755); err != nil {
			return fmt.Errorf("cannot create local upload directory: %w", err)
		}

		if !strings.HasPrefix(cfg.PublicPath(), "/") {
			return fmt.Errorf("public_path must start with '/'")
		}
	}

	if provider == "s3" {
		if cfg.S3BucketName() == "" {
			return fmt.Errorf("s3_bucket_name is required when provider is 's3'")
		}
		if cfg.S3Region() == "" {
			return fmt.Errorf("s3_region is required when provider is 's3'")
		}
		if cfg.S3AccessKey() == "" {
			return fmt.Errorf("s3 access key id is required when provider is 's3'")
		}
		if cfg.S3SecretKey() == "" {
			return fmt.Errorf("s3 secret access key is required when provider is 's3'")
		}
		if cfg.S3PresignURLTTL() <= 0 {
			return fmt.Errorf("s3 presign_url_ttl must be positive")
		}
		if cfg.S3EndpointURL() != "" && !strings.HasPrefix(cfg.S3EndpointURL(), "http") {
			return fmt.Errorf("s3 endpoint_url must start with http:// or https://")
		}
	}

	return nil
}

func validateEmail(cfg EmailConfig) error {
	if !cfg.Enabled() {
		return nil
	}

	if err := oneOf("email provider", cfg.Provider(), "ses", "sendgrid", "mock"); err != nil {
		return err
	}

	if cfg.DefaultFrom() == "" {
		return fmt.Errorf("default_from is required")
	}

	switch cfg.Provider() {
	case "ses":
		if cfg.SESRegion() == "" {
			return fmt.Errorf("ses_region is required when provider is 'ses'")
		}
	case "sendgrid":
		if cfg.SendGridAPIKey() == "" {
			return fmt.Errorf("sendgrid api key is required, please set SENDGRID_API_KEY env variable")
		}
	}

	if cfg.MaxRetries() < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}

	return nil
}
