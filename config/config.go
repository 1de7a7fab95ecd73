package config

import (
	"fmt"
	"time"
)

const (
	LocalEnv       = "local"
	DevelopmentEnv = "dev"
	ProductionEnv  = "prod"
)

type Config interface {
	App() AppConfig
	Server() ServerConfig
	Database() DatabaseConfig
	Redis() RedisConfig
	Cache() CacheConfig
	Logger() LoggerConfig
	RateLimit() RateLimitConfig
	Upload() UploadConfig
	Email() EmailConfig
}

type AppConfig interface {
	Name() string
	Version() string
	Environment() string
	IsProduction() bool
	TimeZone() string
	Location() *time.Location
	TokenIssuer() string
	AccessTokenExpiresIn() time.Duration
	AccessTokenSecret() string
	// RequireAuth turns on bearer-token checks and permission guards for every /api route except login.
	RequireAuth() bool
	// SeedOnStart runs the default role and admin seeding when the server boots.
	SeedOnStart() bool
	AdminDefaultEmail() string
	AdminDefaultPassword() string
	AdminDefaultName() string
}

type ServerConfig interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	IdleTimeout() time.Duration
	ShutdownTimeout() time.Duration
	MaxHeaderBytes() int
	MaxUploadSizeMB() int
	AllowedOrigins() []string
}

type DatabaseConfig interface {
	Host() string
	Port() string
	User() string
	Password() string
	Name() string
	SSLMode() string
	TimeZone() string
	MaxOpenConns() int
	MaxIdleConns() int
	ConnMaxLifetime() time.Duration
	LogLevel() string
	EnableLog() bool
	SlowThreshold() time.Duration
	AutoMigrate() bool
}

type RedisConfig interface {
	Host() string
	Port() int
	Address() string
	Password() string
	DB() int
	PoolSize() int
}

type CacheConfig interface {
	Provider() string
	DefaultTTL() time.Duration
	DashboardTTL() time.Duration
}

type LoggerConfig interface {
	Level() string
	Format() string
	OutputPath() string
	MaxFileSizeMB() int
	MaxFileAgeDays() int
	MaxBackupFiles() int
	IsCompressEnabled() bool
}

type RateLimitConfig interface {
	Enabled() bool
	Window() time.Duration
	MaxRequests() int
	LoginMaxRequests() int
}

type UploadConfig interface {
	Provider() string
	LocalDir() string
	PublicPath() string
	S3EndpointURL() string
	S3BucketName() string
	S3PathPrefix() string
	S3Region() string
	S3PresignURLTTL() time.Duration
	S3AccessKey() string
	S3SecretKey() string
}

type EmailConfig interface {
	Enabled() bool
	Provider() string
	DefaultFrom() string
	SESRegion() string
	SESAccessKey() string
	SESSecretKey() string
	SendGridAPIKey() string
	SendGridFromName() string
	MaxRetries() int
	RetryDelay() time.Duration
}

// config holds the actual configuration implementation
type config struct {
	AppCfg       appConfig       `yaml:"app"`
	ServerCfg    serverConfig    `yaml:"server"`
	DatabaseCfg  databaseConfig  `yaml:"database"`
	RedisCfg     redisConfig     `yaml:"redis"`
	CacheCfg     cacheConfig     `yaml:"cache"`
	LoggerCfg    loggerConfig    `yaml:"logger"`
	RateLimitCfg rateLimitConfig `yaml:"rate_limit"`
	UploadCfg    uploadConfig    `yaml:"upload"`
	EmailCfg     emailConfig     `yaml:"email"`
}

func (c *config) App() AppConfig {
	return &c.AppCfg
}

func (c *config) Server() ServerConfig {
	return &c.ServerCfg
}

func (c *config) Database() DatabaseConfig {
	return &c.DatabaseCfg
}

func (c *config) Redis() RedisConfig {
	return &c.RedisCfg
}

func (c *config) Cache() CacheConfig {
	return &c.CacheCfg
}

func (c *config) Logger() LoggerConfig {
	return &c.LoggerCfg
}

func (c *config) RateLimit() RateLimitConfig {
	return &c.RateLimitCfg
}

func (c *config) Upload() UploadConfig {
	return &c.UploadCfg
}

func (c *config) Email() EmailConfig {
	return &c.EmailCfg
}

type appConfig struct {
	NameStr        string `yaml:"name" env-default:"SINTAS"`
	VersionStr     string `yaml:"version" env-default:"1.0.0"`
	EnvironmentStr string `env:"ENV" env-default:"local"`
	TimeZoneStr    string `yaml:"timezone" env:"APP_TIMEZONE" env-default:"Asia/Jakarta"`

	TokenIssuerStr          string        `yaml:"token_issuer" env-default:"sintas"`
	AccessTokenExpiresInDur time.Duration `yaml:"access_token_expires_in" env-default:"24h"`
	AccessTokenSecretStr    string        `env:"ACCESS_TOKEN_SECRET"`

	RequireAuthBool bool `yaml:"require_auth" env:"REQUIRE_AUTH" env-default:"false"`

	SeedOnStartBool bool `yaml:"seed_on_start" env:"SEED_ON_START" env-default:"false"`

	AdminDefaultEmailStr    string `env:"SYSTEM_ADMIN_DEFAULT_EMAIL" env-default:"admin@sintas.com"`
	AdminDefaultPasswordStr string `env:"SYSTEM_ADMIN_DEFAULT_PASSWORD" env-default:"admin123"`
	AdminDefaultNameStr     string `env:"SYSTEM_ADMIN_DEFAULT_NAME" env-default:"Administrator"`
}

func (c *appConfig) Name() string {
	return c.NameStr
}

func (c *appConfig) Version() string {
	return c.VersionStr
}

func (c *appConfig) Environment() string {
	return c.EnvironmentStr
}

func (c *appConfig) IsProduction() bool {
	return c.EnvironmentStr == ProductionEnv
}

func (c *appConfig) TimeZone() string {
	return c.TimeZoneStr
}

// Location falls back to UTC when the zone cannot be loaded.
func (c *appConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZoneStr)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *appConfig) TokenIssuer() string {
	return c.TokenIssuerStr
}

func (c *appConfig) AccessTokenExpiresIn() time.Duration {
	return c.AccessTokenExpiresInDur
}

func (c *appConfig) AccessTokenSecret() string {
	return c.AccessTokenSecretStr
}

func (c *appConfig) RequireAuth() bool {
	return c.RequireAuthBool
}

func (c *appConfig) SeedOnStart() bool {
	return c.SeedOnStartBool
}

func (c *appConfig) AdminDefaultEmail() string {
	return c.AdminDefaultEmailStr
}

func (c *appConfig) AdminDefaultPassword() string {
	return c.AdminDefaultPasswordStr
}

func (c *appConfig) AdminDefaultName() string {
	return c.AdminDefaultNameStr
}

type serverConfig struct {
	HostStr            string   `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	PortInt            int      `yaml:"port" env:"PORT" env-default:"5000"`
	ReadTimeoutStr     string   `yaml:"read_timeout" env-default:"15s"`
	WriteTimeoutStr    string   `yaml:"write_timeout" env-default:"30s"`
	IdleTimeoutStr     string   `yaml:"idle_timeout" env-default:"120s"`
	ShutdownTimeoutStr string   `yaml:"shutdown_timeout" env-default:"5s"`
	MaxHeaderBytesInt  int      `yaml:"max_header_bytes" env-default:"1048576"` // 1MB
	MaxUploadSizeMBInt int      `yaml:"max_upload_size_mb" env-default:"10"`
	AllowedOriginsArr  []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

func (s *serverConfig) Host() string {
	return s.HostStr
}

func (s *serverConfig) Port() int {
	return s.PortInt
}

func (s *serverConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.HostStr, s.PortInt)
}

func (s *serverConfig) ReadTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.ReadTimeoutStr)
	return duration
}

func (s *serverConfig) WriteTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.WriteTimeoutStr)
	return duration
}

func (s *serverConfig) IdleTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.IdleTimeoutStr)
	return duration
}

func (s *serverConfig) ShutdownTimeout() time.Duration {
	duration, _ := time.ParseDuration(s.ShutdownTimeoutStr)
	return duration
}

func (s *serverConfig) MaxHeaderBytes() int {
	return s.MaxHeaderBytesInt
}

func (s *serverConfig) MaxUploadSizeMB() int {
	return s.MaxUploadSizeMBInt
}

func (s *serverConfig) AllowedOrigins() []string {
	return s.AllowedOriginsArr
}

type databaseConfig struct {
	HostStr            string `env:"POSTGRES_HOST" env-default:"localhost"`
	PortStr            string `env:"POSTGRES_PORT" env-default:"5432"`
	UserStr            string `env:"POSTGRES_USER" env-default:"postgres"`
	PasswordStr        string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	NameStr            string `env:"POSTGRES_DBNAME" env-default:"sintas"`
	SSLModeStr         string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	TimeZoneStr        string `yaml:"timezone" env-default:"UTC"`
	MaxOpenConnsInt    int    `yaml:"max_open_conns" env-default:"25"`
	MaxIdleConnsInt    int    `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetimeStr string `yaml:"conn_max_lifetime" env-default:"5m"`
	EnableLoggingBool  bool   `yaml:"enable_logging" env-default:"false"`
	LogLevelStr        string `yaml:"log_level" env-default:"warn"`
	SlowThresholdStr   string `yaml:"slow_threshold" env-default:"500ms"`
	AutoMigrateBool    bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

func (d *databaseConfig) Host() string {
	return d.HostStr
}

func (d *databaseConfig) Port() string {
	return d.PortStr
}

func (d *databaseConfig) User() string {
	return d.UserStr
}

func (d *databaseConfig) Password() string {
	return d.PasswordStr
}

func (d *databaseConfig) Name() string {
	return d.NameStr
}

func (d *databaseConfig) SSLMode() string {
	return d.SSLModeStr
}

func (d *databaseConfig) TimeZone() string {
	return d.TimeZoneStr
}

func (d *databaseConfig) MaxOpenConns() int {
	return d.MaxOpenConnsInt
}

func (d *databaseConfig) MaxIdleConns() int {
	return d.MaxIdleConnsInt
}

func (d *databaseConfig) ConnMaxLifetime() time.Duration {
	duration, _ := time.ParseDuration(d.ConnMaxLifetimeStr)
	return duration
}

func (d *databaseConfig) EnableLog() bool {
	return d.EnableLoggingBool
}

func (d *databaseConfig) LogLevel() string {
	return d.LogLevelStr
}

func (d *databaseConfig) SlowThreshold() time.Duration {
	duration, _ := time.ParseDuration(d.SlowThresholdStr)
	return duration
}

func (d *databaseConfig) AutoMigrate() bool {
	return d.AutoMigrateBool
}

type redisConfig struct {
	HostStr     string `env:"REDIS_HOST" env-default:"localhost"`
	PortInt     int    `env:"REDIS_PORT" env-default:"6379"`
	PasswordStr string `env:"REDIS_PASSWORD" env-default:""`
	DBInt       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	PoolSizeInt int    `yaml:"pool_size" env-default:"10"`
}

func (r *redisConfig) Host() string {
	return r.HostStr
}

func (r *redisConfig) Port() int {
	return r.PortInt
}

func (r *redisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.HostStr, r.PortInt)
}

func (r *redisConfig) Password() string {
	return r.PasswordStr
}

func (r *redisConfig) DB() int {
	return r.DBInt
}

func (r *redisConfig) PoolSize() int {
	return r.PoolSizeInt
}

type cacheConfig struct {
	ProviderStr     string `yaml:"provider" env:"CACHE_PROVIDER" env-default:"memory"`
	DefaultTTLStr   string `yaml:"default_ttl" env-default:"5m"`
	DashboardTTLStr string `yaml:"dashboard_ttl" env-default:"1m"`
}

func (c *cacheConfig) Provider() string {
	return c.ProviderStr
}

func (c *cacheConfig) DefaultTTL() time.Duration {
	duration, _ := time.ParseDuration(c.DefaultTTLStr)
	return duration
}

func (c *cacheConfig) DashboardTTL() time.Duration {
	duration, _ := time.ParseDuration(c.DashboardTTLStr)
	return duration
}

type loggerConfig struct {
	LevelStr          string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	FormatStr         string `yaml:"format" env-default:"json"`
	OutputPathStr     string `yaml:"output_path" env-default:"stdout"`
	MaxFileSizeMBInt  int    `yaml:"max_file_size_mb" env-default:"100"`
	MaxFileAgeDaysInt int    `yaml:"max_file_age_days" env-default:"30"`
	MaxBackupFilesInt int    `yaml:"max_backup_files" env-default:"10"`
	EnableCompressed  bool   `yaml:"enable_compressed"`
}

func (l *loggerConfig) Level() string {
	return l.LevelStr
}

func (l *loggerConfig) Format() string {
	return l.FormatStr
}

func (l *loggerConfig) OutputPath() string {
	return l.OutputPathStr
}

func (l *loggerConfig) MaxFileSizeMB() int {
	return l.MaxFileSizeMBInt
}

func (l *loggerConfig) MaxFileAgeDays() int {
	return l.MaxFileAgeDaysInt
}

func (l *loggerConfig) MaxBackupFiles() int {
	return l.MaxBackupFilesInt
}

func (l *loggerConfig) IsCompressEnabled() bool {
	return l.EnableCompressed
}

type rateLimitConfig struct {
	EnabledBool         bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	WindowStr           string `yaml:"window" env-default:"1m"`
	MaxRequestsInt      int    `yaml:"max_requests" env-default:"300"`
	LoginMaxRequestsInt int    `yaml:"login_max_requests" env-default:"10"`
}

func (r *rateLimitConfig) Enabled() bool {
	return r.EnabledBool
}

func (r *rateLimitConfig) Window() time.Duration {
	duration, _ := time.ParseDuration(r.WindowStr)
	return duration
}

func (r *rateLimitConfig) MaxRequests() int {
	return r.MaxRequestsInt
}

func (r *rateLimitConfig) LoginMaxRequests() int {
	return r.LoginMaxRequestsInt
}

type uploadConfig struct {
	ProviderStr        string `yaml:"provider" env:"UPLOAD_PROVIDER" env-default:"local"`
	LocalDirStr        string `yaml:"local_dir" env-default:"./uploads"`
	PublicPathStr      string `yaml:"public_path" env-default:"/uploads"`
	S3EndpointURLStr   string `yaml:"s3_endpoint_url" env:"UPLOAD_S3_ENDPOINT_URL"`
	S3BucketNameStr    string `yaml:"s3_bucket_name" env:"UPLOAD_S3_BUCKET"`
	S3PathPrefixStr    string `yaml:"s3_path_prefix" env-default:"surat"`
	S3RegionStr        string `yaml:"s3_region" env:"UPLOAD_S3_REGION" env-default:"ap-southeast-1"`
	S3PresignURLTTLStr string `yaml:"s3_presign_url_ttl" env-default:"15m"`
	S3AccessKeyStr     string `env:"UPLOAD_S3_ACCESS_KEY" env-default:""`
	S3SecretKeyStr     string `env:"UPLOAD_S3_SECRET_KEY" env-default:""`
}

func (c *uploadConfig) Provider() string {
	return c.ProviderStr
}

func (c *uploadConfig) LocalDir() string {
	return c.LocalDirStr
}

func (c *uploadConfig) PublicPath() string {
	return c.PublicPathStr
}

func (c *uploadConfig) S3EndpointURL() string {
	return c.S3EndpointURLStr
}

func (c *uploadConfig) S3BucketName() string {
	return c.S3BucketNameStr
}

func (c *uploadConfig) S3PathPrefix() string {
	return c.S3PathPrefixStr
}

func (c *uploadConfig) S3Region() string {
	return c.S3RegionStr
}

func (c *uploadConfig) S3PresignURLTTL() time.Duration {
	duration, _ := time.ParseDuration(c.S3PresignURLTTLStr)
	return duration
}

func (c *uploadConfig) S3AccessKey() string {
	return c.S3AccessKeyStr
}

func (c *uploadConfig) S3SecretKey() string {
	return c.S3SecretKeyStr
}

type emailConfig struct {
	EnabledBool         bool   `yaml:"enabled" env:"EMAIL_ENABLED" env-default:"false"`
	ProviderStr         string `yaml:"provider" env:"EMAIL_PROVIDER" env-default:"mock"`
	DefaultFromStr      string `yaml:"default_from" env:"EMAIL_DEFAULT_FROM" env-default:"noreply@sintas.go.id"`
	SESRegionStr        string `yaml:"ses_region" env:"EMAIL_SES_REGION" env-default:"ap-southeast-1"`
	SESAccessKeyStr     string `env:"EMAIL_SES_ACCESS_KEY" env-default:""`
	SESSecretKeyStr     string `env:"EMAIL_SES_SECRET_KEY" env-default:""`
	SendGridAPIKeyStr   string `env:"SENDGRID_API_KEY" env-default:""`
	SendGridFromNameStr string `yaml:"sendgrid_from_name" env-default:"SINTAS"`
	MaxRetriesInt       int    `yaml:"max_retries" env-default:"3"`
	RetryDelayStr       string `yaml:"retry_delay" env-default:"1s"`
}

func (e *emailConfig) Enabled() bool {
	return e.EnabledBool
}

func (e *emailConfig) Provider() string {
	return e.ProviderStr
}

func (e *emailConfig) DefaultFrom() string {
	return e.DefaultFromStr
}

func (e *emailConfig) SESRegion() string {
	return e.SESRegionStr
}

func (e *emailConfig) SESAccessKey() string {
	return e.SESAccessKeyStr
}

func (e *emailConfig) SESSecretKey() string {
	return e.SESSecretKeyStr
}

func (e *emailConfig) SendGridAPIKey() string {
	return e.SendGridAPIKeyStr
}

func (e *emailConfig) SendGridFromName() string {
	return e.SendGridFromNameStr
}

func (e *emailConfig) MaxRetries() int {
	return e.MaxRetriesInt
}

func (e *emailConfig) RetryDelay() time.Duration {
	duration, _ := time.ParseDuration(e.RetryDelayStr)
	return duration
}
