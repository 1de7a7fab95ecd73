package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Provider string

const (
	Redis  Provider = "redis"
	Memory Provider = "memory"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

type Error struct {
	Operation string
	Key       string
	Err       error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s failed for key %q: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s failed: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Logger takes alternating key value pairs after the message.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
}

type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl. A zero ttl uses the configured default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// DeletePattern removes every key matching a glob pattern such as "dashboard:*".
	DeletePattern(ctx context.Context, pattern string) error
	// Increment adds delta to an integer counter and refreshes its ttl.
	Increment(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error)

	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error

	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

type Factory struct {
	logger Logger
}

func NewCacheFactory(logger Logger) *Factory {
	return &Factory{logger: logger}
}

func (f *Factory) CreateCache(provider Provider, config *Config) (Client, error) {
	switch provider {
	case Redis:
		setRedisDefaults(config)
		c, err := NewRedisCache(config, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		f.logger.Info("Redis cache created", "host", config.Host, "port", config.Port, "db", config.DB)
		return c, nil
	case Memory:
		setMemoryDefaults(config)
		f.logger.Info("Memory cache created", "default_ttl", config.DefaultTTL.String())
		return NewMemoryCache(config, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", provider)
	}
}

func setRedisDefaults(config *Config) {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 6379
	}
	if config.PoolSize == 0 {
		config.PoolSize = 10
	}
	if config.MinIdleConns == 0 {
		config.MinIdleConns = 2
	}
	if config.DialTimeout == 0 {
		config.DialTimeout = 5 * time.Second
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 3 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 3 * time.Second
	}
	if config.DefaultTTL == 0 {
		config.DefaultTTL = time.Hour
	}
}

func setMemoryDefaults(config *Config) {
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}
}
