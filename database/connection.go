package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/realboxofme/sintas/pkg/log"
)

type Config interface {
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
	EnableLog() bool
	LogLevel() string
	SlowThreshold() time.Duration
}

func getDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host(),
		cfg.User(),
		cfg.Password(),
		cfg.Name(),
		cfg.Port(),
		cfg.SSLMode(),
		cfg.TimeZone())
}

func newLogger(l log.Logger, cfg Config) logger.Interface {
	logLevel := logger.Silent
	if cfg.EnableLog() {
		switch cfg.LogLevel() {
		case "info":
			logLevel = logger.Info
		case "error":
			logLevel = logger.Error
		case "silent":
			logLevel = logger.Silent
		default:
			logLevel = logger.Warn
		}
	}

	return logger.New(l, logger.Config{
		SlowThreshold:             cfg.SlowThreshold(),
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}

func Connect(cfg Config, l log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  getDSN(cfg),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{},
		Logger:         newLogger(l, cfg),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sDB.SetMaxIdleConns(cfg.MaxIdleConns())
	sDB.SetMaxOpenConns(cfg.MaxOpenConns())
	sDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sDB, err := db.DB()
	if err != nil {
		return err
	}
	return sDB.Close()
}
