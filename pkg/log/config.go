package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Environment string `yaml:"environment"`
	ServiceName string `yaml:"service_name"`

	OutputPath string `yaml:"output_path"`

	FileMaxSizeInMB  int  `yaml:"file_max_size_mb"`
	FileMaxAgeInDays int  `yaml:"file_max_age_days"`
	FileMaxBackups   int  `yaml:"file_max_backups"`
	CompressRotated  bool `yaml:"compress_rotated"`

	DisableCaller     bool            `yaml:"disable_caller"`
	DisableStacktrace bool            `yaml:"disable_stacktrace"`
	SamplingConfig    *SamplingConfig `yaml:"sampling"`
}

type SamplingConfig struct {
	Initial    int           `yaml:"initial"`
	Thereafter int           `yaml:"thereafter"`
	Tick       time.Duration `yaml:"tick"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validFormats = []string{"json", "console"}
)

func (c *Config) Validate() error {
	if !lo.Contains(validLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("invalid log level %q, must be one of %s", c.Level, strings.Join(validLevels, ", "))
	}
	if !lo.Contains(validFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("invalid log format %q, must be json or console", c.Format)
	}
	if c.OutputPath != "stdout" && c.OutputPath != "stderr" {
		if c.FileMaxSizeInMB <= 0 {
			return fmt.Errorf("file_max_size_mb must be greater than 0")
		}
		if c.FileMaxAgeInDays <= 0 {
			return fmt.Errorf("file_max_age_days must be greater than 0")
		}
		if c.FileMaxBackups < 0 {
			return fmt.Errorf("file_max_backups must not be negative")
		}
	}
	if s := c.SamplingConfig; s != nil && (s.Initial <= 0 || s.Thereafter <= 0) {
		return fmt.Errorf("sampling initial and thereafter must be greater than 0")
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Format:           "json",
		Environment:      "development",
		ServiceName:      "sintas",
		OutputPath:       "stdout",
		FileMaxSizeInMB:  100,
		FileMaxAgeInDays: 30,
		FileMaxBackups:   10,
		CompressRotated:  true,
	}
}

func DevelopmentConfig() Config {
	config := DefaultConfig()
	config.Level = "debug"
	config.Format = "console"
	return config
}

func ProductionConfig(serviceName string) Config {
	config := DefaultConfig()
	config.Environment = "production"
	config.ServiceName = serviceName
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.SamplingConfig = &SamplingConfig{
		Initial:    100,
		Thereafter: 100,
	}
	return config
}
