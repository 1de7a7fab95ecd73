package common

import (
	"fmt"

	"github.com/realboxofme/sintas/pkg/log"
)

// Logger is the key/value logger taken by response logging, pkg/cache and pkg/email.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Printf(format string, args ...interface{})
}

// LoggerAdapter adapts pkg/log.Logger to common.Logger interface
type LoggerAdapter struct {
	logger log.Logger
}

func NewLoggerAdapter(logger log.Logger) Logger {
	return &LoggerAdapter{logger: logger}
}

// toFields pairs up keys and values. A trailing key without a value is dropped.
func toFields(kv []interface{}) []log.Field {
	fields := make([]log.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kv[i])
		}
		if err, isErr := kv[i+1].(error); isErr {
			fields = append(fields, log.String(key, err.Error()))
			continue
		}
		fields = append(fields, log.Any(key, kv[i+1]))
	}
	return fields
}

func (a *LoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, toFields(fields)...)
}

func (a *LoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, toFields(fields)...)
}

func (a *LoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, toFields(fields)...)
}

func (a *LoggerAdapter) Warn(msg string, fields ...interface{}) {
	a.logger.Warn(msg, toFields(fields)...)
}

func (a *LoggerAdapter) Infof(format string, args ...interface{}) {
	a.logger.Infof(format, args...)
}

func (a *LoggerAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Errorf(format, args...)
}

func (a *LoggerAdapter) Printf(format string, args ...interface{}) {
	a.logger.Printf(format, args...)
}
