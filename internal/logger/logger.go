// Package logger holds the process-wide zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "dompet"

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger on first call; later calls are no-ops.
// "production" writes JSON lines with ISO8601 timestamps, "test" writes
// nothing, and any other env writes colored console output at debug level.
func Init(env string) {
	once.Do(func() {
		sugar = build(env).Sugar()
	})
}

func build(env string) *zap.Logger {
	var cfg zap.Config
	switch env {
	case "test":
		return zap.NewNop()
	case "production":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.InitialFields = map[string]interface{}{"service": serviceName}

	base, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return base
}

// Get returns the global logger, falling back to the development
// configuration when Init was never called.
func Get() *zap.SugaredLogger {
	Init("development")
	return sugar
}

// With returns a child logger carrying the given key/value pairs.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return Get().With(keysAndValues...)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
