package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger sets up the logging configuration. Subsequent calls are no-ops.
func InitializeLogger(production bool, level string) *zap.Logger {
	loggerOnce.Do(func() {
		var cfg zap.Config
		if production {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)

		l, err := cfg.Build()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger = l
		zap.ReplaceGlobals(l)
	})
	return logger
}

// GetLogger retrieves the global logger, falling back to a no-op logger before initialization.
func GetLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
