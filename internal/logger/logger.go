// Package logger provides structured logging using Zap.
package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. "test" silences everything below
// warn level. All other environments use a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		case "test":
			cfg := zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			base, err = cfg.Build()
		default:
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// StdLog returns a standard library logger that writes to the global logger
// at the given level. It lets libraries that only accept a *log.Logger, such
// as the GORM logger, share the same sink.
func StdLog(level zapcore.Level) *log.Logger {
	l, err := zap.NewStdLogAt(Get().Desugar(), level)
	if err != nil {
		return zap.NewStdLog(Get().Desugar())
	}
	return l
}

// Replace swaps the global logger for l and returns a function that puts the
// previous one back.
func Replace(l *zap.Logger) (restore func()) {
	Init("development")
	prev := sugar
	sugar = l.Sugar()
	return func() { sugar = prev }
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
