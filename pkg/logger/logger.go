package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
)

const EnvProduction = "production"

var (
	globalLogger *zap.Logger
	globalMu     sync.RWMutex
)

// Init builds the global logger for the given environment. A development
// config is used everywhere except production.
func Init(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	if env == EnvProduction {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()

	return l
}

// Logger returns the global logger. Safe for concurrent use.
func Logger() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}
