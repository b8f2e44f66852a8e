package logger

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxLogger int

const loggerKey ctxLogger = 0

var root = zap.NewNop().Sugar()

// Run builds the process logger with the given level and makes it the
// fallback for Log. Unknown levels fall back to "info".
func Run(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	zl, err := cfg.Build()
	if err != nil {
		log.Printf("logger: failed building zap logger: %v", err)
		return root
	}

	root = zl.Sugar()
	return root
}

// WithLogger puts a request/operation scoped logger into the context.
func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Log returns the logger from the context or the process logger.
func Log(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return root
}
