package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production JSON encoding with ISO8601
// timestamps; level parsed from config, defaulting to info.
func New(level string) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	switch level {
	case "debug":
		atomic.SetLevel(zapcore.DebugLevel)
	case "info":
		atomic.SetLevel(zapcore.InfoLevel)
	case "warn":
		atomic.SetLevel(zapcore.WarnLevel)
	case "error":
		atomic.SetLevel(zapcore.ErrorLevel)
	default:
		atomic.SetLevel(zapcore.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "@timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	return cfg.Build()
}
