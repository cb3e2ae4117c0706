// Package logging builds the application's structured zap logger from
// configuration.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-autowire/framework/config"
)

// New creates a zap logger for cfg. A nil cfg yields console output at info
// level.
func New(cfg *config.LogConfig) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &config.LogConfig{Level: "info", Format: config.FormatConsole}
	}
	return zapConfig(cfg).Build()
}

// zapConfig maps cfg onto a zap.Config: production JSON encoding for
// config.FormatJSON, the development console encoder otherwise.
func zapConfig(cfg *config.LogConfig) zap.Config {
	var zc zap.Config
	switch cfg.Format {
	case config.FormatJSON:
		zc = zap.NewProductionConfig()
		enc := &zc.EncoderConfig
		enc.TimeKey = "time"
		enc.MessageKey = "msg"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	return zc
}

// ParseLevel converts a config level name to a zapcore.Level. Unknown names
// map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
