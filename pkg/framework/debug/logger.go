// Package debug provides logging and profiling for plugin hosts and tools.
// Nothing in here may be called from the audio callback.
package debug

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions selects the logger level and encoding.
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds a zap logger. JSON output uses the production config,
// console output the development config.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch strings.ToLower(opts.Format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zap.Logger {
	return zap.NewNop()
}
