package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel converts a configured level name to a zap level. An empty name
// means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger described by the log section
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
