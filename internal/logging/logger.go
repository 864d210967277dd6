// Package logging builds the zap logger shared by the whole service.
//
// Go Learning Note — "go.uber.org/zap":
// zap writes structured, levelled logs with very little allocation. Fields
// are typed (zap.Int, zap.String, zap.Duration) rather than formatted into
// the message, so log processors can filter on them. The logger is built
// once in main and passed to every constructor that needs it; nothing reads
// a package-level global.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a human-readable console logger
// when development is set, filtered at level ("debug", "info", "warn",
// "error").
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return logger.With(zap.String("service", "sunnyway")), nil
}
