package logging

import (
	"strings"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

// New builds the process logger. Development mode switches to the console
// encoder with stack traces on warnings.
func New(settings configuration.LoggingSettings) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if settings.Development {
		config = zap.NewDevelopmentConfig()
	}

	level, err := ParseLevel(settings.Level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, xerrors.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// ParseLevel accepts the zap level names; an empty value means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}

	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, xerrors.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}
