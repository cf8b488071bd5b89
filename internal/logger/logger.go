// Package logger builds the zerolog logger the rest of the application
// shares. Output goes to stderr and, when a log file is configured, to a
// rotating file via lumberjack.
package logger

import (
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/config"
)

// Logger wraps the configured zerolog instance.
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance.
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// New creates a logger from the application log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
