// Package logging builds the application's zap logger. Output goes to a
// file because the terminal UI owns stdout and stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/landfinder/landfinder-terminal/pkg/files"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from settings. verbose forces debug level. An empty
// log file disables logging.
func New(settings models.LoggingSettings, verbose bool) (*zap.Logger, error) {
	if settings.File == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if settings.Level != "" {
		level, err := zap.ParseAtomicLevel(settings.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
		}
		config.Level = level
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	path := files.ResolvePath(settings.File)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Sync flushes logger, ignoring the error file descriptors return on some
// platforms
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
