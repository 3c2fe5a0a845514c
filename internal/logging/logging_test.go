package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "landfinder.log")

	logger, err := New(models.LoggingSettings{Level: "info", File: path}, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("listing added", zap.String("id", "u1"))
	Sync(logger)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"listing added"`)
	assert.Contains(t, lines[0], `"id":"u1"`)
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(models.LoggingSettings{Level: "warn", File: path}, true)
	require.NoError(t, err)
	logger.Debug("geocoding address")
	Sync(logger)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "geocoding address")
}

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(models.LoggingSettings{Level: "debug"}, true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(models.LoggingSettings{Level: "chatty", File: filepath.Join(t.TempDir(), "x.log")}, false)
	assert.ErrorContains(t, err, "invalid log level")
}
