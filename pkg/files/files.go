package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	LandfinderDir = ".landfinder"
	SettingsFile  = "settings.yaml"
	EnvFile       = ".env"
)

// InitProjectStructure creates the project directory and writes default
// settings unless a settings file already exists.
func InitProjectStructure() error {
	if err := os.MkdirAll(LandfinderDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", LandfinderDir, err)
	}

	if _, err := os.Stat(SettingsPath()); err == nil {
		return nil
	}

	return WriteSettings(models.DefaultSettings())
}

// ProjectExists reports whether the project directory is present
func ProjectExists() bool {
	info, err := os.Stat(LandfinderDir)
	return err == nil && info.IsDir()
}

// SettingsPath returns the path of the settings file
func SettingsPath() string {
	return filepath.Join(LandfinderDir, SettingsFile)
}

// ResolvePath maps a path from the settings file to a filesystem path.
// Relative paths live inside the project directory.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(LandfinderDir, path)
}

// ReadSettings loads settings from the project directory. Fields missing
// from the file keep their default values.
func ReadSettings() (*models.Settings, error) {
	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

// WriteSettings saves settings to the project directory
func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(LandfinderDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// WriteFileAtomic replaces path with content through a temp file and rename
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
