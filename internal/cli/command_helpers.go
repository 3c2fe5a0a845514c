package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/landfinder/landfinder-terminal/internal/logging"
	"github.com/landfinder/landfinder-terminal/pkg/files"
	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/listings"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/store"
	"go.uber.org/zap"
)

// CommandContext manages project validation and the collaborators a
// command needs. Collaborators are opened lazily and released by Close.
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	Verbose     bool
	Ephemeral   bool // keep saved listings and favorites in memory only
	validated   bool

	logger *zap.Logger
	store  *store.Store
	repo   *listings.Repository
}

// NewCommandContext creates a new command context
func NewCommandContext() (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: files.LandfinderDir,
	}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no %s directory found. Run 'landfinder init' first", files.LandfinderDir)
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// LoadEnv reads .env files from the working directory and the project
// directory. Variables already set in the environment win.
func (c *CommandContext) LoadEnv() error {
	for _, path := range []string{files.EnvFile, filepath.Join(c.ProjectPath, files.EnvFile)} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Logger returns the command's logger, building it on first use
func (c *CommandContext) Logger() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}

	logger, err := logging.New(c.LoadSettingsWithDefault().Logging, c.Verbose)
	if err != nil {
		PrintWarning("logging disabled: %v", err)
		logger = zap.NewNop()
	}
	c.logger = logger
	return logger
}

// Store opens the configured storage backend
func (c *CommandContext) Store() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	storage := c.LoadSettingsWithDefault().Storage
	if c.Ephemeral {
		storage.Backend = models.BackendMemory
	}
	kv, err := store.Open(storage, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	c.store = store.New(kv, c.Logger())
	return c.store, nil
}

// Repository loads the built-in and saved listings
func (c *CommandContext) Repository() (*listings.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}

	s, err := c.Store()
	if err != nil {
		return nil, err
	}
	c.repo = listings.New(models.BuiltinListings(), s, c.Logger())
	return c.repo, nil
}

// Geocoder builds the configured geocoder. API keys may come from .env.
func (c *CommandContext) Geocoder() (geocode.Geocoder, error) {
	if err := c.LoadEnv(); err != nil {
		return nil, err
	}
	return geocode.New(c.LoadSettingsWithDefault().Geocoder, c.Logger())
}

// Close releases the store and flushes the logger
func (c *CommandContext) Close() error {
	var err error
	if c.store != nil {
		err = c.store.Close()
		c.store = nil
		c.repo = nil
	}
	logging.Sync(c.logger)
	return err
}
