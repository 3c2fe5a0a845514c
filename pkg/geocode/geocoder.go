// Package geocode resolves free-text addresses to coordinates.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// Status values reported in a Result
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusError       = "ERROR"
)

// Environment variables consulted for the Google API key, in order
var APIKeyEnvVars = []string{"LANDFINDER_MAPS_API_KEY", "GOOGLE_MAPS_API_KEY"}

// ErrNoAPIKey is returned when the google provider has no key configured
var ErrNoAPIKey = errors.New("no maps API key configured")

// Result is the outcome of a lookup. Any status other than OK is a failure.
type Result struct {
	Status      string
	Coordinates []models.Coordinate
}

// OK reports whether the lookup succeeded with at least one coordinate
func (r Result) OK() bool {
	return r.Status == StatusOK && len(r.Coordinates) > 0
}

// First returns the best match
func (r Result) First() (models.Coordinate, bool) {
	if !r.OK() {
		return models.Coordinate{}, false
	}
	return r.Coordinates[0], true
}

// Geocoder resolves an address. Implementations must be safe to call from
// a goroutine other than the one that created them.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// New builds the geocoder selected in settings, wrapped in a cache
func New(settings models.GeocoderSettings, logger *zap.Logger) (Geocoder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var inner Geocoder
	switch settings.Provider {
	case models.ProviderGoogle, "":
		key := settings.APIKey
		if key == "" {
			key = apiKeyFromEnv()
		}
		if key == "" {
			return nil, fmt.Errorf("%w: set geocoder.api_key or %s", ErrNoAPIKey, strings.Join(APIKeyEnvVars, "/"))
		}
		g, err := NewGoogle(key, settings.Region)
		if err != nil {
			return nil, err
		}
		inner = g
	case models.ProviderStatic:
		inner = NewStatic(settings.Static)
	default:
		return nil, fmt.Errorf("unknown geocoder provider: %s", settings.Provider)
	}

	logger.Debug("geocoder ready", zap.String("provider", settings.Provider))
	return NewCached(inner), nil
}

func apiKeyFromEnv() string {
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// normalizeAddress lowercases and collapses whitespace
func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

// Cached remembers successful lookups per normalized address
type Cached struct {
	inner Geocoder
	mu    sync.Mutex
	hits  map[string]Result
}

// NewCached wraps inner with a cache
func NewCached(inner Geocoder) *Cached {
	return &Cached{inner: inner, hits: make(map[string]Result)}
}

func (c *Cached) Geocode(ctx context.Context, address string) (Result, error) {
	key := normalizeAddress(address)

	c.mu.Lock()
	if res, ok := c.hits[key]; ok {
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	res, err := c.inner.Geocode(ctx, address)
	if err == nil && res.OK() {
		c.mu.Lock()
		c.hits[key] = res
		c.mu.Unlock()
	}
	return res, err
}
