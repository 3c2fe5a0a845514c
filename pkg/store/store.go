package store

import (
	"encoding/json"
	"fmt"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// Keys used in the key-value backend
const (
	ListingsKey  = "lf_saved_plots"
	FavoritesKey = "lf_favs"
)

// Store persists user-added listings and the favorite ids.
// Loads never fail: a missing key or unreadable value yields an empty result.
type Store struct {
	kv     KeyValue
	logger *zap.Logger
}

// New wraps a key-value backend
func New(kv KeyValue, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// LoadListings returns the saved user-added listings
func (s *Store) LoadListings() []models.Listing {
	listings := []models.Listing{}
	if !s.load(ListingsKey, &listings) || listings == nil {
		return []models.Listing{}
	}
	return listings
}

// SaveListings replaces the saved listings with listings
func (s *Store) SaveListings(listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	return s.save(ListingsKey, listings)
}

// ClearListings removes every saved listing
func (s *Store) ClearListings() error {
	if err := s.kv.Delete(ListingsKey); err != nil {
		return fmt.Errorf("failed to clear saved listings: %w", err)
	}
	s.logger.Info("cleared saved listings")
	return nil
}

// LoadFavoriteIDs returns the saved favorite set
func (s *Store) LoadFavoriteIDs() *models.FavoriteSet {
	var ids []string
	if !s.load(FavoritesKey, &ids) {
		return models.NewFavoriteSet()
	}
	return models.NewFavoriteSet(ids...)
}

// SaveFavoriteIDs replaces the saved favorite set
func (s *Store) SaveFavoriteIDs(favs *models.FavoriteSet) error {
	return s.save(FavoritesKey, favs.IDs())
}

// Close releases the backend
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) load(key string, out interface{}) bool {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("store read failed, using empty value", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("malformed stored value, using empty value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	s.logger.Debug("saved value", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
