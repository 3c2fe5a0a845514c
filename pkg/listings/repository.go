// Package listings holds the in-memory sequence of listings shown by the
// application: the built-in plots followed by the ones the user added.
package listings

import (
	"errors"
	"fmt"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// ErrDuplicateID is returned when appending a listing whose id is already used
var ErrDuplicateID = errors.New("listing id already exists")

// Persister stores the user-added subset of the repository
type Persister interface {
	LoadListings() []models.Listing
	SaveListings([]models.Listing) error
	ClearListings() error
}

// Repository is the single source of truth for what is displayed
type Repository struct {
	builtins  []models.Listing
	userAdded []models.Listing
	store     Persister
	logger    *zap.Logger
}

// New builds a repository from builtins and whatever the store holds.
// Saved listings that reuse an existing id are skipped.
func New(builtins []models.Listing, store Persister, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		builtins: append([]models.Listing(nil), builtins...),
		store:    store,
		logger:   logger,
	}

	for _, l := range store.LoadListings() {
		if r.Contains(l.ID) {
			logger.Warn("skipping saved listing with duplicate id", zap.String("id", l.ID))
			continue
		}
		r.userAdded = append(r.userAdded, l)
	}

	logger.Info("loaded listings",
		zap.Int("builtin", len(r.builtins)),
		zap.Int("saved", len(r.userAdded)))
	return r
}

// All returns built-ins then user-added listings. The slice is a copy.
func (r *Repository) All() []models.Listing {
	out := make([]models.Listing, 0, len(r.builtins)+len(r.userAdded))
	out = append(out, r.builtins...)
	return append(out, r.userAdded...)
}

// UserAdded returns only the listings added by the user
func (r *Repository) UserAdded() []models.Listing {
	return append([]models.Listing{}, r.userAdded...)
}

// Len returns the number of listings
func (r *Repository) Len() int {
	return len(r.builtins) + len(r.userAdded)
}

// Find looks a listing up by id
func (r *Repository) Find(id string) (models.Listing, bool) {
	for _, l := range r.builtins {
		if l.ID == id {
			return l, true
		}
	}
	for _, l := range r.userAdded {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

// Contains reports whether id is in use
func (r *Repository) Contains(id string) bool {
	_, ok := r.Find(id)
	return ok
}

// Append adds a user listing and persists it. The store's current content
// is reloaded first so the write keeps whatever it already had.
func (r *Repository) Append(l models.Listing) error {
	if l.ID == "" {
		return fmt.Errorf("listing has no id")
	}
	if r.Contains(l.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, l.ID)
	}

	saved := r.store.LoadListings()
	saved = append(saved, l)
	if err := r.store.SaveListings(saved); err != nil {
		return fmt.Errorf("failed to persist listing %s: %w", l.ID, err)
	}

	r.userAdded = append(r.userAdded, l)
	r.logger.Info("listing added", zap.String("id", l.ID), zap.String("area", l.Area))
	return nil
}

// ResetToBuiltins drops every user listing from memory and from the store
func (r *Repository) ResetToBuiltins() error {
	if err := r.store.ClearListings(); err != nil {
		return err
	}
	r.userAdded = nil
	return nil
}
