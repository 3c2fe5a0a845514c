// Package viewer holds the application state behind every user surface: the
// repository, the displayed subset, the map markers, the detail popup and
// the add-listing workflow.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/listings"
	"github.com/landfinder/landfinder-terminal/pkg/mapview"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/search"
	"go.uber.org/zap"
)

// ErrListingNotFound is returned when selecting an unknown id
var ErrListingNotFound = errors.New("listing not found")

// ListPresenter renders the displayed listings as a list
type ListPresenter interface {
	Render(visible []models.Listing)
}

// Config wires the collaborators of an App
type Config struct {
	Repository     *listings.Repository
	Favorites      FavoritesStore
	Map            mapview.MapView
	List           ListPresenter
	Geocoder       geocode.Geocoder
	MapSettings    models.MapSettings
	GeocodeTimeout time.Duration
	Logger         *zap.Logger
}

// App is the single owner of viewer state
type App struct {
	repo     *listings.Repository
	markers  *mapview.Presenter
	list     ListPresenter
	popup    *DetailPopup
	add      *AddWorkflow
	settings models.MapSettings
	logger   *zap.Logger

	query   search.Query
	visible []models.Listing
}

// New builds an App from cfg
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	list := cfg.List
	if list == nil {
		list = nopList{}
	}
	settings := cfg.MapSettings
	defaults := models.DefaultSettings().Map
	if settings.SelectZoom == 0 {
		settings.SelectZoom = defaults.SelectZoom
	}
	if settings.SearchZoom == 0 {
		settings.SearchZoom = defaults.SearchZoom
	}

	a := &App{
		repo:     cfg.Repository,
		list:     list,
		popup:    NewDetailPopup(cfg.Favorites, logger),
		add:      NewAddWorkflow(cfg.Repository, cfg.Geocoder, cfg.GeocodeTimeout, logger),
		settings: settings,
		logger:   logger,
		query:    search.NewQuery(),
	}
	a.markers = mapview.NewPresenter(cfg.Map, a.open, logger)
	return a
}

// Start shows every listing
func (a *App) Start() {
	a.show(a.repo.All())
}

// Search filters and sorts the repository and moves the map to the first
// result
func (a *App) Search(q search.Query) []models.Listing {
	a.query = q
	a.show(search.FilterSort(a.repo.All(), q))

	if target, ok := search.FocusTarget(a.visible); ok {
		mapview.Focus(a.markers.View(), target, a.settings.SearchZoom)
	}
	a.logger.Debug("search", zap.String("text", q.Text), zap.String("sort", string(q.Sort)), zap.Int("results", len(a.visible)))
	return a.Visible()
}

// ResetSearch clears the query and shows every listing
func (a *App) ResetSearch() {
	a.query = search.NewQuery()
	a.Start()
}

// Select opens the popup for id and focuses the map on it
func (a *App) Select(id string) error {
	l, ok := a.repo.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListingNotFound, id)
	}
	a.open(l)
	return nil
}

// ToggleFavorite flips the favorite flag of the listing in the popup
func (a *App) ToggleFavorite() (bool, error) {
	return a.popup.ToggleFavorite()
}

// ResetToBuiltins removes every user listing, closes state that may refer
// to them and reapplies the current query
func (a *App) ResetToBuiltins() error {
	if err := a.repo.ResetToBuiltins(); err != nil {
		return fmt.Errorf("failed to clear saved listings: %w", err)
	}
	if l, ok := a.popup.Listing(); ok && !a.repo.Contains(l.ID) {
		a.popup.Close()
	}
	a.add.Dismiss()
	a.show(search.FilterSort(a.repo.All(), a.query))
	a.logger.Info("reset to built-in listings")
	return nil
}

// SubmitAdd validates the add form and returns the geocode job to run
func (a *App) SubmitAdd(f Form) (*GeocodeJob, error) {
	return a.add.Submit(f)
}

// CompleteAdd applies a geocode outcome. A new listing gets a marker, the
// query is cleared so the list shows every listing again, and the popup
// opens on it.
func (a *App) CompleteAdd(o GeocodeOutcome) (models.Listing, error) {
	l, err := a.add.Resolve(o)
	if err != nil {
		return models.Listing{}, err
	}

	a.markers.Add(l)
	a.query = search.NewQuery()
	a.visible = a.repo.All()
	a.list.Render(a.Visible())
	a.open(l)
	return l, nil
}

// Visible returns the displayed listings
func (a *App) Visible() []models.Listing {
	return append([]models.Listing(nil), a.visible...)
}

// Query returns the last applied query
func (a *App) Query() search.Query {
	return a.query
}

func (a *App) Popup() *DetailPopup {
	return a.popup
}

func (a *App) AddForm() *AddWorkflow {
	return a.add
}

func (a *App) Markers() *mapview.Presenter {
	return a.markers
}

func (a *App) Repository() *listings.Repository {
	return a.repo
}

func (a *App) show(visible []models.Listing) {
	a.visible = visible
	a.markers.Render(visible)
	a.list.Render(a.Visible())
}

// open is the shared handler for marker clicks and list selection
func (a *App) open(l models.Listing) {
	mapview.Focus(a.markers.View(), l.Position(), a.settings.SelectZoom)
	a.popup.Open(l)
}

type nopList struct{}

func (nopList) Render([]models.Listing) {}
