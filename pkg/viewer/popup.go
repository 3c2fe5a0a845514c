package viewer

import (
	"errors"
	"fmt"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// Popup title shown for every listing
const PopupTitle = "Sale is here!"

// Favorite toggle labels
const (
	LabelSaved = "Saved"
	LabelSave  = "Save"
)

// ErrPopupClosed is returned by actions that need an open popup
var ErrPopupClosed = errors.New("detail popup is not open")

// PopupState is the state of the detail popup
type PopupState int

const (
	PopupClosed PopupState = iota
	PopupOpen
)

func (s PopupState) String() string {
	if s == PopupOpen {
		return "open"
	}
	return "closed"
}

// Region identifies where a click landed relative to the popup
type Region int

const (
	RegionOutside Region = iota
	RegionContent
)

// FavoritesStore persists the favorite listing ids
type FavoritesStore interface {
	LoadFavoriteIDs() *models.FavoriteSet
	SaveFavoriteIDs(*models.FavoriteSet) error
}

// PopupContent holds the display fields of an open popup
type PopupContent struct {
	Title       string
	Subtitle    string
	Description string
	Price       string
	Sqft        string
	Owner       string
	Phone       string
	TelURI      string
	SaveLabel   string
}

// DetailPopup shows one listing at a time and toggles its favorite flag
type DetailPopup struct {
	state     PopupState
	listing   models.Listing
	saved     bool
	favorites FavoritesStore
	logger    *zap.Logger
}

// NewDetailPopup creates a closed popup
func NewDetailPopup(favorites FavoritesStore, logger *zap.Logger) *DetailPopup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailPopup{favorites: favorites, logger: logger}
}

func (p *DetailPopup) State() PopupState {
	return p.state
}

func (p *DetailPopup) IsOpen() bool {
	return p.state == PopupOpen
}

// Listing returns the listing shown, if open
func (p *DetailPopup) Listing() (models.Listing, bool) {
	if !p.IsOpen() {
		return models.Listing{}, false
	}
	return p.listing, true
}

// Open shows l, replacing whatever was shown before
func (p *DetailPopup) Open(l models.Listing) {
	p.state = PopupOpen
	p.listing = l
	p.saved = p.favorites.LoadFavoriteIDs().Has(l.ID)
	p.logger.Debug("popup opened", zap.String("id", l.ID), zap.Bool("saved", p.saved))
}

// Close hides the popup. Closing a closed popup does nothing.
func (p *DetailPopup) Close() {
	p.state = PopupClosed
	p.listing = models.Listing{}
	p.saved = false
}

// Click handles a click while the popup is shown. Only clicks outside the
// content close it. It reports whether the popup closed.
func (p *DetailPopup) Click(region Region) bool {
	if !p.IsOpen() || region != RegionOutside {
		return false
	}
	p.Close()
	return true
}

// SaveLabel returns the favorite toggle label for the shown listing
func (p *DetailPopup) SaveLabel() string {
	if p.saved {
		return LabelSaved
	}
	return LabelSave
}

// ToggleFavorite flips the shown listing's membership in the favorites set,
// persists the set and returns the new membership.
func (p *DetailPopup) ToggleFavorite() (bool, error) {
	if !p.IsOpen() {
		return false, ErrPopupClosed
	}

	favs := p.favorites.LoadFavoriteIDs()
	saved := favs.Toggle(p.listing.ID)
	if err := p.favorites.SaveFavoriteIDs(favs); err != nil {
		return p.saved, fmt.Errorf("failed to save favorites: %w", err)
	}

	p.saved = saved
	p.logger.Info("favorite toggled", zap.String("id", p.listing.ID), zap.Bool("saved", saved))
	return saved, nil
}

// CallOwner returns the tel: link for the shown listing's owner
func (p *DetailPopup) CallOwner() (string, error) {
	if !p.IsOpen() {
		return "", ErrPopupClosed
	}
	return p.listing.TelURI(), nil
}

// Content returns the display fields, or false when closed
func (p *DetailPopup) Content() (PopupContent, bool) {
	if !p.IsOpen() {
		return PopupContent{}, false
	}
	l := p.listing
	return PopupContent{
		Title:       PopupTitle,
		Subtitle:    l.Title + " — " + l.Area,
		Description: l.Desc,
		Price:       models.FormatINR(l.Price),
		Sqft:        models.FormatSqft(l.Sqft),
		Owner:       l.Owner,
		Phone:       l.Phone,
		TelURI:      l.TelURI(),
		SaveLabel:   p.SaveLabel(),
	}, true
}
