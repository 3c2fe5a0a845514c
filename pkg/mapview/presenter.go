package mapview

import (
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// Presenter syncs the markers on a MapView with the displayed listings,
// keyed by listing id.
type Presenter struct {
	view     MapView
	onSelect func(models.Listing)
	logger   *zap.Logger

	markers  map[string]Marker
	listings map[string]models.Listing
	order    []string
}

// NewPresenter creates a presenter drawing on view. onSelect runs when a
// marker is clicked.
func NewPresenter(view MapView, onSelect func(models.Listing), logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{
		view:     view,
		onSelect: onSelect,
		logger:   logger,
		markers:  make(map[string]Marker),
		listings: make(map[string]models.Listing),
	}
}

// OnSelect replaces the marker click handler
func (p *Presenter) OnSelect(fn func(models.Listing)) {
	p.onSelect = fn
}

// View returns the underlying map
func (p *Presenter) View() MapView {
	return p.view
}

// Render removes every marker and creates one per visible listing
func (p *Presenter) Render(visible []models.Listing) {
	p.clear()
	for _, l := range visible {
		p.place(l)
	}
	p.logger.Debug("rendered markers", zap.Int("count", len(p.order)))
}

// Add places a single marker without rebuilding the others. A marker
// already shown for the same id is replaced.
func (p *Presenter) Add(l models.Listing) {
	p.remove(l.ID)
	p.place(l)
}

// Click simulates a click on the marker for id
func (p *Presenter) Click(id string) bool {
	l, ok := p.listings[id]
	if !ok {
		return false
	}
	p.selectListing(l)
	return true
}

// IDs returns the ids of the current markers in placement order
func (p *Presenter) IDs() []string {
	return append([]string(nil), p.order...)
}

// Len returns the number of markers
func (p *Presenter) Len() int {
	return len(p.order)
}

func (p *Presenter) selectListing(l models.Listing) {
	if p.onSelect != nil {
		p.onSelect(l)
	}
}

func (p *Presenter) place(l models.Listing) {
	listing := l
	m := p.view.AddMarker(MarkerOptions{
		ID:       l.ID,
		Title:    l.Title,
		Position: l.Position(),
		OnClick:  func() { p.selectListing(listing) },
	})
	p.markers[l.ID] = m
	p.listings[l.ID] = listing
	p.order = append(p.order, l.ID)
}

func (p *Presenter) remove(id string) {
	m, ok := p.markers[id]
	if !ok {
		return
	}
	m.Remove()
	delete(p.markers, id)
	delete(p.listings, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Presenter) clear() {
	for _, id := range p.order {
		p.markers[id].Remove()
	}
	p.markers = make(map[string]Marker)
	p.listings = make(map[string]models.Listing)
	p.order = p.order[:0]
}
