package viewer

import (
	"testing"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopupStartsClosed(t *testing.T) {
	p := NewDetailPopup(store.New(store.NewMemoryKV(), nil), nil)

	assert.Equal(t, PopupClosed, p.State())
	_, ok := p.Content()
	assert.False(t, ok)

	_, err := p.ToggleFavorite()
	assert.ErrorIs(t, err, ErrPopupClosed)
	_, err = p.CallOwner()
	assert.ErrorIs(t, err, ErrPopupClosed)
}

func TestPopupOpenContent(t *testing.T) {
	p := NewDetailPopup(store.New(store.NewMemoryKV(), nil), nil)
	b1 := models.BuiltinListings()[0]

	p.Open(b1)
	require.True(t, p.IsOpen())

	content, ok := p.Content()
	require.True(t, ok)
	assert.Equal(t, PopupContent{
		Title:       "Sale is here!",
		Subtitle:    "Flat land near river — Perundurai, Erode",
		Description: "Good soil, clear title",
		Price:       "₹4,800,000",
		Sqft:        "2400 sqft",
		Owner:       "Mr. Kumar",
		Phone:       "+919840012345",
		TelURI:      "tel:+919840012345",
		SaveLabel:   "Save",
	}, content)

	uri, err := p.CallOwner()
	require.NoError(t, err)
	assert.Equal(t, "tel:+919840012345", uri)
}

func TestPopupLabelReflectsStoredFavorites(t *testing.T) {
	s := store.New(store.NewMemoryKV(), nil)
	require.NoError(t, s.SaveFavoriteIDs(models.NewFavoriteSet("b2")))
	p := NewDetailPopup(s, nil)

	all := models.BuiltinListings()
	p.Open(all[1])
	assert.Equal(t, LabelSaved, p.SaveLabel())
	p.Open(all[0])
	assert.Equal(t, LabelSave, p.SaveLabel())
}

func TestPopupToggleFavoriteTwiceRestores(t *testing.T) {
	s := store.New(store.NewMemoryKV(), nil)
	require.NoError(t, s.SaveFavoriteIDs(models.NewFavoriteSet("b3")))
	p := NewDetailPopup(s, nil)
	all := models.BuiltinListings()

	for _, l := range all {
		t.Run(l.ID, func(t *testing.T) {
			before := s.LoadFavoriteIDs().Has(l.ID)
			p.Open(l)

			saved, err := p.ToggleFavorite()
			require.NoError(t, err)
			assert.Equal(t, !before, saved)
			assert.Equal(t, !before, s.LoadFavoriteIDs().Has(l.ID))

			saved, err = p.ToggleFavorite()
			require.NoError(t, err)
			assert.Equal(t, before, saved)
			assert.Equal(t, before, s.LoadFavoriteIDs().Has(l.ID))
		})
	}
	assert.Equal(t, []string{"b3"}, s.LoadFavoriteIDs().IDs())
}

func TestPopupToggleSaveFailureKeepsLabel(t *testing.T) {
	p := NewDetailPopup(failingFavorites{}, nil)
	p.Open(models.BuiltinListings()[0])

	saved, err := p.ToggleFavorite()
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, saved)
	assert.Equal(t, LabelSave, p.SaveLabel())
}

func TestPopupClickRegions(t *testing.T) {
	p := NewDetailPopup(store.New(store.NewMemoryKV(), nil), nil)
	p.Open(models.BuiltinListings()[0])

	assert.False(t, p.Click(RegionContent))
	assert.True(t, p.IsOpen(), "click inside content keeps it open")

	assert.True(t, p.Click(RegionOutside))
	assert.False(t, p.IsOpen())
	assert.False(t, p.Click(RegionOutside), "already closed")

	p.Open(models.BuiltinListings()[1])
	p.Close()
	assert.Equal(t, PopupClosed, p.State())
	_, ok := p.Listing()
	assert.False(t, ok)
}
