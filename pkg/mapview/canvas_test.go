package mapview

import (
	"strings"
	"testing"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var erode = models.Coordinate{Lat: 11.341, Lng: 77.719}

func newTestCanvas(t *testing.T) (*Canvas, *Presenter, *[]string) {
	t.Helper()
	c := NewCanvas(erode, 11)
	c.SetSize(60, 21)
	var clicked []string
	p := NewPresenter(c, func(l models.Listing) { clicked = append(clicked, l.ID) }, nil)
	p.Render(models.BuiltinListings())
	return c, p, &clicked
}

func TestProjectionRoundTrip(t *testing.T) {
	for _, pos := range []models.Coordinate{erode, {Lat: 0, Lng: 0}, {Lat: -33.86, Lng: 151.2}, {Lat: 60.1, Lng: -149.9}} {
		for _, zoom := range []int{1, 11, 15} {
			x, y := project(pos, zoom)
			back := unproject(x, y, zoom)
			assert.InDelta(t, pos.Lat, back.Lat, 1e-9)
			assert.InDelta(t, pos.Lng, back.Lng, 1e-9)
		}
	}
}

func TestCanvasCell(t *testing.T) {
	c, _, _ := newTestCanvas(t)

	col, row, ok := c.Cell(erode)
	require.True(t, ok)
	assert.Equal(t, 30, col)
	assert.Equal(t, 10, row)

	// north-west of the centre
	col, row, ok = c.Cell(models.Coordinate{Lat: 11.399, Lng: 77.676})
	require.True(t, ok)
	assert.Less(t, col, 30)
	assert.Less(t, row, 10)

	_, _, ok = c.Cell(models.Coordinate{Lat: 13.08, Lng: 80.27})
	assert.False(t, ok, "Chennai is off screen at zoom 11")
}

func TestCanvasViewState(t *testing.T) {
	c := NewCanvas(erode, 99)
	assert.Equal(t, MaxZoom, c.Zoom())
	c.SetZoom(0)
	assert.Equal(t, MinZoom, c.Zoom())

	target := models.Coordinate{Lat: 11.4, Lng: 77.68}
	Focus(c, target, 15)
	assert.Equal(t, target, c.Center())
	assert.Equal(t, 15, c.Zoom())

	c.Pan(8, 0)
	assert.Greater(t, c.Center().Lng, target.Lng)
	assert.InDelta(t, target.Lat, c.Center().Lat, 1e-9)
	c.Pan(0, -4)
	assert.Greater(t, c.Center().Lat, target.Lat)
}

func TestCanvasClickAt(t *testing.T) {
	c, _, clicked := newTestCanvas(t)

	col, row, ok := c.Cell(models.Coordinate{Lat: 11.281, Lng: 77.807})
	require.True(t, ok)

	id, ok := c.MarkerAt(col+1, row)
	require.True(t, ok, "neighbouring cell still hits")
	assert.Equal(t, "b3", id)

	assert.True(t, c.ClickAt(col, row))
	assert.Equal(t, []string{"b3"}, *clicked)
	assert.Equal(t, "b3", c.Selected())

	assert.False(t, c.ClickAt(0, 19))
	assert.Len(t, *clicked, 1)
}

func TestCanvasCycleAndActivate(t *testing.T) {
	c, _, clicked := newTestCanvas(t)

	assert.False(t, c.Activate())
	assert.Equal(t, "b1", c.Cycle(1))
	assert.Equal(t, "b2", c.Cycle(1))
	assert.Equal(t, "b3", c.Cycle(1))
	assert.Equal(t, "b1", c.Cycle(1))
	assert.Equal(t, "b3", c.Cycle(-1))

	assert.True(t, c.Activate())
	assert.Equal(t, []string{"b3"}, *clicked)
}

func TestCanvasCycleFromNothingBackwards(t *testing.T) {
	c, _, _ := newTestCanvas(t)
	assert.Equal(t, "b3", c.Cycle(-1))

	empty := NewCanvas(erode, 11)
	assert.Equal(t, "", empty.Cycle(1))
}

func TestCanvasRemoveClearsSelection(t *testing.T) {
	c, p, _ := newTestCanvas(t)
	require.True(t, c.Select("b2"))

	p.Render(models.BuiltinListings()[:1])
	assert.Equal(t, []string{"b1"}, c.MarkerIDs())
	assert.Equal(t, "", c.Selected())
	assert.False(t, c.Select("b2"))
}

func TestCanvasRender(t *testing.T) {
	c, _, _ := newTestCanvas(t)

	out := c.Render()
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, 3, strings.Count(out, string(markerGlyph)))
	assert.Contains(t, lines[20], "zoom 11")
	assert.Contains(t, lines[20], "3 markers")

	c.Select("b1")
	out = c.Render()
	assert.Equal(t, 2, strings.Count(out, string(markerGlyph)))
	assert.Equal(t, 1, strings.Count(out, string(selectedGlyph)))
	assert.Contains(t, out, "Flat land near river")
}
