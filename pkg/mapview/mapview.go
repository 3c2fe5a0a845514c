// Package mapview keeps one map marker per displayed listing and provides a
// terminal map canvas to draw them on.
package mapview

import "github.com/landfinder/landfinder-terminal/pkg/models"

// Zoom bounds accepted by SetZoom
const (
	MinZoom = 1
	MaxZoom = 20
)

// MarkerOptions describes a marker to place on a map
type MarkerOptions struct {
	ID       string
	Title    string
	Position models.Coordinate
	OnClick  func()
}

// Marker is a placed marker
type Marker interface {
	ID() string
	Remove()
}

// MapView is the mapping collaborator the presenter draws on
type MapView interface {
	Center() models.Coordinate
	Zoom() int
	PanTo(models.Coordinate)
	SetZoom(int)
	AddMarker(MarkerOptions) Marker
}

// Focus pans view to c and sets the zoom level
func Focus(view MapView, c models.Coordinate, zoom int) {
	view.PanTo(c)
	view.SetZoom(zoom)
}

func clampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
