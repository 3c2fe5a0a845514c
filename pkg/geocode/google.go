package geocode

import (
	"context"
	"fmt"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"googlemaps.github.io/maps"
)

// Google resolves addresses with the Google Geocoding API
type Google struct {
	client *maps.Client
	region string
}

// NewGoogle creates a client for apiKey. region biases results to a ccTLD
// such as "in"; extra options are passed to the maps client.
func NewGoogle(apiKey, region string, opts ...maps.ClientOption) (*Google, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Google{client: client, region: region}, nil
}

func (g *Google) Geocode(ctx context.Context, address string) (Result, error) {
	req := &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return Result{Status: StatusError}, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return Result{Status: StatusZeroResults}, nil
	}

	coords := make([]models.Coordinate, 0, len(results))
	for _, r := range results {
		coords = append(coords, models.Coordinate{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		})
	}
	return Result{Status: StatusOK, Coordinates: coords}, nil
}
