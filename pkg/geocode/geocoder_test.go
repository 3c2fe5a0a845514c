package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type countingGeocoder struct {
	calls  atomic.Int32
	result Result
	err    error
}

func (c *countingGeocoder) Geocode(ctx context.Context, address string) (Result, error) {
	c.calls.Add(1)
	return c.result, c.err
}

func TestStaticGeocoder(t *testing.T) {
	g := NewStatic(map[string]models.Coordinate{
		"Perundurai":        {Lat: 11.27, Lng: 77.58},
		"Perundurai, Erode": {Lat: 11.40, Lng: 77.68},
		"Erode":             {Lat: 11.34, Lng: 77.72},
		"   ":               {Lat: 1, Lng: 1},
	})

	tests := []struct {
		name    string
		address string
		want    *models.Coordinate
	}{
		{name: "exact", address: "perundurai, erode", want: &models.Coordinate{Lat: 11.40, Lng: 77.68}},
		{name: "extra whitespace", address: "  Perundurai,   Erode ", want: &models.Coordinate{Lat: 11.40, Lng: 77.68}},
		{name: "longest contained key wins", address: "SIPCOT, Perundurai, Erode, TN", want: &models.Coordinate{Lat: 11.40, Lng: 77.68}},
		{name: "shorter key", address: "Near Erode bus stand", want: &models.Coordinate{Lat: 11.34, Lng: 77.72}},
		{name: "unknown", address: "Atlantis", want: nil},
		{name: "blank", address: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Geocode(context.Background(), tt.address)
			require.NoError(t, err)
			if tt.want == nil {
				assert.False(t, res.OK())
				assert.Equal(t, StatusZeroResults, res.Status)
				return
			}
			first, ok := res.First()
			require.True(t, ok)
			assert.Equal(t, *tt.want, first)
		})
	}
}

func TestStaticGeocoderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewStatic(nil).Geocode(ctx, "Erode")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.OK())
}

func TestResultOK(t *testing.T) {
	assert.False(t, Result{Status: StatusOK}.OK(), "OK without coordinates is a failure")
	assert.False(t, Result{Status: "OVER_QUERY_LIMIT", Coordinates: []models.Coordinate{{}}}.OK())
	assert.True(t, Result{Status: StatusOK, Coordinates: []models.Coordinate{{Lat: 1}}}.OK())
}

func TestCachedGeocoder(t *testing.T) {
	inner := &countingGeocoder{result: Result{Status: StatusOK, Coordinates: []models.Coordinate{{Lat: 11.4, Lng: 77.68}}}}
	c := NewCached(inner)

	for _, addr := range []string{"Bhavani", "bhavani ", "BHAVANI"} {
		res, err := c.Geocode(context.Background(), addr)
		require.NoError(t, err)
		assert.True(t, res.OK())
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedGeocoderSkipsFailures(t *testing.T) {
	inner := &countingGeocoder{result: Result{Status: StatusZeroResults}}
	c := NewCached(inner)

	c.Geocode(context.Background(), "nowhere")
	c.Geocode(context.Background(), "nowhere")
	assert.Equal(t, int32(2), inner.calls.Load())

	inner.err = errors.New("network down")
	_, err := c.Geocode(context.Background(), "nowhere")
	assert.Error(t, err)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func newGoogleTestServer(t *testing.T, body string) *Google {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Perundurai, Erode", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	g, err := NewGoogle("test-key", "in", maps.WithBaseURL(server.URL))
	require.NoError(t, err)
	return g
}

func TestGoogleGeocoder(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		g := newGoogleTestServer(t, `{"status":"OK","results":[
			{"geometry":{"location":{"lat":11.40,"lng":77.68}}},
			{"geometry":{"location":{"lat":11.27,"lng":77.58}}}]}`)

		res, err := g.Geocode(context.Background(), "Perundurai, Erode")
		require.NoError(t, err)
		require.True(t, res.OK())
		assert.Len(t, res.Coordinates, 2)
		first, _ := res.First()
		assert.Equal(t, models.Coordinate{Lat: 11.40, Lng: 77.68}, first)
	})

	t.Run("zero results", func(t *testing.T) {
		g := newGoogleTestServer(t, `{"status":"ZERO_RESULTS","results":[]}`)

		res, err := g.Geocode(context.Background(), "Perundurai, Erode")
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, StatusZeroResults, res.Status)
	})

	t.Run("denied", func(t *testing.T) {
		g := newGoogleTestServer(t, `{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`)

		res, err := g.Geocode(context.Background(), "Perundurai, Erode")
		assert.Error(t, err)
		assert.False(t, res.OK())
	})
}

func TestNew(t *testing.T) {
	for _, name := range APIKeyEnvVars {
		t.Setenv(name, "")
	}

	_, err := New(models.GeocoderSettings{Provider: models.ProviderGoogle}, nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	t.Setenv("GOOGLE_MAPS_API_KEY", "from-env")
	g, err := New(models.GeocoderSettings{Provider: models.ProviderGoogle}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, g)

	g, err = New(models.GeocoderSettings{Provider: models.ProviderStatic, Static: map[string]models.Coordinate{"erode": {Lat: 11.34, Lng: 77.72}}}, nil)
	require.NoError(t, err)
	res, err := g.Geocode(context.Background(), "Erode")
	require.NoError(t, err)
	assert.True(t, res.OK())

	_, err = New(models.GeocoderSettings{Provider: "osm"}, nil)
	assert.ErrorContains(t, err, "unknown geocoder provider")
}
