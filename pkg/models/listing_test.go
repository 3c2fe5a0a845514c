package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "millions", amount: 4800000, want: "₹4,800,000"},
		{name: "thousands", amount: 1500, want: "₹1,500"},
		{name: "small", amount: 999, want: "₹999"},
		{name: "rounds fractions", amount: 1234.6, want: "₹1,235"},
		{name: "beyond int64", amount: 1e20, want: "₹100,000,000,000,000,000,000"},
		{name: "largest accepted", amount: MaxAmount, want: "₹1,000,000,000,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(tt.amount))
		})
	}
}

func TestPricePerSqft(t *testing.T) {
	l := Listing{Price: 4800000, Sqft: 2400}
	assert.Equal(t, 2000.0, l.PricePerSqft())

	assert.Equal(t, 0.0, Listing{Price: 100}.PricePerSqft())
}

func TestNewListingID(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	id := NewListingID(now)

	assert.True(t, strings.HasPrefix(id, "u"))
	assert.Len(t, id, 7)
	assert.Equal(t, id, NewListingID(now), "same clock reading should give the same id")
}

func TestUniqueListingID(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	base := NewListingID(now)

	t.Run("free id is used as is", func(t *testing.T) {
		assert.Equal(t, base, UniqueListingID(now, func(string) bool { return false }))
	})

	t.Run("taken id gets a suffix", func(t *testing.T) {
		id := UniqueListingID(now, func(candidate string) bool { return candidate == base })
		assert.NotEqual(t, base, id)
		assert.True(t, strings.HasPrefix(id, base+"-"))
	})
}

func TestListingGeohash(t *testing.T) {
	b1 := BuiltinListings()[0]
	hash := b1.Geohash()

	assert.Len(t, hash, 7)
	// Nearby plots in the Erode district share the leading cells
	assert.Equal(t, hash[:3], BuiltinListings()[1].Geohash()[:3])
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 11.4, Lng: 77.68}.Valid())
	assert.False(t, Coordinate{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lng: -181}.Valid())
}

func TestBuiltinListings(t *testing.T) {
	builtins := BuiltinListings()
	assert.Len(t, builtins, 3)

	seen := make(map[string]bool)
	for _, l := range builtins {
		assert.False(t, seen[l.ID], "duplicate builtin id %s", l.ID)
		seen[l.ID] = true
		assert.True(t, l.Position().Valid())
		assert.True(t, IsBuiltinID(l.ID))
	}
	assert.False(t, IsBuiltinID("u123456"))

	// Callers get their own copy
	builtins[0].Title = "changed"
	assert.Equal(t, "Flat land near river", BuiltinListings()[0].Title)
}
