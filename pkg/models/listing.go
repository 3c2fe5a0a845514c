package models

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// DefaultDescription is used when a listing is added without a description
const DefaultDescription = "Added via app"

// Coordinate is a geographic position in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the coordinate lies within WGS84 bounds
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Listing represents a land plot offered for sale.
// The JSON field names are the persisted format and must not change.
type Listing struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Area  string  `json:"area" yaml:"area"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
	Sqft  float64 `json:"sqft" yaml:"sqft"`
	Price float64 `json:"price" yaml:"price"`
	Owner string  `json:"owner" yaml:"owner"`
	Phone string  `json:"phone" yaml:"phone"`
	Desc  string  `json:"desc" yaml:"desc"`
}

// Position returns the listing's coordinate
func (l Listing) Position() Coordinate {
	return Coordinate{Lat: l.Lat, Lng: l.Lng}
}

// PricePerSqft returns price divided by floor area, or 0 for a zero area
func (l Listing) PricePerSqft() float64 {
	if l.Sqft == 0 {
		return 0
	}
	return l.Price / l.Sqft
}

// Geohash returns the 7 character geohash cell containing the listing
func (l Listing) Geohash() string {
	return geohash.EncodeWithPrecision(l.Lat, l.Lng, 7)
}

// TelURI returns the tel: link for the owner's phone number
func (l Listing) TelURI() string {
	return "tel:" + l.Phone
}

// MaxAmount is the largest price or area accepted for a listing
const MaxAmount = 1e15

// FormatINR formats a whole-rupee amount with thousands separators, e.g. ₹4,800,000
func FormatINR(amount float64) string {
	amount = math.Round(amount)
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return "₹∞"
	}
	if math.Abs(amount) >= math.MaxInt64 {
		n, _ := big.NewFloat(amount).Int(nil)
		return "₹" + humanize.BigComma(n)
	}
	return "₹" + humanize.Comma(int64(amount))
}

// FormatSqft formats a floor area for display
func FormatSqft(sqft float64) string {
	return strconv.FormatFloat(sqft, 'f', -1, 64) + " sqft"
}

// NewListingID derives an id from the current time: "u" followed by the
// last six base-36 digits of the Unix millisecond clock.
func NewListingID(now time.Time) string {
	s := strconv.FormatInt(now.UnixMilli(), 36)
	if len(s) > 6 {
		s = s[len(s)-6:]
	}
	return "u" + s
}

// UniqueListingID returns NewListingID(now), extended with a random suffix
// while taken reports the id as already used.
func UniqueListingID(now time.Time, taken func(id string) bool) string {
	id := NewListingID(now)
	for taken != nil && taken(id) {
		id = NewListingID(now) + "-" + uuid.NewString()[:4]
	}
	return id
}
