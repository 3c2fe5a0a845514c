package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SortKey selects the result order
type SortKey string

const (
	SortRelevance        SortKey = "relevance"
	SortPriceAsc         SortKey = "price_asc"
	SortPriceDesc        SortKey = "price_desc"
	SortPricePerSqftAsc  SortKey = "psf_asc"
	SortPricePerSqftDesc SortKey = "psf_desc"
)

// SortKeys lists every sort key in display order
var SortKeys = []SortKey{
	SortRelevance,
	SortPriceAsc,
	SortPriceDesc,
	SortPricePerSqftAsc,
	SortPricePerSqftDesc,
}

// Label returns a human readable name for the sort key
func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Price: low to high"
	case SortPriceDesc:
		return "Price: high to low"
	case SortPricePerSqftAsc:
		return "Price/sqft: low to high"
	case SortPricePerSqftDesc:
		return "Price/sqft: high to low"
	default:
		return "Relevance"
	}
}

// ParseSortKey accepts the short keys and the long price_per_area_* aliases
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return SortRelevance, nil
	case "price_asc":
		return SortPriceAsc, nil
	case "price_desc":
		return SortPriceDesc, nil
	case "psf_asc", "price_per_area_asc":
		return SortPricePerSqftAsc, nil
	case "psf_desc", "price_per_area_desc":
		return SortPricePerSqftDesc, nil
	default:
		return SortRelevance, fmt.Errorf("unknown sort key: %s", s)
	}
}

// Unbounded is the value of an absent upper bound
var Unbounded = math.Inf(1)

// Query describes a filter and an order. Bounds are inclusive.
type Query struct {
	Text     string
	MinPrice float64
	MaxPrice float64
	MinSqft  float64
	MaxSqft  float64
	Sort     SortKey
}

// NewQuery returns a query that matches everything in repository order
func NewQuery() Query {
	return Query{
		MaxPrice: Unbounded,
		MaxSqft:  Unbounded,
		Sort:     SortRelevance,
	}
}

// IsEmpty reports whether q would match everything in repository order
func (q Query) IsEmpty() bool {
	n := q.normalized()
	return strings.TrimSpace(n.Text) == "" &&
		n.MinPrice == 0 && math.IsInf(n.MaxPrice, 1) &&
		n.MinSqft == 0 && math.IsInf(n.MaxSqft, 1) &&
		n.Sort == SortRelevance
}

// normalized treats a zero upper bound as unbounded and an empty sort as relevance.
// A zero max is what an untouched form field produces.
func (q Query) normalized() Query {
	if q.MaxPrice == 0 {
		q.MaxPrice = Unbounded
	}
	if q.MaxSqft == 0 {
		q.MaxSqft = Unbounded
	}
	if q.Sort == "" {
		q.Sort = SortRelevance
	}
	return q
}

// Fields are the raw values of the search form
type Fields struct {
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	MinPrice string `json:"min_price,omitempty" yaml:"min_price,omitempty"`
	MaxPrice string `json:"max_price,omitempty" yaml:"max_price,omitempty"`
	MinSqft  string `json:"min_sqft,omitempty" yaml:"min_sqft,omitempty"`
	MaxSqft  string `json:"max_sqft,omitempty" yaml:"max_sqft,omitempty"`
	Sort     string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// QueryFromFields builds a query from form input. Empty numeric fields take
// their default (0 for minimums, unbounded for maximums).
func QueryFromFields(f Fields) (Query, error) {
	q := NewQuery()
	q.Text = strings.TrimSpace(f.Text)

	var err error
	if q.MinPrice, err = ParseBound(f.MinPrice, 0); err != nil {
		return q, fmt.Errorf("min price: %w", err)
	}
	if q.MaxPrice, err = ParseBound(f.MaxPrice, Unbounded); err != nil {
		return q, fmt.Errorf("max price: %w", err)
	}
	if q.MinSqft, err = ParseBound(f.MinSqft, 0); err != nil {
		return q, fmt.Errorf("min area: %w", err)
	}
	if q.MaxSqft, err = ParseBound(f.MaxSqft, Unbounded); err != nil {
		return q, fmt.Errorf("max area: %w", err)
	}
	if q.Sort, err = ParseSortKey(f.Sort); err != nil {
		return q, err
	}

	return q, nil
}

// ParseBound parses a numeric bound; blank input yields def.
// Thousands separators and a leading rupee sign are accepted.
func ParseBound(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return def, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return def, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return def, fmt.Errorf("must not be negative: %q", s)
	}
	return v, nil
}
