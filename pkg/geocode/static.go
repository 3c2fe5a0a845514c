package geocode

import (
	"context"
	"sort"
	"strings"

	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// Static answers from a fixed address table. An address matches an entry
// when it equals the entry or contains it; the longest entry wins.
type Static struct {
	entries map[string]models.Coordinate
	keys    []string // longest first
}

// NewStatic builds a static geocoder; table keys are matched case-insensitively
func NewStatic(table map[string]models.Coordinate) *Static {
	s := &Static{entries: make(map[string]models.Coordinate, len(table))}
	for addr, c := range table {
		key := normalizeAddress(addr)
		if key == "" {
			continue
		}
		s.entries[key] = c
		s.keys = append(s.keys, key)
	}
	sort.Slice(s.keys, func(i, j int) bool {
		if len(s.keys[i]) != len(s.keys[j]) {
			return len(s.keys[i]) > len(s.keys[j])
		}
		return s.keys[i] < s.keys[j]
	})
	return s
}

func (s *Static) Geocode(ctx context.Context, address string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Status: StatusError}, err
	}

	query := normalizeAddress(address)
	if query == "" {
		return Result{Status: StatusZeroResults}, nil
	}
	if c, ok := s.entries[query]; ok {
		return Result{Status: StatusOK, Coordinates: []models.Coordinate{c}}, nil
	}
	for _, key := range s.keys {
		if strings.Contains(query, key) {
			return Result{Status: StatusOK, Coordinates: []models.Coordinate{s.entries[key]}}, nil
		}
	}
	return Result{Status: StatusZeroResults}, nil
}
