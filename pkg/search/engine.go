package search

import (
	"sort"
	"strings"

	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// FilterSort returns the listings matching q, ordered by q.Sort.
// The input is never modified.
func FilterSort(listings []models.Listing, q Query) []models.Listing {
	q = q.normalized()
	text := strings.ToLower(strings.TrimSpace(q.Text))

	filtered := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, text, q) {
			filtered = append(filtered, l)
		}
	}

	if less := comparator(q.Sort, filtered); less != nil {
		sort.SliceStable(filtered, less)
	}
	return filtered
}

// matches checks the text condition and all four range conditions
func matches(l models.Listing, text string, q Query) bool {
	if text != "" &&
		!strings.Contains(strings.ToLower(l.Area), text) &&
		!strings.Contains(strings.ToLower(l.Title), text) {
		return false
	}

	if l.Price < q.MinPrice || l.Price > q.MaxPrice {
		return false
	}
	if l.Sqft < q.MinSqft || l.Sqft > q.MaxSqft {
		return false
	}

	return true
}

// comparator returns the less function for key, or nil to keep repository order
func comparator(key SortKey, s []models.Listing) func(i, j int) bool {
	switch key {
	case SortPriceAsc:
		return func(i, j int) bool { return s[i].Price < s[j].Price }
	case SortPriceDesc:
		return func(i, j int) bool { return s[i].Price > s[j].Price }
	case SortPricePerSqftAsc:
		return func(i, j int) bool { return s[i].PricePerSqft() < s[j].PricePerSqft() }
	case SortPricePerSqftDesc:
		return func(i, j int) bool { return s[i].PricePerSqft() > s[j].PricePerSqft() }
	default:
		return nil
	}
}

// FocusTarget returns where the map should move after a search: the first
// result, if any.
func FocusTarget(results []models.Listing) (models.Coordinate, bool) {
	if len(results) == 0 {
		return models.Coordinate{}, false
	}
	return results[0].Position(), true
}
