package cli

import (
	"fmt"
	"strings"

	"github.com/landfinder/landfinder-terminal/pkg/search"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateSortKey validates the sort flag
func ValidateSortKey(key string) error {
	if _, err := search.ParseSortKey(key); err != nil {
		names := make([]string, len(search.SortKeys))
		for i, k := range search.SortKeys {
			names[i] = string(k)
		}
		return fmt.Errorf("invalid sort key: %s (must be one of: %s)", key, strings.Join(names, ", "))
	}
	return nil
}

// ValidateListingID validates an id argument
func ValidateListingID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("listing id cannot be empty")
	}
	if strings.ContainsAny(id, " \t\n/\\") {
		return fmt.Errorf("listing id contains invalid characters: %q", id)
	}
	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
