package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Storage  StorageSettings  `yaml:"storage"`
	Map      MapSettings      `yaml:"map"`
	Geocoder GeocoderSettings `yaml:"geocoder"`
	Logging  LoggingSettings  `yaml:"logging"`
}

// StorageSettings selects the key-value backend for saved listings and favorites
type StorageSettings struct {
	Backend string `yaml:"backend"` // "file", "sqlite" or "memory"
	Path    string `yaml:"path"`    // relative paths resolve inside the project dir
}

// MapSettings controls the initial map view and focus zoom levels
type MapSettings struct {
	Center     Coordinate `yaml:"center"`
	Zoom       int        `yaml:"zoom"`
	SelectZoom int        `yaml:"select_zoom"` // zoom used when a listing is opened
	SearchZoom int        `yaml:"search_zoom"` // zoom used for the first search result
}

// GeocoderSettings configures address lookup
type GeocoderSettings struct {
	Provider string        `yaml:"provider"` // "google" or "static"
	APIKey   string        `yaml:"api_key,omitempty"`
	Region   string        `yaml:"region,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
	// Static maps addresses to coordinates for the static provider
	Static map[string]Coordinate `yaml:"static,omitempty"`
}

// LoggingSettings controls the log file
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Geocoder providers
const (
	ProviderGoogle = "google"
	ProviderStatic = "static"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Storage: StorageSettings{
			Backend: BackendFile,
			Path:    "storage.json",
		},
		Map: MapSettings{
			Center:     Coordinate{Lat: 11.34, Lng: 77.73},
			Zoom:       11,
			SelectZoom: 15,
			SearchZoom: 13,
		},
		Geocoder: GeocoderSettings{
			Provider: ProviderGoogle,
			Region:   "in",
			Timeout:  10 * time.Second,
		},
		Logging: LoggingSettings{
			Level: "info",
			File:  "landfinder.log",
		},
	}
}
