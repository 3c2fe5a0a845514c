package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// TableFormatter helps format tabular output
type TableFormatter struct {
	writer *tabwriter.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	return &TableFormatter{writer: tw}
}

// Header writes the table header
func (t *TableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.writer, strings.Join(columns, "\t"))
	fmt.Fprintln(t.writer, strings.Repeat("-", 80))
}

// Row writes a table row
func (t *TableFormatter) Row(values ...string) {
	fmt.Fprintln(t.writer, strings.Join(values, "\t"))
}

// Flush writes the buffered table to output
func (t *TableFormatter) Flush() {
	t.writer.Flush()
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		// callers format text themselves; this is a fallback
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// ListingView is a listing as printed by commands
type ListingView struct {
	models.Listing `yaml:",inline"`
	PricePerSqft   float64 `json:"price_per_sqft" yaml:"price_per_sqft"`
	Geohash        string  `json:"geohash" yaml:"geohash"`
	Favorite       bool    `json:"favorite" yaml:"favorite"`
	Builtin        bool    `json:"builtin" yaml:"builtin"`
}

// NewListingViews decorates listings with derived fields
func NewListingViews(ls []models.Listing, favs *models.FavoriteSet) []ListingView {
	views := make([]ListingView, 0, len(ls))
	for _, l := range ls {
		views = append(views, ListingView{
			Listing:      l,
			PricePerSqft: math.Round(l.PricePerSqft()*100) / 100,
			Geohash:      l.Geohash(),
			Favorite:     favs.Has(l.ID),
			Builtin:      models.IsBuiltinID(l.ID),
		})
	}
	return views
}

// WriteListingTable prints listings as a table. Favorites are starred.
func WriteListingTable(w io.Writer, views []ListingView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No listings")
		return
	}

	table := NewTableFormatter(w)
	table.Header("ID", "TITLE", "AREA", "PRICE", "SQFT", "₹/SQFT", "")
	for _, v := range views {
		star := ""
		if v.Favorite {
			star = "★"
		}
		table.Row(
			v.ID,
			TruncateString(v.Title, 28),
			TruncateString(v.Area, 24),
			models.FormatINR(v.Price),
			fmt.Sprintf("%g", v.Sqft),
			models.FormatINR(v.PricePerSqft),
			star,
		)
	}
	table.Flush()
}

// WriteListingDetail prints one listing the way the detail popup shows it
func WriteListingDetail(w io.Writer, v ListingView) {
	fmt.Fprintf(w, "%s — %s\n", v.Title, v.Area)
	if v.Desc != "" {
		fmt.Fprintf(w, "%s\n", v.Desc)
	}
	fmt.Fprintln(w)

	table := NewTableFormatter(w)
	table.Row("ID:", v.ID)
	table.Row("Price:", models.FormatINR(v.Price))
	table.Row("Area:", models.FormatSqft(v.Sqft))
	table.Row("Per sqft:", models.FormatINR(v.PricePerSqft))
	table.Row("Location:", v.Position().String()+" ("+v.Geohash+")")
	table.Row("Owner:", v.Owner)
	table.Row("Phone:", v.Phone+" <"+v.TelURI()+">")
	if v.Favorite {
		table.Row("Saved:", "yes")
	}
	table.Flush()
}

// TruncateString truncates a string to maxLen runes
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
