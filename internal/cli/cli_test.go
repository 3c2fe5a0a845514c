package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = out, errOut
	t.Cleanup(func() {
		Stdout, Stderr = oldOut, oldErr
		SetGlobalFlags(false, false, false)
	})
	return out, errOut
}

func TestPrintHelpers(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintSuccess("added %s", "u1")
	PrintWarning("careful")
	assert.Equal(t, "✓ added u1\n", out.String())
	assert.Equal(t, "⚠ careful\n", errOut.String())

	out.Reset()
	errOut.Reset()
	SetGlobalFlags(true, true, false)
	PrintInfo("hidden")
	PrintError("boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "ERROR: boom\n", errOut.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "\n", want: false},
		{input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			captureOutput(t)
			oldIn := Stdin
			Stdin = strings.NewReader(tt.input)
			defer func() { Stdin = oldIn }()

			got, err := Confirm("Clear saved listings?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmSkipped(t *testing.T) {
	captureOutput(t)
	SetGlobalFlags(false, false, true)
	ok, err := Confirm("Clear saved listings?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListingViews(t *testing.T) {
	views := NewListingViews(models.BuiltinListings()[:2], models.NewFavoriteSet("b2"))
	require.Len(t, views, 2)
	assert.False(t, views[0].Favorite)
	assert.True(t, views[1].Favorite)
	assert.True(t, views[0].Builtin)
	assert.Equal(t, 2000.0, views[0].PricePerSqft)
	assert.Len(t, views[0].Geohash, 7)
}

func TestOutputResultsFlattensListing(t *testing.T) {
	views := NewListingViews(models.BuiltinListings()[:1], nil)

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", views))
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "b1", decoded[0]["id"])
	assert.Equal(t, false, decoded[0]["favorite"])

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", views))
	var fromYAML []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "Mr. Kumar", fromYAML[0]["owner"])

	assert.Error(t, OutputResults(&buf, "xml", views))
}

func TestWriteListingTable(t *testing.T) {
	var buf bytes.Buffer
	WriteListingTable(&buf, NewListingViews(models.BuiltinListings(), models.NewFavoriteSet("b3")))
	out := buf.String()
	assert.Contains(t, out, "₹4,800,000")
	assert.Contains(t, out, "Kodumudi")
	assert.Equal(t, 1, strings.Count(out, "★"))

	buf.Reset()
	WriteListingTable(&buf, nil)
	assert.Equal(t, "No listings\n", buf.String())
}

func TestWriteListingDetail(t *testing.T) {
	var buf bytes.Buffer
	WriteListingDetail(&buf, NewListingViews(models.BuiltinListings()[1:2], nil)[0])
	out := buf.String()
	assert.Contains(t, out, "Corner plot — Erode centre")
	assert.Contains(t, out, "tel:+919952298765")
	assert.Contains(t, out, "1800 sqft")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat("csv"))
	assert.NoError(t, ValidateSortKey("price_per_area_desc"))
	assert.ErrorContains(t, ValidateSortKey("newest"), "psf_asc")
	assert.NoError(t, ValidateListingID("u1a2b3c"))
	assert.Error(t, ValidateListingID(" "))
	assert.Error(t, ValidateListingID("../b1"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Perundurai", TruncateString("Perundurai", 10))
	assert.Equal(t, "Perund...", TruncateString("Perundurai, Erode", 9))
	assert.Equal(t, "₹₹", TruncateString("₹₹₹₹", 2))
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{goos: "darwin", name: "open", args: []string{"tel:1"}},
		{goos: "linux", name: "xdg-open", args: []string{"tel:1"}},
		{goos: "windows", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "tel:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := (&Opener{GOOS: tt.goos}).Command("tel:1")
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestOpenerCall(t *testing.T) {
	var ran []string
	var copied string
	o := &Opener{
		GOOS: "linux",
		run: func(name string, args ...string) error {
			ran = append(ran, name+" "+strings.Join(args, " "))
			return nil
		},
		copy: func(text string) error { copied = text; return nil },
	}

	res, err := o.Call("tel:+919840012345", "+919840012345")
	require.NoError(t, err)
	assert.Equal(t, CallResult{Opened: true, Copied: true}, res)
	assert.Equal(t, []string{"xdg-open tel:+919840012345"}, ran)
	assert.Equal(t, "+919840012345", copied)

	o.run = func(string, ...string) error { return errors.New("no handler") }
	res, err = o.Call("tel:1", "1")
	require.NoError(t, err, "clipboard fallback is enough")
	assert.False(t, res.Opened)

	o.copy = func(string) error { return errors.New("no clipboard") }
	_, err = o.Call("tel:1", "1")
	assert.ErrorContains(t, err, "no handler")
}
