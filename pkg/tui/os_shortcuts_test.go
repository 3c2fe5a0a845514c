package tui

import (
	"runtime"
	"strings"
	"testing"
)

func withGOOS(t *testing.T, value string) {
	t.Helper()
	old := goos
	goos = value
	t.Cleanup(func() { goos = old })
}

func TestGetOS(t *testing.T) {
	os := GetOS()

	switch os {
	case OSMac, OSLinux, OSWindows, OSUnknown:
	default:
		t.Errorf("GetOS() returned invalid OS type: %v", os)
	}

	switch runtime.GOOS {
	case "darwin":
		if os != OSMac {
			t.Errorf("Expected OSMac for darwin, got %v", os)
		}
	case "linux":
		if os != OSLinux {
			t.Errorf("Expected OSLinux for linux, got %v", os)
		}
	case "windows":
		if os != OSWindows {
			t.Errorf("Expected OSWindows for windows, got %v", os)
		}
	}
}

func TestShortcutKey_Get(t *testing.T) {
	key := ShortcutKey{Mac: "cmd+s", Linux: "alt+s", Default: "ctrl+s"}

	tests := []struct {
		name string
		goos string
		want string
	}{
		{"mac specific", "darwin", "cmd+s"},
		{"linux specific", "linux", "alt+s"},
		{"windows falls back to default", "windows", "ctrl+s"},
		{"unknown os uses default", "freebsd", "ctrl+s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withGOOS(t, tt.goos)
			if got := key.Get(); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatShortcutForHelp(t *testing.T) {
	tests := []struct {
		name string
		goos string
		key  ShortcutKey
		want string
	}{
		{"alt on linux", "linux", ShortcutKey{Default: "alt+r"}, "M-r"},
		{"alt on mac", "darwin", ShortcutKey{Default: "alt+r"}, "⌥r"},
		{"ctrl", "darwin", ShortcutKey{Default: "ctrl+c"}, "^c"},
		{"shift", "linux", ShortcutKey{Default: "shift+tab"}, "⇧tab"},
		{"plain key", "linux", ShortcutKey{Default: "X"}, "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withGOOS(t, tt.goos)
			if got := FormatShortcutForHelp(tt.key); got != tt.want {
				t.Errorf("FormatShortcutForHelp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetShortcutHelp(t *testing.T) {
	withGOOS(t, "linux")

	help := GetShortcutHelp("reset", Shortcuts.Reset)
	if help != "M-r reset" {
		t.Errorf("GetShortcutHelp() = %q", help)
	}
}

func TestShortcutsAreDistinct(t *testing.T) {
	for _, goosValue := range []string{"darwin", "linux", "windows"} {
		t.Run(goosValue, func(t *testing.T) {
			withGOOS(t, goosValue)

			keys := map[string]string{
				"Search":     Shortcuts.Search.Get(),
				"Add":        Shortcuts.Add.Get(),
				"Save":       Shortcuts.Save.Get(),
				"Call":       Shortcuts.Call.Get(),
				"Submit":     Shortcuts.Submit.Get(),
				"Reset":      Shortcuts.Reset.Get(),
				"ResetData":  Shortcuts.ResetData.Get(),
				"ZoomIn":     Shortcuts.ZoomIn.Get(),
				"ZoomOut":    Shortcuts.ZoomOut.Get(),
				"NextMarker": Shortcuts.NextMarker.Get(),
				"PrevMarker": Shortcuts.PrevMarker.Get(),
				"Quit":       Shortcuts.Quit.Get(),
			}
			seen := map[string]string{}
			for name, key := range keys {
				if strings.TrimSpace(key) == "" {
					t.Errorf("%s has no binding", name)
				}
				if other, ok := seen[key]; ok {
					t.Errorf("%s and %s share %q", name, other, key)
				}
				seen[key] = name
			}
		})
	}
}
