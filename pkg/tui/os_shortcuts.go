package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// goos is overridden in tests
var goos = runtime.GOOS

// GetOS returns the current operating system type
func GetOS() OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether a key message string triggers this shortcut.
// The default binding is always accepted as well.
func (s ShortcutKey) Matches(key string) bool {
	return key == s.Get() || key == s.Default
}

// Shortcuts contains all keyboard shortcuts with OS-specific variations
var Shortcuts = struct {
	// Navigation
	Search        ShortcutKey
	SwitchPane    ShortcutKey
	ReverseSwitch ShortcutKey

	// Listing operations
	Add       ShortcutKey
	Save      ShortcutKey
	Call      ShortcutKey
	Submit    ShortcutKey
	Reset     ShortcutKey
	ResetData ShortcutKey

	// Map
	ZoomIn     ShortcutKey
	ZoomOut    ShortcutKey
	NextMarker ShortcutKey
	PrevMarker ShortcutKey

	// System
	Quit    ShortcutKey
	Cancel  ShortcutKey
	Confirm ShortcutKey
}{
	Search: ShortcutKey{
		Default: "/",
	},
	SwitchPane: ShortcutKey{
		Default: "tab",
	},
	ReverseSwitch: ShortcutKey{
		Mac:     "shift+tab",
		Linux:   "shift+tab",
		Windows: "backtab", // Windows terminal compatibility
		Default: "shift+tab",
	},

	Add: ShortcutKey{
		Default: "a",
	},
	Save: ShortcutKey{
		Default: "s",
	},
	Call: ShortcutKey{
		Default: "c",
	},
	Submit: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Reset: ShortcutKey{
		Mac:     "ctrl+r",
		Linux:   "alt+r",
		Windows: "alt+r",
		Default: "ctrl+r",
	},
	ResetData: ShortcutKey{
		Default: "X",
	},

	ZoomIn: ShortcutKey{
		Default: "+",
	},
	ZoomOut: ShortcutKey{
		Default: "-",
	},
	NextMarker: ShortcutKey{
		Default: "n",
	},
	PrevMarker: ShortcutKey{
		Default: "N",
	},

	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
	Cancel: ShortcutKey{
		Default: "esc",
	},
	Confirm: ShortcutKey{
		Default: "enter",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	shortcut := key.Get()
	// Use M- prefix for Alt on Linux/Windows (common terminal convention)
	if GetOS() == OSLinux || GetOS() == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")
	return shortcut
}

// GetShortcutHelp returns formatted help text for a shortcut
func GetShortcutHelp(name string, key ShortcutKey) string {
	return FormatShortcutForHelp(key) + " " + name
}
