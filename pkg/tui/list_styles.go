package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorBorder   = "243" // Border gray
	ColorPrimary  = "33"  // Blue for primary actions
	ColorError    = "196" // Red for errors (same as danger)
	ColorPrice    = "42"  // Green for prices
	ColorFavorite = "220" // Gold star
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	EmptyActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Bold(true)

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	// Card styles for the results list
	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite))

	CardPriceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrice))

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorFavorite))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))
)

// Button styles for the detail popup
func GetButtonStyle(primary bool) lipgloss.Style {
	bg := ColorInactive
	if primary {
		bg = ColorPrimary
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1).
		Bold(true)
}

// Dynamic styles that depend on state
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// GetPaneBorderStyle returns the border for a pane of the given outer size
func GetPaneBorderStyle(isActive bool, width, height int) lipgloss.Style {
	style := InactiveBorderStyle
	if isActive {
		style = ActiveBorderStyle
	}
	return style.
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
}
