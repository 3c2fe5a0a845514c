package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// headerHeight is the number of lines renderHeader produces
const headerHeight = 1

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")). // Pink/magenta color
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal))

	logo := logoStyle.Render("◆ LandFinder")
	if title == "" {
		return lipgloss.NewStyle().PaddingLeft(1).Width(width).MaxHeight(headerHeight).Render(logo)
	}

	// Logo on the left, title right-aligned in the remaining width
	contentWidth := width - 2 // -2 for left and right padding
	gap := max(contentWidth-lipgloss.Width(logo)-lipgloss.Width(title), 1)
	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		logo,
		lipgloss.NewStyle().Width(gap).Render(""),
		titleStyle.Render(title),
	)

	return lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		MaxHeight(headerHeight).
		Render(headerContent)
}
