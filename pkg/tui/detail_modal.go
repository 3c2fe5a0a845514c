package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/landfinder/landfinder-terminal/pkg/viewer"
)

// modalWidth is the preferred outer width of the detail popup
const modalWidth = 56

// renderDetailModal renders the open popup. maxWidth bounds the box.
func renderDetailModal(c viewer.PopupContent, maxWidth int) string {
	width := min(modalWidth, max(maxWidth-2, 24))
	inner := width - 4 // border and padding

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))
	label := HeaderStyle.Render

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(CardTitleStyle.Render(wordwrap.String(c.Subtitle, inner)))
	b.WriteString("\n\n")
	if c.Description != "" {
		b.WriteString(NormalStyle.Render(wordwrap.String(c.Description, inner)))
		b.WriteString("\n\n")
	}
	b.WriteString(label("Price  ") + CardPriceStyle.Render(c.Price) + "\n")
	b.WriteString(label("Area   ") + NormalStyle.Render(c.Sqft) + "\n")
	b.WriteString(label("Owner  ") + NormalStyle.Render(c.Owner) + "\n")
	b.WriteString(label("Phone  ") + NormalStyle.Render(c.Phone) + DescriptionStyle.Render("  "+c.TelURI) + "\n\n")

	saveStyle := GetButtonStyle(false)
	if c.SaveLabel == viewer.LabelSaved {
		saveStyle = saveStyle.Background(lipgloss.Color(ColorFavorite)).Foreground(lipgloss.Color(ColorDark))
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		saveStyle.Render(FormatShortcutForHelp(Shortcuts.Save)+" "+c.SaveLabel), "  ",
		GetButtonStyle(true).Render(FormatShortcutForHelp(Shortcuts.Call)+" Call"), "  ",
		GetButtonStyle(false).Render(FormatShortcutForHelp(Shortcuts.Cancel)+" Close"),
	)
	b.WriteString(buttons)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}
