package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeDialog ConfirmationType = iota // Full dialog with border and centered layout
	ConfirmTypeAlert                          // Dialog with a single OK button
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string           // Title for dialog type (optional)
	Message     string           // Main confirmation message
	Warning     string           // Optional warning text (shown in orange)
	Details     []string         // Optional detail lines
	Destructive bool             // If true, Yes is red, No is green
	Type        ConfirmationType // Visual style
	YesLabel    string           // Custom label for Yes (default: "Yes")
	NoLabel     string           // Custom label for No (default: "No")
	Width       int              // Width for dialog type
}

// ConfirmationModel handles confirmation prompts and blocking alerts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
		if m.config.Type == ConfirmTypeAlert {
			m.config.YesLabel = "OK"
		}
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// ShowAlert shows a blocking message that is dismissed with enter or esc
func (m *ConfirmationModel) ShowAlert(title, message string) {
	m.Show(ConfirmationConfig{
		Title:   title,
		Message: message,
		Type:    ConfirmTypeAlert,
	}, nil, nil)
}

// ShowDialog shows a bordered yes/no dialog
func (m *ConfirmationModel) ShowDialog(title, message, warning string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Title:       title,
		Message:     message,
		Warning:     warning,
		Destructive: destructive,
		Type:        ConfirmTypeDialog,
	}, onConfirm, onCancel)
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Message returns the message being shown
func (m *ConfirmationModel) Message() string {
	return m.config.Message
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	if m.config.Type == ConfirmTypeAlert {
		switch msg.String() {
		case "enter", "esc", " ", "o", "O":
			m.active = false
			if m.onConfirm != nil {
				return m.onConfirm()
			}
		}
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the dialog, or nothing when hidden
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	return m.renderDialog()
}

// ViewWithWidth renders the confirmation with a specific width for centering
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

func (m *ConfirmationModel) renderDialog() string {
	borderColor := ColorActive
	if m.config.Type == ConfirmTypeAlert {
		borderColor = ColorWarning
	}
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal))

	width := m.config.Width
	if width == 0 {
		width = 50
	}
	if m.viewWidth > 0 && width > m.viewWidth-2 {
		width = max(m.viewWidth-2, 20)
	}
	contentWidth := width - 4 // border and padding
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var content strings.Builder

	if m.config.Title != "" {
		content.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		content.WriteString("\n\n")
	}

	if m.config.Message != "" {
		content.WriteString(center.Render(m.config.Message))
		content.WriteString("\n")
	}

	if m.config.Warning != "" {
		content.WriteString("\n")
		content.WriteString(center.Render(warningStyle.Render(m.config.Warning)))
		content.WriteString("\n")
	}

	if len(m.config.Details) > 0 {
		content.WriteString("\n")
		for _, detail := range m.config.Details {
			content.WriteString(detailStyle.Render("  • " + detail))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")

	var options string
	if m.config.Type == ConfirmTypeAlert {
		options = GetButtonStyle(true).Render(m.config.YesLabel)
	} else {
		yesNoLabels := fmt.Sprintf("(%s / %s)",
			strings.ToLower(m.config.YesLabel),
			strings.ToLower(m.config.NoLabel))
		options = formatConfirmOptions(m.config.Destructive) + "  " + yesNoLabels
	}
	content.WriteString(center.Render(options))

	return borderStyle.Width(width - 2).Render(content.String())
}

// formatConfirmOptions colors the y/n choices, red for the destructive one
func formatConfirmOptions(destructive bool) string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[y]")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[n]")
	return yes + " " + no
}
