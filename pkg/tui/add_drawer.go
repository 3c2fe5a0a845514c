package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/landfinder/landfinder-terminal/pkg/viewer"
)

// Add drawer fields in focus order. The description textarea comes last.
const (
	addTitle = iota
	addAddress
	addPrice
	addSqft
	addOwner
	addPhone
	addDesc
	addFieldCount
)

var addLabels = []string{"Title", "Address", "Price (₹)", "Area (sqft)", "Owner", "Phone"}

// AddDrawer is the add-listing form shown in place of the results list
type AddDrawer struct {
	inputs  []textinput.Model
	desc    textarea.Model
	spinner spinner.Model
	focus   int
	pending bool
	width   int
	height  int
}

// NewAddDrawer creates an empty form
func NewAddDrawer() *AddDrawer {
	placeholders := []string{"Road-facing plot", "Perundurai, Erode", "2500000", "1200", "Mr. Senthil", "+919876543210"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 30
		inputs[i] = ti
	}

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.ShowLineNumbers = false
	desc.CharLimit = 500
	desc.SetHeight(3)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &AddDrawer{inputs: inputs, desc: desc, spinner: s}
}

// SetSize sets the outer size of the drawer, borders included
func (d *AddDrawer) SetSize(width, height int) {
	d.width = width
	d.height = height
	inner := max(width-4, 10)
	for i := range d.inputs {
		d.inputs[i].Width = inner - 1
	}
	d.desc.SetWidth(inner)
}

// Focus focuses the first field
func (d *AddDrawer) Focus() tea.Cmd {
	return d.setFocus(addTitle)
}

// Focused returns the focused field index
func (d *AddDrawer) Focused() int {
	return d.focus
}

// NextField moves focus forward, wrapping around
func (d *AddDrawer) NextField() tea.Cmd {
	return d.setFocus((d.focus + 1) % addFieldCount)
}

// PrevField moves focus backward, wrapping around
func (d *AddDrawer) PrevField() tea.Cmd {
	return d.setFocus((d.focus + addFieldCount - 1) % addFieldCount)
}

func (d *AddDrawer) setFocus(field int) tea.Cmd {
	d.focus = field
	var cmd tea.Cmd
	for i := range d.inputs {
		if i == field {
			cmd = d.inputs[i].Focus()
		} else {
			d.inputs[i].Blur()
		}
	}
	if field == addDesc {
		cmd = d.desc.Focus()
	} else {
		d.desc.Blur()
	}
	return cmd
}

// Form returns the current values
func (d *AddDrawer) Form() viewer.Form {
	return viewer.Form{
		Title:   d.inputs[addTitle].Value(),
		Address: d.inputs[addAddress].Value(),
		Price:   d.inputs[addPrice].Value(),
		Sqft:    d.inputs[addSqft].Value(),
		Owner:   d.inputs[addOwner].Value(),
		Phone:   d.inputs[addPhone].Value(),
		Desc:    d.desc.Value(),
	}
}

// SetForm fills the inputs from f
func (d *AddDrawer) SetForm(f viewer.Form) {
	d.inputs[addTitle].SetValue(f.Title)
	d.inputs[addAddress].SetValue(f.Address)
	d.inputs[addPrice].SetValue(f.Price)
	d.inputs[addSqft].SetValue(f.Sqft)
	d.inputs[addOwner].SetValue(f.Owner)
	d.inputs[addPhone].SetValue(f.Phone)
	d.desc.SetValue(f.Desc)
}

// Clear empties the form and stops the spinner
func (d *AddDrawer) Clear() {
	d.SetForm(viewer.Form{})
	d.pending = false
	d.setFocus(addTitle)
}

// SetPending shows or hides the geocoding spinner. The returned command
// starts the spinner.
func (d *AddDrawer) SetPending(pending bool) tea.Cmd {
	d.pending = pending
	if pending {
		return d.spinner.Tick
	}
	return nil
}

// Pending reports whether the spinner is shown
func (d *AddDrawer) Pending() bool {
	return d.pending
}

// Update routes a message to the spinner or the focused field
func (d *AddDrawer) Update(msg tea.Msg) (*AddDrawer, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !d.pending {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(tick)
		return d, cmd
	}

	var cmd tea.Cmd
	if d.focus == addDesc {
		d.desc, cmd = d.desc.Update(msg)
	} else {
		d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	}
	return d, cmd
}

// View renders the drawer
func (d *AddDrawer) View() string {
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(true).Render("Add listing"))
	b.WriteString("\n\n")

	for i, in := range d.inputs {
		b.WriteString(GetActiveHeaderStyle(i == d.focus).Render(addLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(GetActiveHeaderStyle(d.focus == addDesc).Render("Description"))
	b.WriteString("\n")
	b.WriteString(d.desc.View())
	b.WriteString("\n\n")

	if d.pending {
		b.WriteString(d.spinner.View() + " " + DescriptionStyle.Render("Looking up address..."))
	} else {
		b.WriteString(HelpStyle.Render(
			GetShortcutHelp("submit", Shortcuts.Submit) + "  " +
				GetShortcutHelp("cancel", Shortcuts.Cancel) + "  tab next field"))
	}

	return GetPaneBorderStyle(true, d.width, d.height).
		Padding(0, 1).
		MaxHeight(max(d.height, 1)).
		Render(b.String())
}
