package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/landfinder/landfinder-terminal/pkg/search"
)

// Search panel fields in focus order
const (
	fieldText = iota
	fieldMinPrice
	fieldMaxPrice
	fieldMinSqft
	fieldMaxSqft
	fieldSort
	searchFieldCount
)

// SearchPanelHeight is the rendered height of the panel, borders included
const SearchPanelHeight = 4

// SearchPanel holds the place, price and area inputs and the sort selector
type SearchPanel struct {
	inputs   []textinput.Model
	sortIdx  int
	focus    int
	isActive bool
	width    int
}

// NewSearchPanel creates an empty search panel
func NewSearchPanel() *SearchPanel {
	placeholders := []string{"Place or title...", "min ₹", "max ₹", "min sqft", "max sqft"}
	limits := []int{100, 15, 15, 10, 10}

	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = limits[i]
		ti.Prompt = ""
		ti.Width = 8
		inputs[i] = ti
	}
	inputs[fieldText].Width = 50

	return &SearchPanel{inputs: inputs}
}

// SetActive sets whether the search panel is the active pane
func (s *SearchPanel) SetActive(active bool) tea.Cmd {
	s.isActive = active
	return s.setFocus(s.focus)
}

// Active reports whether the panel has focus
func (s *SearchPanel) Active() bool {
	return s.isActive
}

// SetWidth sets the outer width of the panel
func (s *SearchPanel) SetWidth(width int) {
	s.width = width
	// border (2), padding (2), icon (3) and a space
	s.inputs[fieldText].Width = max(width-10, 10)
}

// Focused returns the focused field index
func (s *SearchPanel) Focused() int {
	return s.focus
}

// NextField moves focus forward, wrapping around
func (s *SearchPanel) NextField() tea.Cmd {
	return s.setFocus((s.focus + 1) % searchFieldCount)
}

// PrevField moves focus backward, wrapping around
func (s *SearchPanel) PrevField() tea.Cmd {
	return s.setFocus((s.focus + searchFieldCount - 1) % searchFieldCount)
}

func (s *SearchPanel) setFocus(field int) tea.Cmd {
	s.focus = field
	var cmd tea.Cmd
	for i := range s.inputs {
		if s.isActive && i == field {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

// SortKey returns the selected sort key
func (s *SearchPanel) SortKey() search.SortKey {
	return search.SortKeys[s.sortIdx]
}

// CycleSort moves the sort selector by delta, wrapping around
func (s *SearchPanel) CycleSort(delta int) {
	n := len(search.SortKeys)
	s.sortIdx = ((s.sortIdx+delta)%n + n) % n
}

// Fields returns the raw form values
func (s *SearchPanel) Fields() search.Fields {
	return search.Fields{
		Text:     s.inputs[fieldText].Value(),
		MinPrice: s.inputs[fieldMinPrice].Value(),
		MaxPrice: s.inputs[fieldMaxPrice].Value(),
		MinSqft:  s.inputs[fieldMinSqft].Value(),
		MaxSqft:  s.inputs[fieldMaxSqft].Value(),
		Sort:     string(s.SortKey()),
	}
}

// SetFields fills the form
func (s *SearchPanel) SetFields(f search.Fields) {
	s.inputs[fieldText].SetValue(f.Text)
	s.inputs[fieldMinPrice].SetValue(f.MinPrice)
	s.inputs[fieldMaxPrice].SetValue(f.MaxPrice)
	s.inputs[fieldMinSqft].SetValue(f.MinSqft)
	s.inputs[fieldMaxSqft].SetValue(f.MaxSqft)
	s.sortIdx = 0
	if key, err := search.ParseSortKey(f.Sort); err == nil {
		for i, k := range search.SortKeys {
			if k == key {
				s.sortIdx = i
			}
		}
	}
}

// Query parses the form into a search query
func (s *SearchPanel) Query() (search.Query, error) {
	return search.QueryFromFields(s.Fields())
}

// Reset clears every input and the sort selector
func (s *SearchPanel) Reset() {
	for i := range s.inputs {
		s.inputs[i].SetValue("")
	}
	s.sortIdx = 0
}

// Update handles tea messages for the focused field
func (s *SearchPanel) Update(msg tea.Msg) (*SearchPanel, tea.Cmd) {
	if s.focus == fieldSort {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "left", "h":
				s.CycleSort(-1)
			case "right", "l", " ":
				s.CycleSort(1)
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

// View renders the panel with consistent styling
func (s *SearchPanel) View() string {
	borderColor := ColorInactive
	if s.isActive {
		borderColor = ColorActive
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(max(s.width-2, 10)).
		Padding(0, 1)

	var searchIcon string
	if s.isActive {
		searchIcon = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1).
			Render("⌕")
	} else {
		searchIcon = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Bold(true).
			Render(" ⌕ ")
	}
	textRow := lipgloss.JoinHorizontal(lipgloss.Center, searchIcon, " ", s.inputs[fieldText].View())

	label := HeaderStyle.Render
	sortStyle := NormalStyle
	if s.isActive && s.focus == fieldSort {
		sortStyle = SelectedStyle
	}
	sortLabel := string(s.SortKey())
	if s.width >= 100 {
		sortLabel = s.SortKey().Label()
	}
	filterRow := lipgloss.JoinHorizontal(lipgloss.Center,
		label("₹ "), s.inputs[fieldMinPrice].View(), label(" – "), s.inputs[fieldMaxPrice].View(),
		label("  sqft "), s.inputs[fieldMinSqft].View(), label(" – "), s.inputs[fieldMaxSqft].View(),
		label("  ⇅ "), sortStyle.Render("‹ "+sortLabel+" ›"),
	)

	return panelStyle.MaxHeight(SearchPanelHeight).Render(textRow + "\n" + filterRow)
}
