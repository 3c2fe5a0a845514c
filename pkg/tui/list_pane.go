package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// cardHeight is the number of lines a listing card takes, separator included
const cardHeight = 4

// ListPane renders the displayed listings as cards with a cursor
type ListPane struct {
	items    []models.Listing
	cursor   int
	offset   int
	isActive bool
	width    int
	height   int
	favorite func(id string) bool
}

// NewListPane creates an empty list
func NewListPane() *ListPane {
	return &ListPane{width: 40, height: 20}
}

// Render replaces the displayed listings, keeping the cursor in range
func (l *ListPane) Render(visible []models.Listing) {
	l.items = append([]models.Listing(nil), visible...)
	if l.cursor >= len(l.items) {
		l.cursor = max(len(l.items)-1, 0)
	}
	l.scroll()
}

// SetFavoriteFunc sets the lookup used to star saved listings
func (l *ListPane) SetFavoriteFunc(fn func(id string) bool) {
	l.favorite = fn
}

// SetSize sets the outer size of the pane, borders included
func (l *ListPane) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scroll()
}

func (l *ListPane) SetActive(active bool) {
	l.isActive = active
}

// Items returns the displayed listings
func (l *ListPane) Items() []models.Listing {
	return append([]models.Listing(nil), l.items...)
}

// Cursor returns the index of the highlighted card
func (l *ListPane) Cursor() int {
	return l.cursor
}

// Selected returns the highlighted listing
func (l *ListPane) Selected() (models.Listing, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return models.Listing{}, false
	}
	return l.items[l.cursor], true
}

// MoveCursor moves the highlight by delta, clamped to the list
func (l *ListPane) MoveCursor(delta int) {
	if len(l.items) == 0 {
		return
	}
	l.cursor = min(max(l.cursor+delta, 0), len(l.items)-1)
	l.scroll()
}

// SelectID moves the cursor to the listing with id
func (l *ListPane) SelectID(id string) bool {
	for i, item := range l.items {
		if item.ID == id {
			l.cursor = i
			l.scroll()
			return true
		}
	}
	return false
}

// ItemAt maps a content line (0 is the first line inside the border) to a
// listing. Separator lines hit nothing.
func (l *ListPane) ItemAt(line int) (models.Listing, bool) {
	if line < 0 || line%cardHeight == cardHeight-1 {
		return models.Listing{}, false
	}
	idx := l.offset + line/cardHeight
	if idx >= len(l.items) {
		return models.Listing{}, false
	}
	return l.items[idx], true
}

func (l *ListPane) visibleCards() int {
	return max((l.height-2+1)/cardHeight, 1)
}

func (l *ListPane) scroll() {
	n := l.visibleCards()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+n {
		l.offset = l.cursor - n + 1
	}
	l.offset = max(min(l.offset, len(l.items)-n), 0)
}

// View renders the pane
func (l *ListPane) View() string {
	innerWidth := max(l.width-4, 10)
	border := GetPaneBorderStyle(l.isActive, l.width, l.height).Padding(0, 1)

	if len(l.items) == 0 {
		style := EmptyInactiveStyle
		if l.isActive {
			style = EmptyActiveStyle
		}
		return border.Render(style.Render("No listings"))
	}

	var cards []string
	end := min(l.offset+l.visibleCards(), len(l.items))
	for i := l.offset; i < end; i++ {
		cards = append(cards, l.renderCard(l.items[i], i == l.cursor, innerWidth))
	}
	return border.Render(strings.Join(cards, "\n\n"))
}

func (l *ListPane) renderCard(item models.Listing, selected bool, width int) string {
	title := cli.TruncateString(item.Title, width-2)
	if l.favorite != nil && l.favorite(item.ID) {
		title = cli.TruncateString(item.Title, width-4) + " " + FavoriteStyle.Render("★")
	}
	area := cli.TruncateString(item.Area, width-2)
	price := CardPriceStyle.Render(models.FormatINR(item.Price)) + DescriptionStyle.Render(" • "+models.FormatSqft(item.Sqft))

	marker := "  "
	titleStyle := CardTitleStyle
	if selected {
		marker = CursorStyle.Render("▌ ")
		if l.isActive {
			titleStyle = SelectedStyle
		}
	}
	lines := []string{
		marker + titleStyle.Render(title),
		marker + DescriptionStyle.Render(area),
		marker + price,
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
