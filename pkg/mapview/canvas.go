package mapview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// Web Mercator tile size and the number of world pixels one terminal cell
// covers. Cells are about twice as tall as they are wide.
const (
	tileSize   = 256.0
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Glyphs used when drawing
const (
	markerGlyph   = '●'
	selectedGlyph = '◉'
	centerGlyph   = '+'
	gridGlyph     = '·'
)

var (
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	gridStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	centerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Canvas is a MapView drawn on a character grid using the Web Mercator
// projection. It is not safe for concurrent use.
type Canvas struct {
	center   models.Coordinate
	zoom     int
	width    int
	height   int
	markers  []*canvasMarker
	selected string
}

type canvasMarker struct {
	canvas *Canvas
	opts   MarkerOptions
}

func (m *canvasMarker) ID() string {
	return m.opts.ID
}

func (m *canvasMarker) Remove() {
	c := m.canvas
	for i, existing := range c.markers {
		if existing == m {
			c.markers = append(c.markers[:i], c.markers[i+1:]...)
			break
		}
	}
	if c.selected == m.opts.ID && c.find(m.opts.ID) == nil {
		c.selected = ""
	}
}

// NewCanvas creates a map centered on center at zoom
func NewCanvas(center models.Coordinate, zoom int) *Canvas {
	return &Canvas{
		center: center,
		zoom:   clampZoom(zoom),
		width:  60,
		height: 20,
	}
}

// SetSize sets the grid size in cells, the footer line included
func (c *Canvas) SetSize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 2)
}

func (c *Canvas) Center() models.Coordinate {
	return c.center
}

func (c *Canvas) Zoom() int {
	return c.zoom
}

func (c *Canvas) PanTo(pos models.Coordinate) {
	c.center = pos
}

func (c *Canvas) SetZoom(zoom int) {
	c.zoom = clampZoom(zoom)
}

func (c *Canvas) AddMarker(opts MarkerOptions) Marker {
	m := &canvasMarker{canvas: c, opts: opts}
	c.markers = append(c.markers, m)
	return m
}

// MarkerIDs returns the ids of the placed markers in placement order
func (c *Canvas) MarkerIDs() []string {
	ids := make([]string, 0, len(c.markers))
	for _, m := range c.markers {
		ids = append(ids, m.opts.ID)
	}
	return ids
}

// Selected returns the highlighted marker id, or ""
func (c *Canvas) Selected() string {
	return c.selected
}

// Select highlights the marker for id. It returns false when no such
// marker is placed.
func (c *Canvas) Select(id string) bool {
	if c.find(id) == nil {
		return false
	}
	c.selected = id
	return true
}

// Cycle moves the highlight delta markers forward (or backward when
// negative), wrapping around, and returns the new selection.
func (c *Canvas) Cycle(delta int) string {
	n := len(c.markers)
	if n == 0 {
		c.selected = ""
		return ""
	}
	idx := -1
	for i, m := range c.markers {
		if m.opts.ID == c.selected {
			idx = i
			break
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	c.selected = c.markers[idx].opts.ID
	return c.selected
}

// Activate runs the click handler of the highlighted marker
func (c *Canvas) Activate() bool {
	m := c.find(c.selected)
	if m == nil {
		return false
	}
	m.fire()
	return true
}

// Pan shifts the center by dx columns and dy rows
func (c *Canvas) Pan(dx, dy int) {
	x, y := project(c.center, c.zoom)
	c.center = unproject(x+float64(dx)*cellWidth, y+float64(dy)*cellHeight, c.zoom)
}

// Cell returns the grid cell for pos and whether it lies inside the map area
func (c *Canvas) Cell(pos models.Coordinate) (col, row int, ok bool) {
	px, py := project(pos, c.zoom)
	cx, cy := project(c.center, c.zoom)
	rows := c.mapRows()

	col = int(math.Floor((px-cx)/cellWidth)) + c.width/2
	row = int(math.Floor((py-cy)/cellHeight)) + rows/2
	ok = col >= 0 && col < c.width && row >= 0 && row < rows
	return col, row, ok
}

// MarkerAt returns the id of the marker drawn at or next to (col, row).
// The most recently placed marker wins when several overlap.
func (c *Canvas) MarkerAt(col, row int) (string, bool) {
	best := ""
	bestDist := math.MaxInt
	for i := len(c.markers) - 1; i >= 0; i-- {
		m := c.markers[i]
		mc, mr, ok := c.Cell(m.opts.Position)
		if !ok {
			continue
		}
		dx, dy := abs(mc-col), abs(mr-row)
		if dx > 1 || dy > 0 {
			continue
		}
		if dx < bestDist {
			best, bestDist = m.opts.ID, dx
		}
	}
	return best, best != ""
}

// ClickAt runs the click handler of the marker at (col, row)
func (c *Canvas) ClickAt(col, row int) bool {
	id, ok := c.MarkerAt(col, row)
	if !ok {
		return false
	}
	c.selected = id
	c.find(id).fire()
	return true
}

// Render draws the grid followed by a footer with zoom and center
func (c *Canvas) Render() string {
	rows := c.mapRows()
	grid := make([][]rune, rows)
	styles := make([][]*lipgloss.Style, rows)
	for r := range grid {
		grid[r] = make([]rune, c.width)
		styles[r] = make([]*lipgloss.Style, c.width)
		for col := range grid[r] {
			grid[r][col] = ' '
			if r%4 == 0 && col%8 == 0 {
				grid[r][col] = gridGlyph
				styles[r][col] = &gridStyle
			}
		}
	}

	if rows > 0 {
		grid[rows/2][c.width/2] = centerGlyph
		styles[rows/2][c.width/2] = &centerStyle
	}

	var label string
	labelCol, labelRow := -1, -1
	for _, m := range c.markers {
		col, row, ok := c.Cell(m.opts.Position)
		if !ok {
			continue
		}
		if m.opts.ID == c.selected {
			grid[row][col] = selectedGlyph
			styles[row][col] = &selectedStyle
			label, labelCol, labelRow = m.opts.Title, col+2, row
			continue
		}
		grid[row][col] = markerGlyph
		styles[row][col] = &markerStyle
	}

	var b strings.Builder
	for r := range grid {
		if r == labelRow && label != "" && labelCol < c.width {
			writeRow(&b, grid[r][:labelCol], styles[r][:labelCol])
			room := c.width - labelCol
			text := []rune(label)
			if len(text) > room {
				text = text[:room]
			}
			b.WriteString(labelStyle.Render(string(text)))
			if rest := labelCol + len(text); rest < c.width {
				writeRow(&b, grid[r][rest:], styles[r][rest:])
			}
		} else {
			writeRow(&b, grid[r], styles[r])
		}
		b.WriteByte('\n')
	}

	footer := fmt.Sprintf("zoom %d  %s  %d markers", c.zoom, c.center, len(c.markers))
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

func (c *Canvas) mapRows() int {
	return c.height - 1
}

func (c *Canvas) find(id string) *canvasMarker {
	if id == "" {
		return nil
	}
	for _, m := range c.markers {
		if m.opts.ID == id {
			return m
		}
	}
	return nil
}

func (m *canvasMarker) fire() {
	if m.opts.OnClick != nil {
		m.opts.OnClick()
	}
}

// writeRow renders runs of equally styled cells together
func writeRow(b *strings.Builder, cells []rune, styles []*lipgloss.Style) {
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && styles[i] == styles[start] {
			continue
		}
		run := string(cells[start:i])
		if styles[start] != nil {
			run = styles[start].Render(run)
		}
		b.WriteString(run)
		start = i
	}
}

// project converts a coordinate to world pixels at zoom
func project(pos models.Coordinate, zoom int) (x, y float64) {
	size := tileSize * math.Exp2(float64(zoom))
	lat := math.Max(math.Min(pos.Lat, 85.05112878), -85.05112878)
	sinLat := math.Sin(lat * math.Pi / 180)

	x = (pos.Lng + 180) / 360 * size
	y = (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * size
	return x, y
}

// unproject converts world pixels at zoom back to a coordinate
func unproject(x, y float64, zoom int) models.Coordinate {
	size := tileSize * math.Exp2(float64(zoom))
	lng := x/size*360 - 180
	n := math.Pi * (1 - 2*y/size)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return models.Coordinate{Lat: lat, Lng: lng}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
