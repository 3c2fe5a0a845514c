package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/listings"
	"github.com/landfinder/landfinder-terminal/pkg/mapview"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/viewer"
)

type pane int

const (
	searchPane pane = iota
	listPane
	mapPane
	paneCount
)

// statusDuration is how long a status message stays in the status bar
const statusDuration = 4 * time.Second

// Caller dials a tel: link
type Caller interface {
	Call(telURI, phone string) (cli.CallResult, error)
}

// Config wires the collaborators of the TUI
type Config struct {
	Repository *listings.Repository
	Favorites  viewer.FavoritesStore
	Geocoder   geocode.Geocoder
	Settings   *models.Settings
	Caller     Caller
	Logger     *zap.Logger
}

// App is the root bubbletea model
type App struct {
	viewer  *viewer.App
	canvas  *mapview.Canvas
	list    *ListPane
	search  *SearchPanel
	drawer  *AddDrawer
	confirm *ConfirmationModel
	caller  Caller
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	active    pane
	width     int
	height    int
	statusMsg string
	statusSeq int
}

// Messages for communication between the event loop and commands
type StatusMsg string

type clearStatusMsg struct {
	seq int
}

type geocodeDoneMsg struct {
	outcome viewer.GeocodeOutcome
}

// NewApp creates the TUI and shows every listing
func NewApp(cfg Config) *App {
	settings := cfg.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	caller := cfg.Caller
	if caller == nil {
		caller = cli.NewOpener()
	}

	canvas := mapview.NewCanvas(settings.Map.Center, settings.Map.Zoom)
	list := NewListPane()
	if cfg.Favorites != nil {
		list.SetFavoriteFunc(func(id string) bool {
			return cfg.Favorites.LoadFavoriteIDs().Has(id)
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		viewer: viewer.New(viewer.Config{
			Repository:     cfg.Repository,
			Favorites:      cfg.Favorites,
			Map:            canvas,
			List:           list,
			Geocoder:       cfg.Geocoder,
			MapSettings:    settings.Map,
			GeocodeTimeout: settings.Geocoder.Timeout,
			Logger:         logger,
		}),
		canvas:  canvas,
		list:    list,
		search:  NewSearchPanel(),
		drawer:  NewAddDrawer(),
		confirm: NewConfirmation(),
		caller:  caller,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	a.viewer.Start()
	a.setPane(listPane)
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case geocodeDoneMsg:
		return a, a.completeAdd(msg.outcome)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.drawer, cmd = a.drawer.Update(msg)
		return a, cmd

	case StatusMsg:
		return a, a.setStatus(string(msg))

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil
	}

	// Cursor blink and other input messages go to the focused form
	var cmd tea.Cmd
	switch {
	case a.viewer.AddForm().IsOpen():
		a.drawer, cmd = a.drawer.Update(msg)
	case a.active == searchPane:
		a.search, cmd = a.search.Update(msg)
	}
	return a, cmd
}

// SetSize lays out every pane for a terminal of width x height
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	l := a.layout()
	a.search.SetWidth(l.search.w)
	a.list.SetSize(l.list.w, l.list.h)
	a.drawer.SetSize(l.list.w, l.list.h)
	a.canvas.SetSize(l.mapArea.w-2, l.mapArea.h-2)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if Shortcuts.Quit.Matches(key) {
		a.cancel()
		return tea.Quit
	}

	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}

	if a.viewer.Popup().IsOpen() {
		return a.handlePopupKey(key)
	}

	if a.viewer.AddForm().IsOpen() {
		return a.handleAddKey(msg)
	}

	switch {
	case Shortcuts.SwitchPane.Matches(key):
		a.setPane((a.active + 1) % paneCount)
		return a.focusCmd()
	case Shortcuts.ReverseSwitch.Matches(key):
		a.setPane((a.active + paneCount - 1) % paneCount)
		return a.focusCmd()
	case Shortcuts.Reset.Matches(key):
		return a.resetSearch()
	}

	if a.active == searchPane {
		return a.handleSearchKey(msg)
	}

	switch {
	case key == "q":
		a.cancel()
		return tea.Quit
	case Shortcuts.Search.Matches(key):
		a.setPane(searchPane)
		return a.focusCmd()
	case Shortcuts.Add.Matches(key):
		return a.openAdd()
	case Shortcuts.ResetData.Matches(key):
		return a.confirmResetData()
	}

	if a.active == listPane {
		return a.handleListKey(key)
	}
	return a.handleMapKey(key)
}

func (a *App) handlePopupKey(key string) tea.Cmd {
	switch {
	case Shortcuts.Save.Matches(key):
		return a.toggleFavorite()
	case Shortcuts.Call.Matches(key):
		return a.callOwner()
	case Shortcuts.Cancel.Matches(key), key == "q", key == "enter":
		a.viewer.Popup().Close()
	}
	return nil
}

func (a *App) handleAddKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch {
	case Shortcuts.Cancel.Matches(key):
		a.viewer.AddForm().Dismiss()
		a.drawer.Clear()
		return a.setStatus("Add cancelled")
	case Shortcuts.Submit.Matches(key):
		return a.submitAdd()
	case Shortcuts.SwitchPane.Matches(key):
		return a.drawer.NextField()
	case Shortcuts.ReverseSwitch.Matches(key):
		return a.drawer.PrevField()
	case key == "enter" && a.drawer.Focused() != addDesc:
		return a.drawer.NextField()
	}

	var cmd tea.Cmd
	a.drawer, cmd = a.drawer.Update(msg)
	a.viewer.AddForm().SetForm(a.drawer.Form())
	return cmd
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return a.applySearch()
	case "esc":
		return a.resetSearch()
	case "down":
		return a.search.NextField()
	case "up":
		return a.search.PrevField()
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return cmd
}

func (a *App) handleListKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		a.list.MoveCursor(-1)
	case "down", "j":
		a.list.MoveCursor(1)
	case "pgup":
		a.list.MoveCursor(-a.list.visibleCards())
	case "pgdown":
		a.list.MoveCursor(a.list.visibleCards())
	case "enter", "v":
		if l, ok := a.list.Selected(); ok {
			return a.openListing(l.ID)
		}
	}
	return nil
}

func (a *App) handleMapKey(key string) tea.Cmd {
	switch {
	case key == "up", key == "k":
		a.canvas.Pan(0, -2)
	case key == "down", key == "j":
		a.canvas.Pan(0, 2)
	case key == "left", key == "h":
		a.canvas.Pan(-4, 0)
	case key == "right", key == "l":
		a.canvas.Pan(4, 0)
	case Shortcuts.ZoomIn.Matches(key), key == "=":
		a.canvas.SetZoom(a.canvas.Zoom() + 1)
	case Shortcuts.ZoomOut.Matches(key):
		a.canvas.SetZoom(a.canvas.Zoom() - 1)
	case Shortcuts.NextMarker.Matches(key):
		a.list.SelectID(a.canvas.Cycle(1))
	case Shortcuts.PrevMarker.Matches(key):
		a.list.SelectID(a.canvas.Cycle(-1))
	case key == "enter":
		if a.canvas.Activate() {
			a.list.SelectID(a.canvas.Selected())
		}
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.confirm.Active() {
		return nil
	}
	l := a.layout()

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		switch {
		case a.viewer.Popup().IsOpen():
		case l.mapArea.contains(msg.X, msg.Y):
			a.canvas.SetZoom(a.canvas.Zoom() - delta)
		case l.list.contains(msg.X, msg.Y) && !a.viewer.AddForm().IsOpen():
			a.list.MoveCursor(delta)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if a.viewer.Popup().IsOpen() {
		region := viewer.RegionOutside
		if a.modalRect().contains(msg.X, msg.Y) {
			region = viewer.RegionContent
		}
		a.viewer.Popup().Click(region)
		return nil
	}

	switch {
	case l.search.contains(msg.X, msg.Y) && !a.viewer.AddForm().IsOpen():
		a.setPane(searchPane)
		return a.focusCmd()
	case l.list.contains(msg.X, msg.Y) && !a.viewer.AddForm().IsOpen():
		a.setPane(listPane)
		if item, ok := a.list.ItemAt(msg.Y - l.list.y - 1); ok {
			return a.openListing(item.ID)
		}
	case l.mapArea.contains(msg.X, msg.Y):
		if !a.viewer.AddForm().IsOpen() {
			a.setPane(mapPane)
		}
		if a.canvas.ClickAt(msg.X-l.mapArea.x-1, msg.Y-l.mapArea.y-1) {
			a.list.SelectID(a.canvas.Selected())
		}
	}
	return nil
}

// openListing opens the popup for id the same way a marker click does
func (a *App) openListing(id string) tea.Cmd {
	if err := a.viewer.Select(id); err != nil {
		return a.alert("Listing unavailable", err.Error())
	}
	a.list.SelectID(id)
	a.canvas.Select(id)
	return nil
}

func (a *App) applySearch() tea.Cmd {
	q, err := a.search.Query()
	if err != nil {
		return a.alert("Invalid search", err.Error())
	}
	results := a.viewer.Search(q)
	a.list.cursor = 0
	a.list.scroll()
	if len(results) == 0 {
		return a.setStatus("No listings match")
	}
	return a.setStatus(fmt.Sprintf("%d listing(s)", len(results)))
}

func (a *App) resetSearch() tea.Cmd {
	a.search.Reset()
	a.viewer.ResetSearch()
	return a.setStatus("Showing all listings")
}

func (a *App) openAdd() tea.Cmd {
	a.viewer.AddForm().Open()
	a.drawer.SetForm(a.viewer.AddForm().Form())
	a.search.SetActive(false)
	return a.drawer.Focus()
}

func (a *App) submitAdd() tea.Cmd {
	job, err := a.viewer.SubmitAdd(a.drawer.Form())
	if err != nil {
		a.drawer.SetPending(false)
		return a.alert("Missing details", err.Error())
	}
	return tea.Batch(a.drawer.SetPending(true), runGeocode(a.ctx, job))
}

// runGeocode runs job off the event loop
func runGeocode(ctx context.Context, job *viewer.GeocodeJob) tea.Cmd {
	return func() tea.Msg {
		return geocodeDoneMsg{outcome: job.Run(ctx)}
	}
}

func (a *App) completeAdd(o viewer.GeocodeOutcome) tea.Cmd {
	l, err := a.viewer.CompleteAdd(o)
	switch {
	case errors.Is(err, viewer.ErrStaleResponse):
		return nil
	case err != nil:
		a.drawer.SetPending(false)
		return a.alert("Could not add listing", viewer.Message(err))
	}

	a.drawer.Clear()
	a.search.Reset()
	a.list.SelectID(l.ID)
	a.canvas.Select(l.ID)
	return a.setStatus("Added " + l.Title)
}

func (a *App) confirmResetData() tea.Cmd {
	count := len(a.viewer.Repository().UserAdded())
	if count == 0 {
		return a.setStatus("No saved listings")
	}
	a.confirm.ShowDialog(
		"Clear saved listings",
		fmt.Sprintf("Delete %d saved listing(s)?", count),
		"Built-in listings and favorites are kept.",
		true,
		func() tea.Cmd {
			if err := a.viewer.ResetToBuiltins(); err != nil {
				return a.alert("Reset failed", err.Error())
			}
			a.drawer.Clear()
			return a.setStatus("Saved listings cleared")
		},
		nil,
	)
	return nil
}

func (a *App) toggleFavorite() tea.Cmd {
	saved, err := a.viewer.ToggleFavorite()
	if err != nil {
		return a.alert("Could not save", err.Error())
	}
	if saved {
		return a.setStatus("Saved to favorites")
	}
	return a.setStatus("Removed from favorites")
}

func (a *App) callOwner() tea.Cmd {
	tel, err := a.viewer.Popup().CallOwner()
	if err != nil {
		return nil
	}
	l, _ := a.viewer.Popup().Listing()
	res, err := a.caller.Call(tel, l.Phone)
	if err != nil {
		return a.alert("Could not call", err.Error())
	}
	if res.Opened {
		return a.setStatus("Calling " + l.Owner + " at " + l.Phone)
	}
	return a.setStatus("Copied " + l.Phone + " to clipboard")
}

// alert shows a blocking dialog
func (a *App) alert(title, message string) tea.Cmd {
	a.logger.Debug("alert", zap.String("title", title), zap.String("message", message))
	a.confirm.ShowAlert(title, message)
	return nil
}

func (a *App) setStatus(msg string) tea.Cmd {
	a.statusMsg = msg
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (a *App) setPane(p pane) {
	a.active = p
	a.search.SetActive(p == searchPane)
	a.list.SetActive(p == listPane)
}

func (a *App) focusCmd() tea.Cmd {
	if a.active == searchPane {
		return a.search.SetActive(true)
	}
	return nil
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type layout struct {
	search  rect
	list    rect
	mapArea rect
}

func (a *App) layout() layout {
	bodyY := headerHeight + SearchPanelHeight
	bodyH := max(a.height-bodyY-1, 6)
	leftW := min(max(a.width*2/5, 28), 48)
	if leftW > a.width-20 {
		leftW = max(a.width/2, 1)
	}
	return layout{
		search:  rect{0, headerHeight, a.width, SearchPanelHeight},
		list:    rect{0, bodyY, leftW, bodyH},
		mapArea: rect{leftW, bodyY, max(a.width-leftW, 3), bodyH},
	}
}

// modalRect is where the popup is drawn, centered on the screen
func (a *App) modalRect() rect {
	content, ok := a.viewer.Popup().Content()
	if !ok {
		return rect{}
	}
	rendered := renderDetailModal(content, a.width)
	w, h := lipgloss.Width(rendered), lipgloss.Height(rendered)
	return rect{max((a.width-w)/2, 0), max((a.height-h)/2, 0), w, h}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.confirm.Active() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.confirm.ViewWithWidth(a.width))
	}
	if content, ok := a.viewer.Popup().Content(); ok {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, renderDetailModal(content, a.width))
	}

	l := a.layout()
	left := a.list.View()
	if a.viewer.AddForm().IsOpen() {
		left = a.drawer.View()
	}
	mapView := GetPaneBorderStyle(a.active == mapPane, l.mapArea.w, l.mapArea.h).Render(a.canvas.Render())

	title := fmt.Sprintf("%d of %d listings", len(a.viewer.Visible()), a.viewer.Repository().Len())
	content := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.width, title),
		a.search.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, mapView),
		a.statusLine(),
	)
	return content
}

func (a *App) statusLine() string {
	if a.statusMsg != "" {
		return StatusBarStyle.MaxWidth(a.width).Render(a.statusMsg)
	}
	return HelpStyle.MaxWidth(a.width).Render(" " + strings.Join(a.helpItems(), "  "))
}

func (a *App) helpItems() []string {
	common := []string{GetShortcutHelp("pane", Shortcuts.SwitchPane), GetShortcutHelp("quit", Shortcuts.Quit)}
	switch a.active {
	case searchPane:
		return append([]string{"enter search", "esc reset", "↑/↓ field", "←/→ sort"}, common...)
	case mapPane:
		return append([]string{"arrows pan", "+/- zoom", "n/N marker", "enter open",
			GetShortcutHelp("add", Shortcuts.Add)}, common...)
	default:
		return append([]string{"↑/↓ move", "enter view", GetShortcutHelp("search", Shortcuts.Search),
			GetShortcutHelp("add", Shortcuts.Add), GetShortcutHelp("clear saved", Shortcuts.ResetData)}, common...)
	}
}

// Accessors for the CLI entry point and tests

func (a *App) Viewer() *viewer.App {
	return a.viewer
}

func (a *App) Canvas() *mapview.Canvas {
	return a.canvas
}

func (a *App) List() *ListPane {
	return a.list
}

func (a *App) SearchPanel() *SearchPanel {
	return a.search
}

func (a *App) Drawer() *AddDrawer {
	return a.drawer
}

func (a *App) Confirmation() *ConfirmationModel {
	return a.confirm
}

func (a *App) Status() string {
	return a.statusMsg
}

// Close cancels geocode requests still in flight
func (a *App) Close() {
	a.cancel()
}
