package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/oltea/internal/config"
)

// flashDuration is how long temporary status bar messages stay visible.
const flashDuration = 3 * time.Second

// errorFlashDuration keeps failure messages up a little longer.
const errorFlashDuration = 5 * time.Second

// App is the root Bubbletea model for the moderation dashboard.
type App struct {
	service RequestService
	cfg     *config.Config

	// registry is the single source of truth for queue rows; both panels
	// re-render from it after every mutation.
	registry *RowRegistry

	// Panel models
	queue     QueueModel
	comments  CommentsModel
	statusBar StatusBarModel

	// Overlays
	helpOverlay   HelpOverlayModel
	reasonOverlay ReasonOverlayModel

	// Layout state
	focused     Panel
	width       int
	height      int
	sizes       PanelSizes
	initialized bool // whether first WindowSizeMsg has been processed

	// selectedID is the request loaded in the comments panel (0 = none).
	selectedID int

	// Background polling
	pollInterval time.Duration
	pollEnabled  bool

	// Notification state
	notifyEnabled   bool
	initialLoadDone bool         // true after first successful queue fetch
	knownRequests   map[int]bool // ids seen since boot (for new-request detection)
}

// NewApp creates a new App model wired to the given request service.
func NewApp(service RequestService, cfg *config.Config) App {
	service.SetFetchLimit(cfg.FetchLimit)

	return App{
		service:       service,
		cfg:           cfg,
		registry:      NewRowRegistry(),
		queue:         NewQueueModel(),
		comments:      NewCommentsModel(),
		statusBar:     NewStatusBarModel(),
		helpOverlay:   NewHelpOverlayModel(),
		reasonOverlay: NewReasonOverlayModel(),
		focused:       PanelQueue,
		pollInterval:  cfg.PollIntervalDuration(),
		pollEnabled:   cfg.PollingEnabled(),
		notifyEnabled: cfg.NotificationsEnabled(),
		knownRequests: make(map[int]bool),
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		fetchRequestsCmd(m.service),
		m.queue.spinner.Tick,
	)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m.withBarState(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.handleDataMsg(msg)
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, whatever mode we're in.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays capture all input while visible.
	if m.helpOverlay.IsVisible() {
		var cmd tea.Cmd
		m.helpOverlay, cmd = m.helpOverlay.Update(msg)
		return m.withBarState(), cmd
	}
	if m.reasonOverlay.IsVisible() {
		var cmd tea.Cmd
		m.reasonOverlay, cmd = m.reasonOverlay.Update(msg)
		return m.withBarState(), cmd
	}

	// Insert mode routes everything to the comments panel; its keymap
	// handles Esc and Ctrl+S itself.
	if m.comments.InInsertMode() {
		var cmd tea.Cmd
		m.comments, cmd = m.comments.Update(msg)
		return m.withBarState(), cmd
	}

	// While the queue filter input is active, it owns the keyboard.
	if m.focused == PanelQueue && m.queue.IsFiltering() {
		var cmd tea.Cmd
		m.queue, cmd = m.queue.Update(msg)
		return m.withBarState(), cmd
	}

	switch {
	case key.Matches(msg, GlobalKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, GlobalKeys.Help):
		m.helpOverlay.Show(m.focused)
		return m.withBarState(), nil

	case key.Matches(msg, GlobalKeys.Tab):
		m.focused = m.focused.Next()
		m.queue.SetFocused(m.focused == PanelQueue)
		m.comments.SetFocused(m.focused == PanelComments)
		return m.withBarState(), nil

	case key.Matches(msg, GlobalKeys.Refresh):
		m.queue.SetLoading()
		return m.withBarState(), tea.Batch(
			fetchRequestsCmd(m.service),
			m.queue.spinner.Tick,
		)

	case key.Matches(msg, GlobalKeys.Decline):
		row := m.activeRow()
		if row == nil {
			return m.withBarState(), nil
		}
		cmd := m.reasonOverlay.Show(row.ID, row.Title)
		return m.withBarState(), cmd

	case key.Matches(msg, GlobalKeys.Claim):
		row := m.activeRow()
		if row == nil {
			return m.withBarState(), nil
		}
		flashCmd := m.statusBar.SetTemporaryMessage("Claiming...", flashDuration)
		return m.withBarState(), tea.Batch(claimRequestCmd(m.service, row.ID), flashCmd)

	case key.Matches(msg, GlobalKeys.Unassign):
		row := m.activeRow()
		// Live only while the row has a reviewer.
		if row == nil || row.Reviewer == "" {
			return m.withBarState(), nil
		}
		flashCmd := m.statusBar.SetTemporaryMessage("Unassigning...", flashDuration)
		return m.withBarState(), tea.Batch(unassignRequestCmd(m.service, row.ID), flashCmd)

	case key.Matches(msg, GlobalKeys.OpenResolve):
		row := m.activeRow()
		// Offered only while the request is unclaimed.
		if row == nil || !row.ResolveVisible || row.URL == "" {
			return m.withBarState(), nil
		}
		return m.withBarState(), openBrowserCmd(row.URL)

	case key.Matches(msg, GlobalKeys.ToggleOlder):
		row := m.activeRow()
		if row == nil {
			return m.withBarState(), nil
		}
		m.registry.ToggleComments(row.ID)
		m.comments.Refresh()
		return m.withBarState(), nil
	}

	// Remaining keys go to the focused panel.
	var cmd tea.Cmd
	switch m.focused {
	case PanelQueue:
		m.queue, cmd = m.queue.Update(msg)
	case PanelComments:
		m.comments, cmd = m.comments.Update(msg)
	}
	return m.withBarState(), cmd
}

// activeRow returns the row an action key should act on: the comments
// panel's row when that panel is focused, otherwise the queue cursor row.
func (m *App) activeRow() *RequestRow {
	if m.focused == PanelComments {
		return m.comments.Row()
	}
	if id := m.queue.CursorID(); id != 0 {
		return m.registry.Get(id)
	}
	return nil
}

// selectRequest binds the comments panel to the given request id.
// id 0 (or an unknown id) clears the selection.
func (m *App) selectRequest(id int) {
	row := m.registry.Get(id)
	if row == nil {
		id = 0
	}
	m.selectedID = id
	m.queue.SetSelectedRequest(id)
	m.statusBar.SetSelectedRequest(id)
	m.comments.SetRow(row)
}

// mode derives the current input mode from component state.
func (m App) mode() AppMode {
	switch {
	case m.helpOverlay.IsVisible(), m.reasonOverlay.IsVisible():
		return ModeOverlay
	case m.comments.InInsertMode():
		return ModeInsert
	default:
		return ModeNavigation
	}
}

// withBarState syncs the status bar with current app state before returning.
func (m App) withBarState() App {
	m.statusBar.SetState(m.focused, m.mode())
	m.statusBar.SetFiltering(m.queue.IsFiltering())
	return m
}

func (m *App) setSize(width, height int) {
	m.width = width
	m.height = height
	m.sizes = CalculatePanelSizes(width, height)
	m.initialized = true

	if m.sizes.TooSmall {
		return
	}

	m.queue.SetSize(m.sizes.QueueWidth, m.sizes.PanelHeight)
	m.comments.SetSize(m.sizes.CommentsWidth, m.sizes.PanelHeight)
	m.statusBar.SetWidth(width)
	m.helpOverlay.SetSize(width, height)
	m.reasonOverlay.SetSize(width, height)

	m.queue.SetFocused(m.focused == PanelQueue)
	m.comments.SetFocused(m.focused == PanelComments)
}

func (m App) View() string {
	if !m.initialized {
		return "Initializing..."
	}
	if m.sizes.TooSmall {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			"Terminal too small\nNeed at least 70 columns")
	}

	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}
	if m.reasonOverlay.IsVisible() {
		return m.reasonOverlay.View()
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.queue.View(), m.comments.View())
	return lipgloss.JoinVertical(lipgloss.Left, panels, m.statusBar.View())
}
