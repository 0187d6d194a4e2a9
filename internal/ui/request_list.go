package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// loadState tracks the data-fetch lifecycle.
type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
	stateError
)

// requestItem adapts a registry row for the bubbles list.
type requestItem struct {
	id           int
	title        string
	submitter    string
	status       string
	reviewer     string
	commentCount int
}

func (i requestItem) FilterValue() string {
	return i.title + " " + i.submitter + " " + i.reviewer + " " + i.status
}

func (i requestItem) Title() string {
	return fmt.Sprintf("#%d %s", i.id, i.title)
}

func (i requestItem) Description() string {
	desc := fmt.Sprintf("%s · %s", i.submitter, i.status)
	if i.reviewer != "" {
		desc += " · @" + i.reviewer
	}
	if i.commentCount > 0 {
		desc += fmt.Sprintf(" · 💬 %d", i.commentCount)
	}
	return desc
}

// requestItemDelegate renders queue items. The cursor (Bubbletea's Index())
// uses the stock left-border style; the request loaded in the comments
// panel gets a ▸ marker prefix.
type requestItemDelegate struct {
	selectedID *int // points to QueueModel.selectedID
}

func (d requestItemDelegate) Height() int                             { return 2 }
func (d requestItemDelegate) Spacing() int                            { return 1 }
func (d requestItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d requestItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(requestItem)
	if !ok {
		return
	}
	if m.Width() <= 0 {
		return
	}

	title := i.Title()
	desc := i.Description()

	isCursor := index == m.Index()
	isActive := d.selectedID != nil && *d.selectedID != 0 && i.id == *d.selectedID

	textWidth := m.Width() - 4
	if textWidth < 1 {
		textWidth = 1
	}
	title = ansi.Truncate(title, textWidth, "…")
	desc = ansi.Truncate(desc, textWidth, "…")

	switch {
	case isCursor && isActive:
		titleStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("62")).
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 0, 0, 1)
		descStyle := titleStyle.Bold(false).Foreground(lipgloss.Color("99"))
		title = titleStyle.Render(title)
		desc = descStyle.Render(desc)
	case isCursor:
		titleStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}).
			Padding(0, 0, 0, 1)
		descStyle := titleStyle.Foreground(lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"})
		title = titleStyle.Render(title)
		desc = descStyle.Render(desc)
	case isActive:
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true).Render("▸ ")
		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
		descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 0, 0, 2)
		title = marker + titleStyle.Render(title)
		desc = descStyle.Render(desc)
	default:
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
			Padding(0, 0, 0, 2)
		descStyle := titleStyle.Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})
		title = titleStyle.Render(title)
		desc = descStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// QueueModel manages the merge-request queue panel.
type QueueModel struct {
	list    list.Model
	spinner spinner.Model
	width   int
	height  int
	focused bool

	// Tracks the request currently loaded in the comments panel (0 = none).
	// Heap-allocated so the delegate's pointer survives value copies.
	selectedID *int

	state  loadState
	errMsg string
}

func NewQueueModel() QueueModel {
	selected := new(int)

	l := list.New(nil, requestItemDelegate{selectedID: selected}, 0, 0)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Placeholder = "title, submitter, reviewer…"
	l.DisableQuitKeybindings()

	return QueueModel{
		list:       l,
		spinner:    newLoadingSpinner(),
		state:      stateLoading,
		selectedID: selected,
	}
}

// SetSelectedRequest marks which request is loaded in the comments panel.
func (m *QueueModel) SetSelectedRequest(id int) {
	*m.selectedID = id
}

// SetLoading puts the panel into loading state.
func (m *QueueModel) SetLoading() {
	m.state = stateLoading
	m.errMsg = ""
}

// SetError puts the panel into error state with a message.
func (m *QueueModel) SetError(err string) {
	m.state = stateError
	m.errMsg = err
}

// SetRows re-renders the queue from registry state. Called on every row
// mutation so the list always reflects the model.
func (m *QueueModel) SetRows(reg *RowRegistry) {
	items := make([]list.Item, 0, reg.Len())
	for _, id := range reg.IDs() {
		row := reg.Get(id)
		items = append(items, requestItem{
			id:           row.ID,
			title:        row.Title,
			submitter:    row.Submitter,
			status:       row.Status,
			reviewer:     row.Reviewer,
			commentCount: row.CommentCount,
		})
	}
	m.state = stateLoaded
	m.errMsg = ""
	m.list.SetItems(items)
}

// CursorID returns the id of the request under the cursor, or 0.
func (m QueueModel) CursorID() int {
	if item, ok := m.list.SelectedItem().(requestItem); ok {
		return item.id
	}
	return 0
}

// IsFiltering returns true when the user is actively typing in the filter input.
func (m QueueModel) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m QueueModel) Update(msg tea.Msg) (QueueModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state == stateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		// While filtering, let the inner list handle all keys —
		// except Enter on empty input, which should clear the filter.
		if m.IsFiltering() {
			if msg.Type == tea.KeyEnter && m.list.FilterInput.Value() == "" {
				m.list.ResetFilter()
				return m, nil
			}
			break
		}
		switch {
		case key.Matches(msg, QueueKeys.SelectAndAdvance):
			if id := m.CursorID(); id != 0 {
				return m, func() tea.Msg {
					return RequestSelectedAndAdvanceMsg{ID: id}
				}
			}
		case key.Matches(msg, QueueKeys.Select):
			if id := m.CursorID(); id != 0 {
				return m, func() tea.Msg {
					return RequestSelectedMsg{ID: id}
				}
			}
		}
	}

	// Only delegate to the inner list when we have data
	if m.state == stateLoaded {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *QueueModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	innerWidth := width - 4
	innerHeight := height - 4
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}
	m.list.SetSize(innerWidth, innerHeight)
}

func (m *QueueModel) SetFocused(focused bool) {
	m.focused = focused
}

func (m QueueModel) View() string {
	header := panelHeaderStyle(m.focused).Render(fmt.Sprintf(" Merge Requests (%d)", len(m.list.Items())))

	var content string
	switch m.state {
	case stateLoading:
		content = m.renderLoading()
	case stateError:
		content = m.renderError()
	case stateLoaded:
		if len(m.list.Items()) == 0 {
			content = renderEmptyState("Queue is empty", "Press r to refresh")
		} else {
			content = m.list.View()
		}
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, header, content)
	style := panelStyle(m.focused, false, m.width-2, m.height-2)
	return style.Render(inner)
}

func (m QueueModel) renderLoading() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(1, 2).
		Render(m.spinner.View() + " Loading merge requests...")
}

func (m QueueModel) renderError() string {
	return renderErrorWithHint(formatUserError(m.errMsg), "Press r to retry")
}
