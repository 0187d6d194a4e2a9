package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width           int
	focused         Panel
	mode            AppMode
	selectedRequest int
	filtering       bool // true when the queue filter input is active

	// Temporary flash message (e.g. "✓ Comment added to #123")
	statusMessage string
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetState(focused Panel, mode AppMode) {
	m.focused = focused
	m.mode = mode
}

// SetFiltering updates whether the queue filter input is active.
func (m *StatusBarModel) SetFiltering(filtering bool) {
	m.filtering = filtering
}

func (m *StatusBarModel) SetSelectedRequest(id int) {
	m.selectedRequest = id
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given duration,
// which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearMessage explicitly clears the temporary message.
func (m *StatusBarModel) ClearMessage() {
	m.statusMessage = ""
}

// ClearIfSeqMatch clears the message only if the given seq matches the current one.
// Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var leftHints string
	if m.statusMessage != "" {
		leftHints = " " + m.statusMessage
	} else {
		leftHints = m.keyHints()
	}
	rightInfo := m.contextInfo()

	leftRendered := statusBarAccentStyle.Render(leftHints)
	rightRendered := statusBarStyle.Render(rightInfo)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	padding := m.width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) keyHints() string {
	if m.filtering {
		return " [Esc]cancel [Enter]apply [type]filter"
	}

	switch m.mode {
	case ModeInsert:
		return " [Ctrl+S]submit [Esc]exit insert"
	case ModeOverlay:
		return " [Ctrl+S]submit [Esc]cancel"
	}

	switch m.focused {
	case PanelQueue:
		return " [j/k]move [Enter]open [a]claim [u]unassign [x]decline [/]filter [r]refresh [?]help"
	case PanelComments:
		return " [j/k]scroll [i]comment [c]older comments [o]open [Tab]queue [?]help"
	default:
		return " [Tab]panel [?]help [q]quit"
	}
}

func (m StatusBarModel) contextInfo() string {
	modeStr := ""
	switch m.mode {
	case ModeInsert:
		modeStr = " INSERT "
	case ModeOverlay:
		modeStr = " OVERLAY "
	default:
		modeStr = " NAV "
	}

	reqInfo := ""
	if m.selectedRequest > 0 {
		reqInfo = fmt.Sprintf("request #%d ", m.selectedRequest)
	}

	return modeStr + reqInfo
}
