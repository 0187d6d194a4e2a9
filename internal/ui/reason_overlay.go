package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReasonOverlayModel renders a centered overlay prompting for an optional
// decline reason. Esc cancels the whole operation without any network
// call; Ctrl+S submits, with an empty reason allowed.
type ReasonOverlayModel struct {
	textarea textarea.Model
	visible  bool

	width  int
	height int

	// Target request
	targetID    int
	targetTitle string
}

func NewReasonOverlayModel() ReasonOverlayModel {
	ta := textarea.New()
	ta.Placeholder = "Reason (optional)..."
	ta.CharLimit = 65535
	ta.SetHeight(4)
	ta.ShowLineNumbers = false
	ta.Blur()
	return ReasonOverlayModel{textarea: ta}
}

// Show opens the overlay for the given request.
func (m *ReasonOverlayModel) Show(id int, title string) tea.Cmd {
	m.visible = true
	m.targetID = id
	m.targetTitle = title
	m.textarea.SetValue("")
	return m.textarea.Focus()
}

// Hide dismisses the overlay.
func (m *ReasonOverlayModel) Hide() {
	m.visible = false
	m.textarea.Blur()
}

// IsVisible returns whether the overlay is currently shown.
func (m ReasonOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize updates terminal dimensions for centering.
func (m *ReasonOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
	m.textarea.SetWidth(m.innerWidth())
}

func (m ReasonOverlayModel) Update(msg tea.Msg) (ReasonOverlayModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		// Full cancel: the decline never happens.
		m.Hide()
		return m, func() tea.Msg { return DeclineCancelledMsg{} }
	case "ctrl+s":
		id := m.targetID
		reason := strings.TrimSpace(m.textarea.Value())
		m.Hide()
		return m, func() tea.Msg {
			return DeclineRequestedMsg{ID: id, Reason: reason}
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(keyMsg)
	return m, cmd
}

func (m ReasonOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	overlayW := m.overlayWidth()
	innerW := m.innerWidth()

	title := reasonOverlayTitleStyle.Render(fmt.Sprintf(" Decline #%d ", m.targetID))
	titleLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Left, title)

	subject := commentMetaStyle.Render(wordWrap(m.targetTitle, innerW))
	footer := reasonOverlayHintStyle.Render("Ctrl+S: decline  Esc: cancel")

	box := lipgloss.JoinVertical(lipgloss.Left,
		titleLine, subject, "", m.textarea.View(), "", footer)

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1).
		Width(overlayW - 2)

	rendered := overlayStyle.Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

func (m ReasonOverlayModel) overlayWidth() int {
	w := int(float64(m.width) * 0.55)
	if w < 44 {
		w = min(44, m.width)
	}
	return w
}

func (m ReasonOverlayModel) innerWidth() int {
	w := m.overlayWidth() - 6
	if w < 10 {
		w = 10
	}
	return w
}

var (
	reasonOverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("196")).
				Padding(0, 1)
	reasonOverlayHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)
