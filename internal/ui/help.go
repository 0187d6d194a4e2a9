package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel renders a centered help overlay with keybinding reference.
type HelpOverlayModel struct {
	viewport viewport.Model
	width    int
	height   int
	visible  bool
	context  Panel // which panel was focused when help opened
	ready    bool
}

func NewHelpOverlayModel() HelpOverlayModel {
	return HelpOverlayModel{}
}

// Show makes the overlay visible and sets the context panel.
func (m *HelpOverlayModel) Show(context Panel) {
	m.visible = true
	m.context = context
	m.refreshContent()
}

// Hide dismisses the overlay.
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// IsVisible returns whether the overlay is currently shown.
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize updates the overlay dimensions and rebuilds the viewport.
func (m *HelpOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight

	innerW, innerH := m.innerDimensions()
	if !m.ready {
		m.viewport = viewport.New(innerW, innerH)
		m.ready = true
	} else {
		m.viewport.Width = innerW
		m.viewport.Height = innerH
	}
	m.refreshContent()
}

func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, GlobalKeys.Help), msg.String() == "esc", msg.String() == "q":
			m.Hide()
			return m, func() tea.Msg { return HelpClosedMsg{} }
		default:
			// Scroll the viewport with j/k/arrows
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	overlayW, overlayH := m.overlayDimensions()

	var content string
	if m.ready {
		content = m.viewport.View()
	}

	title := helpTitleStyle.Render(" Keyboard Shortcuts ")
	footer := helpFooterStyle.Render(" ? / Esc to close ")

	innerW := overlayW - 4
	if innerW < 1 {
		innerW = 1
	}

	titleLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, title)
	footerLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, footer)

	box := lipgloss.JoinVertical(lipgloss.Left, titleLine, "", content, "", footerLine)

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(overlayW - 2).
		Height(overlayH - 2)

	rendered := overlayStyle.Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// overlayDimensions returns the outer dimensions of the overlay box.
func (m HelpOverlayModel) overlayDimensions() (width, height int) {
	width = int(float64(m.width) * 0.65)
	height = int(float64(m.height) * 0.75)
	if width < 50 {
		width = min(50, m.width)
	}
	if height < 15 {
		height = min(15, m.height)
	}
	return width, height
}

// innerDimensions returns the viewport dimensions inside the overlay box.
func (m HelpOverlayModel) innerDimensions() (width, height int) {
	ow, oh := m.overlayDimensions()
	width = ow - 6
	height = oh - 8
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (m *HelpOverlayModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHelpContent())
	m.viewport.GotoTop()
}

func (m HelpOverlayModel) renderHelpContent() string {
	innerW, _ := m.innerDimensions()

	var b strings.Builder

	sections := []struct {
		title string
		match bool // whether this section matches current context
		keys  []helpEntry
	}{
		{
			title: "Global",
			keys: []helpEntry{
				{"Tab", "Switch panels"},
				{"r", "Refresh queue"},
				{"a", "Claim selected request"},
				{"u", "Unassign (when claimed)"},
				{"x", "Decline selected request"},
				{"o", "Open in browser (unclaimed only)"},
				{"c", "Show/hide older comments"},
				{"?", "Toggle this help"},
				{"q", "Quit"},
			},
		},
		{
			title: "Queue",
			match: m.context == PanelQueue,
			keys: []helpEntry{
				{"j / k", "Move up/down"},
				{"Space", "Select request"},
				{"Enter", "Select request + focus comments"},
				{"/", "Filter"},
			},
		},
		{
			title: "Comments",
			match: m.context == PanelComments,
			keys: []helpEntry{
				{"j / k", "Scroll thread"},
				{"i / Enter", "Write a comment"},
				{"Ctrl+S", "Submit comment"},
				{"Esc", "Exit insert mode"},
			},
		},
		{
			title: "Decline overlay",
			keys: []helpEntry{
				{"Ctrl+S", "Decline with reason (reason optional)"},
				{"Esc", "Cancel, nothing is sent"},
			},
		},
	}

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}

		titleStr := section.title
		if section.match {
			titleStr += " (current)"
		}

		if section.match {
			b.WriteString(helpSectionActiveStyle.Render(titleStr))
		} else {
			b.WriteString(helpSectionStyle.Render(titleStr))
		}
		b.WriteString("\n")

		divLen := min(lipgloss.Width(titleStr)+2, innerW)
		if section.match {
			b.WriteString(helpSectionActiveStyle.Render(strings.Repeat("─", divLen)))
		} else {
			b.WriteString(helpDividerStyle.Render(strings.Repeat("─", divLen)))
		}
		b.WriteString("\n")

		for _, entry := range section.keys {
			keyCol := helpKeyStyle.Render(padRight(entry.key, 16))
			descCol := helpDescStyle.Render(entry.desc)
			b.WriteString(keyCol + descCol + "\n")
		}
	}

	return b.String()
}

type helpEntry struct {
	key  string
	desc string
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// Help overlay styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("33"))

	helpSectionActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	helpDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)
