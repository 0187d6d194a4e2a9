package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/oltea/internal/librarian"
)

// CommentsModel renders the detail panel for the selected merge request:
// header, comment thread (newest first, older ones collapsible), and a
// comment input.
type CommentsModel struct {
	viewport viewport.Model
	textarea textarea.Model
	md       MarkdownRenderer

	width   int
	height  int
	focused bool
	insert  bool
	ready   bool

	// row is the registry row being shown; nil until a request is selected.
	// The registry owns the state; this panel only renders it.
	row *RequestRow
}

func NewCommentsModel() CommentsModel {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = 65535
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Blur()
	return CommentsModel{textarea: ta}
}

// SetRow binds the panel to a registry row and re-renders. A nil row
// clears the panel.
func (m *CommentsModel) SetRow(row *RequestRow) {
	if m.row != row {
		m.textarea.SetValue("")
		m.viewport.GotoTop()
	}
	m.row = row
	m.Refresh()
}

// Row returns the currently bound row, or nil.
func (m *CommentsModel) Row() *RequestRow {
	return m.row
}

// Refresh re-renders the thread from current row state. Call after any
// row mutation.
func (m *CommentsModel) Refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderThread())
}

// ClearInput empties the comment input. Called on successful submission;
// failures keep the draft.
func (m *CommentsModel) ClearInput() {
	m.textarea.SetValue("")
}

// InputValue returns the trimmed comment draft.
func (m *CommentsModel) InputValue() string {
	return strings.TrimSpace(m.textarea.Value())
}

// InInsertMode reports whether the comment input is focused.
func (m *CommentsModel) InInsertMode() bool {
	return m.insert
}

// ExitInsert blurs the comment input without touching the draft.
func (m *CommentsModel) ExitInsert() {
	m.insert = false
	m.textarea.Blur()
}

func (m *CommentsModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	innerW := width - 4
	// Border (2), header (2), input (4), hints (1)
	innerH := height - 11
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	if !m.ready {
		m.viewport = viewport.New(innerW, innerH)
		m.ready = true
	} else {
		m.viewport.Width = innerW
		m.viewport.Height = innerH
	}
	m.textarea.SetWidth(innerW)
	m.Refresh()
}

func (m *CommentsModel) SetFocused(focused bool) {
	m.focused = focused
	if !focused {
		m.ExitInsert()
	}
}

func (m CommentsModel) Update(msg tea.Msg) (CommentsModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		// Cursor blink etc.
		if m.insert {
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.insert {
		return m.updateInsert(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, CommentsKeys.EnterInsert):
		if m.row == nil {
			return m, nil
		}
		m.insert = true
		cmd := m.textarea.Focus()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
}

func (m CommentsModel) updateInsert(msg tea.KeyMsg) (CommentsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, CommentsKeys.ExitInsert):
		m.ExitInsert()
		return m, nil
	case key.Matches(msg, CommentsKeys.Submit):
		// Empty input is a no-op: no message, no network call.
		body := m.InputValue()
		if body == "" || m.row == nil {
			return m, nil
		}
		id := m.row.ID
		return m, func() tea.Msg {
			return CommentSubmitMsg{ID: id, Body: body}
		}
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m CommentsModel) View() string {
	header := panelHeaderStyle(m.focused).Render(" Request")
	if m.row != nil {
		header = panelHeaderStyle(m.focused).Render(fmt.Sprintf(" Request #%d", m.row.ID))
	}

	var body string
	if m.row == nil {
		body = renderEmptyState("No request selected", "Pick one from the queue")
	} else {
		body = m.viewport.View()
	}

	sections := []string{header, body}
	if m.row != nil {
		sections = append(sections, m.textarea.View(), m.renderInputHint())
	}
	inner := lipgloss.JoinVertical(lipgloss.Left, sections...)

	style := panelStyle(m.focused, m.insert, m.width-2, m.height-2)
	return style.Render(inner)
}

func (m CommentsModel) renderInputHint() string {
	if m.insert {
		return commentMetaStyle.Render(" Ctrl+S submit · Esc cancel")
	}
	return commentMetaStyle.Render(" i to write a comment")
}

// renderThread builds the scrollable detail content: request header,
// newest comment, and the collapsible older-comment section.
func (m CommentsModel) renderThread() string {
	if m.row == nil {
		return ""
	}
	row := m.row
	innerW := m.viewport.Width
	var b strings.Builder

	b.WriteString(detailTitleStyle.Render(wordWrap(row.Title, innerW)))
	b.WriteString("\n")
	b.WriteString(detailLabelStyle.Render("by ") + row.Submitter)
	b.WriteString(detailLabelStyle.Render("  ·  "))
	b.WriteString(requestStatusStyle(row.Status).Render(row.Status))
	if row.Reviewer != "" {
		b.WriteString("  " + reviewerBadgeStyle.Render("@"+row.Reviewer))
	}
	b.WriteString("\n")
	if row.ResolveVisible {
		b.WriteString(detailLabelStyle.Render("o opens this request for resolution"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if row.CommentCount == 0 {
		b.WriteString(commentCollapsedStyle.Render("No comments yet."))
		return b.String()
	}

	b.WriteString(m.renderComment(row.Comments[0], innerW))

	older := row.Comments[1:]
	if len(older) == 0 {
		return b.String()
	}

	b.WriteString("\n\n")
	if !row.ShowAllComments {
		label := fmt.Sprintf("▸ %d older comment", len(older))
		if len(older) != 1 {
			label += "s"
		}
		b.WriteString(commentCollapsedStyle.Render(label + "  (c to show)"))
		return b.String()
	}

	b.WriteString(commentCollapsedStyle.Render("▾ older comments  (c to hide)"))
	for _, c := range older {
		b.WriteString("\n\n")
		b.WriteString(m.renderComment(c, innerW))
	}
	return b.String()
}

func (m CommentsModel) renderComment(c librarian.Comment, width int) string {
	header := commentAuthorStyle.Render("@" + c.Author)
	if !c.CreatedAt.IsZero() {
		header += commentMetaStyle.Render(" · " + c.CreatedAt.Format("Jan 2 15:04"))
	}
	body := m.md.RenderMarkdown(c.Body, width)
	return header + "\n" + body
}
