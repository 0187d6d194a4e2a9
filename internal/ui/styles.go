package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Panel border colors
var (
	focusedBorderColor    = lipgloss.Color("62")  // bright purple/blue
	unfocusedBorderColor  = lipgloss.Color("240") // dim gray
	insertModeBorderColor = lipgloss.Color("42")  // green
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("62")).
				Bold(true)
)

// Request status colors keyed by the service's status strings.
var requestStatusColors = map[string]string{
	"Pending":  "226", // yellow
	"Assigned": "33",  // blue
	"Merged":   "42",  // green
	"Declined": "196", // red
}

// requestStatusStyle returns a styled status label.
func requestStatusStyle(status string) lipgloss.Style {
	color, ok := requestStatusColors[status]
	if !ok {
		color = "244"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Comment rendering
var (
	commentAuthorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("33")).
				Bold(true)
	commentMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
	commentCollapsedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)
)

// Detail header styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
	reviewerBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("33")).
				Padding(0, 1)
)

// Panel style builders
func panelStyle(focused bool, insertMode bool, width, height int) lipgloss.Style {
	borderColor := unfocusedBorderColor
	if focused {
		borderColor = focusedBorderColor
		if insertMode {
			borderColor = insertModeBorderColor
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(height)
}

func panelHeaderStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
}

// newLoadingSpinner creates a consistently styled spinner for loading states.
func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return s
}

// renderEmptyState renders a consistent empty state message with optional action hint.
func renderEmptyState(message, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(1, 2).
		Render("— " + message)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// renderErrorWithHint renders a consistent error message with retry hint.
func renderErrorWithHint(errMsg, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Padding(1, 2).
		Render(errMsg)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// formatUserError converts raw error strings into user-friendly messages.
func formatUserError(err string) string {
	lower := strings.ToLower(err)
	switch {
	case strings.Contains(lower, "http 401") || strings.Contains(lower, "http 403"):
		return "Not authorized.\nCheck the session token in your config."
	case strings.Contains(lower, "http 429"):
		return "Rate limited by the server.\nWait a moment and try again."
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return "Request timed out.\nCheck your connection and try again."
	case strings.Contains(lower, "no such host") || strings.Contains(lower, "connection refused"):
		return "Network error.\nCheck your internet connection."
	case strings.Contains(lower, "failed to parse"):
		return "Unexpected response from the server.\nThe service may be down or you may be logged out."
	default:
		return err
	}
}
