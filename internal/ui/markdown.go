package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer renders comment bodies for the comments panel. Most
// moderation comments are a plain sentence or two; those skip glamour
// entirely so its margins don't eat panel width. Bodies with markdown
// constructs go through a cached glamour renderer per width.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// RenderMarkdown renders a comment body to fit the given width. Falls
// back to plain word wrapping if glamour fails.
func (mr *MarkdownRenderer) RenderMarkdown(body string, width int) string {
	if width < 10 {
		width = 10
	}
	if isPlainText(body) {
		return wordWrap(body, width)
	}
	r := mr.getOrCreate(width)
	if r == nil {
		return wordWrap(body, width)
	}
	out, err := r.Render(body)
	if err != nil {
		return wordWrap(body, width)
	}
	return strings.TrimSpace(out)
}

// isPlainText reports whether a comment body carries no markdown worth a
// full render. Inline markers anywhere count; headings, quotes, and list
// items only at line starts, so request references like "#9001" or
// prose hyphens stay plain.
func isPlainText(s string) bool {
	if strings.ContainsAny(s, "`*_[|~") {
		return false
	}
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "# ") ||
			strings.HasPrefix(trimmed, "> ") {
			return false
		}
	}
	return true
}

func (mr *MarkdownRenderer) getOrCreate(width int) *glamour.TermRenderer {
	if mr.renderer != nil && mr.width == width {
		return mr.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil
	}
	mr.renderer = r
	mr.width = width
	return r
}

// wordWrap wraps text to fit within the given width.
func wordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if lipgloss.Width(line) <= width {
			if result.Len() > 0 {
				result.WriteString("\n")
			}
			result.WriteString(line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if currentLine == "" {
				currentLine = word
			} else if lipgloss.Width(currentLine+" "+word) <= width {
				currentLine += " " + word
			} else {
				if result.Len() > 0 {
					result.WriteString("\n")
				}
				result.WriteString(currentLine)
				currentLine = word
			}
		}
		if currentLine != "" {
			if result.Len() > 0 {
				result.WriteString("\n")
			}
			result.WriteString(currentLine)
		}
	}
	return result.String()
}
