package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// truncate shortens s to width cells, ANSI-aware, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// wrapLines word-wraps text to width and returns the resulting lines.
// Words longer than width are hard-cut so no line overflows the dialog.
func wrapLines(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	wrapped := wordwrap.String(text, width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate(line, width)
		}
	}
	return lines
}

// padLineToWidth pads a line with the dialog background so it reaches width.
func padLineToWidth(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if width <= 0 || lineWidth >= width {
		return line
	}
	return line + styleDialogBody().Render(strings.Repeat(" ", width-lineWidth))
}
