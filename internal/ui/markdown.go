package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// maxNotesLines caps the release notes shown inside the confirm dialog.
const maxNotesLines = 8

// hasDarkBackground is a variable so tests can pin the glamour style.
var hasDarkBackground = termenv.HasDarkBackground

func glamourStyle() string {
	if hasDarkBackground() {
		return "dark"
	}
	return "light"
}

// renderNotes renders release notes markdown for a dialog of the given
// width. Rendering failures fall back to plain wrapped text.
func renderNotes(notes string, width int) []string {
	notes = strings.TrimSpace(notes)
	if notes == "" || width <= 0 {
		return nil
	}

	var lines []string
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := renderer.Render(notes); err == nil {
			lines = strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}
	if lines == nil {
		lines = wrapLines(notes, width)
	}

	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	if len(lines) > maxNotesLines {
		lines = append(lines[:maxNotesLines-1], styleMuted().Render("…"))
	}
	return lines
}
