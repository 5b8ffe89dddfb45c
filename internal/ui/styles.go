package ui

import (
	"github.com/charmbracelet/lipgloss"

	"studentdesk/internal/ui/theme"
)

// Dialog content width before padding and border.
// A RoundedBorder with Padding(1, 2) adds 6 columns on screen.
const (
	dialogWidth    = 52
	dialogMinWidth = 28
	dialogHPadding = 2
)

func palette() theme.Palette {
	return theme.Current()
}

func styleDialog(border lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(palette().Surface).
		Padding(1, dialogHPadding)
}

func styleDialogTitle(fg lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(palette().Surface).
		Foreground(fg).
		Bold(true)
}

func styleDialogBody() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(palette().Surface).
		Foreground(palette().Text)
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(palette().Surface).
		Foreground(palette().Border)
}

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(palette().Primary).
		Foreground(palette().Background).
		Bold(true).
		Padding(0, 1)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(palette().Surface).
		Foreground(palette().TextMuted)
}

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(palette().Background).
		Background(palette().Primary).
		Bold(true).
		Padding(0, 1)
}

func styleVersion() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette().Accent).Bold(true)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette().TextMuted)
}

func styleStatus(kind statusKind) lipgloss.Style {
	p := palette()
	switch kind {
	case statusSuccess:
		return lipgloss.NewStyle().Foreground(p.Success)
	case statusWarning:
		return lipgloss.NewStyle().Foreground(p.Warning)
	case statusError:
		return lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(p.TextMuted)
	}
}
