// Package theme provides the semantic color palettes used by the studentdesk UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the semantic colors of a theme.
// Every color is adaptive so light terminals stay readable.
type Palette struct {
	Primary lipgloss.AdaptiveColor // focused borders, header background
	Accent  lipgloss.AdaptiveColor // versions, key hints

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Background lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor // modal background
	Border     lipgloss.AdaptiveColor
}

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

func init() {
	RegisterTheme("tokyonight", Palette{
		Primary:    c("#82aaff", "#2e7de9"),
		Accent:     c("#ff966c", "#b15c00"),
		Error:      c("#ff757f", "#f52a65"),
		Warning:    c("#ffc777", "#8c6c3e"),
		Success:    c("#c3e88d", "#587539"),
		Text:       c("#c8d3f5", "#3760bf"),
		TextMuted:  c("#636da6", "#848cb5"),
		Background: c("#222436", "#e1e2e7"),
		Surface:    c("#2f334d", "#c8c9ce"),
		Border:     c("#3b4261", "#a8aecb"),
	})
	RegisterTheme("dracula", Palette{
		Primary:    c("#bd93f9", "#7c4dff"),
		Accent:     c("#ff79c6", "#c2185b"),
		Error:      c("#ff5555", "#d32f2f"),
		Warning:    c("#ffb86c", "#b26a00"),
		Success:    c("#50fa7b", "#2e7d32"),
		Text:       c("#f8f8f2", "#282a36"),
		TextMuted:  c("#6272a4", "#6272a4"),
		Background: c("#282a36", "#f8f8f2"),
		Surface:    c("#44475a", "#e6e6e1"),
		Border:     c("#44475a", "#bdbdbd"),
	})
	RegisterTheme("nord", Palette{
		Primary:    c("#88C0D0", "#5E81AC"),
		Accent:     c("#8FBCBB", "#8FBCBB"),
		Error:      c("#BF616A", "#BF616A"),
		Warning:    c("#D08770", "#D08770"),
		Success:    c("#A3BE8C", "#A3BE8C"),
		Text:       c("#ECEFF4", "#2E3440"),
		TextMuted:  c("#8B95A7", "#3B4252"),
		Background: c("#2E3440", "#ECEFF4"),
		Surface:    c("#3B4252", "#E5E9F0"),
		Border:     c("#434C5E", "#4C566A"),
	})
	RegisterTheme("solarized", Palette{
		Primary:    c("#268bd2", "#268bd2"),
		Accent:     c("#2aa198", "#2aa198"),
		Error:      c("#dc322f", "#dc322f"),
		Warning:    c("#b58900", "#b58900"),
		Success:    c("#859900", "#859900"),
		Text:       c("#839496", "#657b83"),
		TextMuted:  c("#586e75", "#93a1a1"),
		Background: c("#002b36", "#fdf6e3"),
		Surface:    c("#073642", "#eee8d5"),
		Border:     c("#073642", "#eee8d5"),
	})
}
