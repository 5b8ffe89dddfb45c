package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind selects the behaviour of a Dialog.
type DialogKind int

const (
	// DialogConfirm asks a yes/no question.
	DialogConfirm DialogKind = iota
	// DialogError shows an error until dismissed.
	DialogError
)

// DialogConfirmedMsg is sent when the user answers yes.
type DialogConfirmedMsg struct{}

// DialogCancelledMsg is sent when the user answers no or dismisses a confirm dialog.
type DialogCancelledMsg struct{}

// DialogDismissedMsg is sent when an error dialog is closed.
type DialogDismissedMsg struct{}

// clipboardWrite is a variable so tests can avoid touching the system clipboard.
var clipboardWrite = clipboard.WriteAll

// Dialog is a centered modal used for the update prompt and update errors.
type Dialog struct {
	kind     DialogKind
	title    string
	message  string
	notes    string
	released time.Time
	copyText string
	width    int
	keys     dialogKeyMap

	copied  bool
	copyErr error
}

// NewConfirmDialog creates a yes/no dialog.
func NewConfirmDialog(title, message string) *Dialog {
	return newDialog(DialogConfirm, title, message)
}

// NewErrorDialog creates an error dialog.
func NewErrorDialog(title, message string) *Dialog {
	return newDialog(DialogError, title, message).WithCopyText(message)
}

func newDialog(kind DialogKind, title, message string) *Dialog {
	return &Dialog{
		kind:    kind,
		title:   title,
		message: message,
		width:   dialogWidth,
		keys:    defaultDialogKeys(),
	}
}

// WithNotes attaches markdown release notes shown below the message.
func (d *Dialog) WithNotes(notes string) *Dialog {
	d.notes = notes
	return d
}

// WithReleased shows when the offered release was published.
func (d *Dialog) WithReleased(t time.Time) *Dialog {
	d.released = t
	return d
}

// WithCopyText sets the text copied to the clipboard with "c".
func (d *Dialog) WithCopyText(text string) *Dialog {
	d.copyText = strings.TrimSpace(text)
	return d
}

// Kind returns the dialog kind.
func (d *Dialog) Kind() DialogKind {
	return d.kind
}

// Copied reports whether the copy text reached the clipboard.
func (d *Dialog) Copied() bool {
	return d.copied
}

// SetTerminalWidth shrinks the dialog to fit narrow terminals.
func (d *Dialog) SetTerminalWidth(termWidth int) {
	w := dialogWidth
	if termWidth > 0 {
		// border and padding on both sides
		if avail := termWidth - 2 - 2*dialogHPadding; avail < w {
			w = avail
		}
	}
	if w < dialogMinWidth {
		w = dialogMinWidth
	}
	d.width = w
}

// Init implements tea.Model.
func (d *Dialog) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Answers are reported as messages.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	if d.copyText != "" && key.Matches(keyMsg, d.keys.Copy) {
		d.copyErr = clipboardWrite(d.copyText)
		d.copied = d.copyErr == nil
		return d, nil
	}

	switch d.kind {
	case DialogConfirm:
		switch {
		case key.Matches(keyMsg, d.keys.Yes):
			return d, func() tea.Msg { return DialogConfirmedMsg{} }
		case key.Matches(keyMsg, d.keys.No):
			return d, func() tea.Msg { return DialogCancelledMsg{} }
		}
	case DialogError:
		if key.Matches(keyMsg, d.keys.Dismiss) {
			return d, func() tea.Msg { return DialogDismissedMsg{} }
		}
	}
	return d, nil
}

// View renders the dialog box.
func (d *Dialog) View() string {
	border := palette().Primary
	titleColor := palette().Accent
	if d.kind == DialogError {
		border = palette().Error
		titleColor = palette().Error
	}

	lines := d.renderLines(titleColor)
	for i, line := range lines {
		lines[i] = padLineToWidth(line, d.width)
	}
	return styleDialog(border).Render(strings.Join(lines, "\n"))
}

func (d *Dialog) renderLines(titleColor lipgloss.TerminalColor) []string {
	body := styleDialogBody()
	divider := styleDivider().Render(strings.Repeat("─", d.width))

	icon := "?"
	if d.kind == DialogError {
		icon = "✖"
	}

	var lines []string
	lines = append(lines, styleDialogTitle(titleColor).Render(truncate(icon+" "+d.title, d.width)))
	lines = append(lines, divider)
	if released := formatReleased(d.released); released != "" {
		lines = append(lines, styleMuted().Render(truncate(released, d.width)))
	}
	lines = append(lines, "")
	for _, line := range wrapLines(d.message, d.width) {
		lines = append(lines, body.Render(line))
	}

	if notes := renderNotes(d.notes, d.width); len(notes) > 0 {
		lines = append(lines, "", styleKeyDesc().Bold(true).Render("Release notes"))
		lines = append(lines, notes...)
	}

	if d.copied {
		lines = append(lines, "", styleKeyDesc().Render("Copied to clipboard."))
	} else if d.copyErr != nil {
		lines = append(lines, "", styleKeyDesc().Render(truncate("Copy failed: "+d.copyErr.Error(), d.width)))
	}

	lines = append(lines, "", divider, d.renderFooter())
	return lines
}

func (d *Dialog) renderFooter() string {
	var bindings []key.Binding
	if d.kind == DialogConfirm {
		bindings = append(bindings, d.keys.Yes, d.keys.No)
	} else {
		bindings = append(bindings, d.keys.Dismiss)
	}
	if d.copyText != "" {
		bindings = append(bindings, d.keys.Copy)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styleKeyPill().Render(h.Key)+styleKeyDesc().Render(" "+h.Desc))
	}
	return truncate(strings.Join(parts, styleKeyDesc().Render("  ")), d.width)
}

// centerDialog places the dialog in the middle of a width x height area.
func centerDialog(view string, width, height int) string {
	if width <= 0 || height <= 0 {
		return view
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, view)
}
