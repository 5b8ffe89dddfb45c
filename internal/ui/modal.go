package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"studentdesk/internal/debug"
)

// modalModel runs a single Dialog as a standalone program.
type modalModel struct {
	dialog *Dialog
	answer bool
	width  int
	height int
}

func (m *modalModel) Init() tea.Cmd {
	return nil
}

func (m *modalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dialog.SetTerminalWidth(msg.Width)
		return m, nil
	case DialogConfirmedMsg:
		m.answer = true
		return m, tea.Quit
	case DialogCancelledMsg, DialogDismissedMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	return m, cmd
}

func (m *modalModel) View() string {
	return centerDialog(m.dialog.View(), m.width, m.height)
}

func runModal(d *Dialog, opts []tea.ProgramOption) (bool, error) {
	m := &modalModel{dialog: d}
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return false, err
	}
	return m.answer, nil
}

// ModalPrompter asks for confirmation with a full-screen modal dialog.
// It backs "check --dialog", where no home screen is running.
type ModalPrompter struct {
	opts []tea.ProgramOption
}

// NewModalPrompter creates a prompter. Program options are passed through
// to bubbletea, which lets tests supply input and output.
func NewModalPrompter(opts ...tea.ProgramOption) *ModalPrompter {
	return &ModalPrompter{opts: opts}
}

// Confirm shows the dialog and blocks until it is answered.
// A failure to run the dialog counts as no.
func (p *ModalPrompter) Confirm(title, message string) bool {
	ok, err := runModal(NewConfirmDialog(title, message), p.opts)
	if err != nil {
		debug.Logf("confirm dialog failed: %v", err)
		return false
	}
	return ok
}

// ModalNotifier shows errors in a full-screen modal dialog.
type ModalNotifier struct {
	opts     []tea.ProgramOption
	fallback *TerminalNotifier
}

// NewModalNotifier creates a notifier. If the dialog cannot be shown the
// error is written to stderr instead.
func NewModalNotifier(opts ...tea.ProgramOption) *ModalNotifier {
	return &ModalNotifier{opts: opts, fallback: NewTerminalNotifier(nil)}
}

// NotifyError shows the error and blocks until it is dismissed.
func (n *ModalNotifier) NotifyError(title, message string) {
	if _, err := runModal(NewErrorDialog(title, message), n.opts); err != nil {
		debug.Logf("error dialog failed: %v", err)
		n.fallback.NotifyError(title, message)
	}
}
