package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studentdesk/internal/config"
	"studentdesk/internal/debug"
	appErrors "studentdesk/internal/errors"
	"studentdesk/internal/ui/theme"
	"studentdesk/internal/update"
)

// Config configures the UI application.
type Config struct {
	Version string
	// Checker runs the update check. A nil Checker disables checks.
	Checker *update.Checker
	// CheckDelay is how long after startup the check runs.
	CheckDelay time.Duration
	// ChecksDisabled turns off both the delayed and the manual check.
	ChecksDisabled bool
	// SkipStartupCheck keeps manual checks but drops the delayed one.
	SkipStartupCheck bool
	// Context bounds the background check; defaults to context.Background.
	Context context.Context
	// SaveTheme persists the selected theme; defaults to config.SaveTheme.
	SaveTheme func(name string) error
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// checkDueMsg fires when the delayed update check should start.
type checkDueMsg struct{}

// decisionMsg carries the result of a background update check.
type decisionMsg struct {
	decision update.UpdateDecision
}

type themeSavedMsg struct {
	name string
	err  error
}

// App is the home screen that hosts the update check.
type App struct {
	cfg  Config
	keys KeyMap

	width  int
	height int

	status     string
	statusKind statusKind

	checking bool
	dialog   *Dialog
	pending  update.UpdateDecision
	request  *update.HandoffRequest
}

// NewApp creates the home screen.
func NewApp(cfg Config) *App {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.SaveTheme == nil {
		cfg.SaveTheme = config.SaveTheme
	}
	if cfg.CheckDelay < 0 {
		cfg.CheckDelay = 0
	}
	return &App{cfg: cfg, keys: DefaultKeyMap()}
}

// HandoffRequest returns the request built after the user confirmed an
// update. The caller performs the handoff once the program has exited.
func (m *App) HandoffRequest() (update.HandoffRequest, bool) {
	if m.request == nil {
		return update.HandoffRequest{}, false
	}
	return *m.request, true
}

func (m *App) checksEnabled() bool {
	return !m.cfg.ChecksDisabled && m.cfg.Checker != nil && !m.cfg.Checker.Skip()
}

// Init schedules the one-shot update check.
func (m *App) Init() tea.Cmd {
	if !m.checksEnabled() {
		m.setStatus(statusInfo, "Update checks are off for this build.")
		return nil
	}
	if m.cfg.SkipStartupCheck {
		return nil
	}
	return tea.Tick(m.cfg.CheckDelay, func(time.Time) tea.Msg { return checkDueMsg{} })
}

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.dialog != nil {
			m.dialog.SetTerminalWidth(msg.Width)
		}
		return m, nil

	case checkDueMsg:
		return m, m.startCheck()

	case decisionMsg:
		return m, m.handleDecision(msg.decision)

	case DialogConfirmedMsg:
		return m, m.handleConfirmed()

	case DialogCancelledMsg:
		m.dialog = nil
		m.setStatus(statusInfo, "Update postponed.")
		return m, nil

	case DialogDismissedMsg:
		m.dialog = nil
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			debug.Logf("save theme %s: %v", msg.name, msg.err)
			m.setStatus(statusWarning, fmt.Sprintf("Theme %s applied but not saved.", msg.name))
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("Theme: %s", msg.name))
		}
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Check):
		if !m.checksEnabled() {
			m.setStatus(statusInfo, "Update checks are off for this build.")
			return nil
		}
		return m.startCheck()
	case key.Matches(msg, m.keys.Theme):
		name := theme.CycleTheme()
		save := m.cfg.SaveTheme
		return func() tea.Msg {
			return themeSavedMsg{name: name, err: save(name)}
		}
	}
	return nil
}

// startCheck runs the network check off the render loop.
// Only one check runs at a time.
func (m *App) startCheck() tea.Cmd {
	if m.checking || m.dialog != nil || m.request != nil {
		return nil
	}
	m.checking = true
	m.setStatus(statusInfo, "Checking for updates…")

	checker := m.cfg.Checker
	ctx := m.cfg.Context
	current := m.cfg.Version
	return func() tea.Msg {
		log := debug.WithFields(logrus.Fields{"check": uuid.NewString(), "current": current})
		d := checker.Check(ctx)
		update.LogDecision(log, d)
		return decisionMsg{decision: d}
	}
}

func (m *App) handleDecision(d update.UpdateDecision) tea.Cmd {
	m.checking = false
	switch d.Kind {
	case update.NoUpdateAvailable:
		m.setStatus(statusSuccess, fmt.Sprintf("StudentDesk is up to date (%s).", d.Current))
	case update.CheckFailed:
		// Logged by the check; the user is not interrupted.
		m.setStatus(statusInfo, "")
	case update.UpdateAvailable:
		m.pending = d
		m.dialog = NewConfirmDialog(d.PromptTitle(), d.PromptMessage()).
			WithCopyText(d.DownloadURL)
		if d.Release != nil {
			m.dialog.WithNotes(d.Release.Notes).WithReleased(d.Release.PublishedAt)
		}
		m.dialog.SetTerminalWidth(m.width)
	}
	return nil
}

func (m *App) handleConfirmed() tea.Cmd {
	m.dialog = nil
	req, err := m.cfg.Checker.Request(m.pending)
	if err != nil {
		debug.WithFields(logrus.Fields{"code": appErrors.CodeOf(err)}).WithError(err).Error("build handoff request")
		m.dialog = NewErrorDialog(update.ErrorTitle, appErrors.MessageOf(err))
		m.dialog.SetTerminalWidth(m.width)
		m.setStatus(statusError, "The update could not be started.")
		return nil
	}
	m.request = &req
	m.setStatus(statusInfo, "Starting updater…")
	return tea.Quit
}

func (m *App) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// View implements tea.Model.
func (m *App) View() string {
	if m.dialog != nil {
		return centerDialog(m.dialog.View(), m.width, m.height)
	}

	header := styleAppHeader().Render("StudentDesk") + " " + styleVersion().Render(m.displayVersion())
	body := []string{
		"",
		lipgloss.NewStyle().Foreground(palette().Text).Render("Student records, attendance and reports."),
		styleMuted().Render("Pages load from the sidebar in the desktop build."),
		"",
	}
	if m.status != "" {
		body = append(body, styleStatus(m.statusKind).Render(m.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(body, "\n"))
	footer := m.renderFooter()

	if m.height <= 0 {
		return content + "\n\n" + footer
	}
	gap := m.height - lipgloss.Height(content) - lipgloss.Height(footer)
	if gap < 1 {
		gap = 1
	}
	return content + strings.Repeat("\n", gap) + footer
}

func (m *App) displayVersion() string {
	if update.IsDevelopmentVersion(m.cfg.Version) {
		return "dev"
	}
	if v, err := update.ParseVersion(m.cfg.Version); err == nil {
		return "v" + v.String()
	}
	return m.cfg.Version
}

func (m *App) renderFooter() string {
	bindings := []key.Binding{m.keys.Check, m.keys.Theme, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styleKeyPill().Render(h.Key)+" "+styleMuted().Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if m.width > 0 {
		line = truncate(line, m.width)
	}
	return line
}
