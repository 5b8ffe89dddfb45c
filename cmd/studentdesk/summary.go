package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"studentdesk/internal/ui/theme"
)

// printCheckSummary prints a human readable check result.
func printCheckSummary(w io.Writer, r checkResult) {
	p := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	versionStyle := lipgloss.NewStyle().Foreground(p.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(p.TextMuted)
	okStyle := lipgloss.NewStyle().Foreground(p.Success)
	warnStyle := lipgloss.NewStyle().Foreground(p.Warning)
	errStyle := lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	header := appStyle.Render("StudentDesk") + " " + versionStyle.Render(r.Current)

	switch r.Status {
	case statusUpToDate:
		_, _ = fmt.Fprintln(w, header+" "+okStyle.Render("is up to date."))
	case statusSkipped:
		_, _ = fmt.Fprintln(w, header+" "+dimStyle.Render("is a development build; update checks are skipped."))
	case statusNoInstaller:
		_, _ = fmt.Fprintln(w, header+" "+warnStyle.Render(fmt.Sprintf("- version %s has no installer for this platform.", r.Latest)))
	case statusFailed:
		_, _ = fmt.Fprintln(w, header+" "+errStyle.Render("- update check failed: ")+r.Error)
	case statusAvailable:
		_, _ = fmt.Fprintln(w, header+" "+warnStyle.Render("→ "+r.Latest+" available"))
		_, _ = fmt.Fprintln(w, dimStyle.Render("  Installer: ")+r.Asset)
		if r.Published != "" {
			_, _ = fmt.Fprintln(w, dimStyle.Render("  Published: ")+r.Published)
		}
		printHandoffSummary(w, r, dimStyle, errStyle)
	}
}

func printHandoffSummary(w io.Writer, r checkResult, dimStyle, errStyle lipgloss.Style) {
	switch {
	case !r.Confirmed:
		_, _ = fmt.Fprintln(w, dimStyle.Render("Run 'studentdesk check --yes' to install."))
	case r.Error != "":
		_, _ = fmt.Fprintln(w, errStyle.Render("Update not started: ")+r.Error)
	case r.DryRun && r.Handoff != nil:
		_, _ = fmt.Fprintln(w, dimStyle.Render("Dry run, would launch:"))
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", r.Handoff.Updater, r.Handoff.DownloadURL, r.Handoff.Target)
	}
}
