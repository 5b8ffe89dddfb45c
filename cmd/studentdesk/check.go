package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studentdesk/internal/config"
	appErrors "studentdesk/internal/errors"
	"studentdesk/internal/ui"
	"studentdesk/internal/update"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return formatText, nil
	case "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// silentError marks an error that has already been shown to the user.
type silentError struct {
	err error
}

func (e silentError) Error() string { return e.err.Error() }
func (e silentError) Unwrap() error { return e.err }

// newTerminalPrompter is a variable so tests can answer the prompt.
var newTerminalPrompter = func() update.Prompter {
	return ui.NewTerminalPrompter()
}

// newDialogPrompter backs --dialog; tests replace it.
var newDialogPrompter = func() update.Prompter {
	return ui.NewModalPrompter()
}

type checkOptions struct {
	yes    bool
	dryRun bool
	dialog bool
	output string
	delay  time.Duration
}

func newCheckCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer release",
		Long: `Check asks the release server for the latest version and offers to
install it. Accepting hands over to the updater and exits.

Examples:
  studentdesk check                  # ask before updating
  studentdesk check --yes            # update without asking
  studentdesk check --dialog         # ask in a full-screen dialog
  studentdesk check --dry-run --yes  # show what would be launched
  studentdesk check -o json          # report only, machine readable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), opts, stdout, stderr)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Install an available update without asking")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate the updater but do not launch it")
	cmd.Flags().BoolVar(&opts.dialog, "dialog", false, "Ask in a full-screen dialog instead of a line prompt")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json, yaml")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Wait before checking")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := parseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	settings, err := config.UpdateSettings()
	if err != nil {
		return err
	}

	var sp *checkSpinner
	if format == formatText {
		sp = newCheckSpinner(stderr)
		sp.Status("Checking for updates...")
	}
	defer sp.Stop()

	var prompter update.Prompter = update.StaticPrompter(opts.yes)
	if !opts.yes && format == formatText {
		if opts.dialog {
			prompter = newDialogPrompter()
		} else {
			prompter = newTerminalPrompter()
		}
	}
	notifier := ui.NewTerminalNotifier(stderr)

	checkerOpts := []update.CheckerOption{
		update.WithPrompter(update.PromptFunc(func(title, message string) bool {
			sp.Stop()
			return prompter.Confirm(title, message)
		})),
		update.WithNotifier(update.NotifyFunc(func(title, message string) {
			sp.Stop()
			notifier.NotifyError(title, message)
		})),
	}
	if opts.dryRun {
		checkerOpts = append(checkerOpts, update.WithHandoffer(dryRunHandoffer{}))
	}
	checker := newChecker(settings, Version, checkerOpts...)

	done := make(chan update.Outcome, 1)
	stop := update.Schedule(ctx, opts.delay, func(ctx context.Context) {
		done <- checker.Run(ctx)
	})

	var out update.Outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		stop()
		return ctx.Err()
	}
	sp.Stop()

	result := newCheckResult(out, Version, opts.dryRun)
	if err := writeCheckResult(stdout, format, result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	switch {
	case out.Err != nil:
		// The notifier has shown handoff errors already.
		if appErrors.CodeOf(out.Err).UserVisible() {
			return silentError{err: out.Err}
		}
		return out.Err
	case out.Decision.Kind == update.CheckFailed && !out.Decision.NothingInstallable():
		return silentError{err: out.Decision.Reason}
	}
	return nil
}

// dryRunHandoffer validates the request without launching anything.
type dryRunHandoffer struct{}

func (dryRunHandoffer) Handoff(req update.HandoffRequest) error {
	return req.Validate()
}

type checkStatus string

const (
	statusUpToDate    checkStatus = "up-to-date"
	statusAvailable   checkStatus = "update-available"
	statusNoInstaller checkStatus = "no-installer"
	statusFailed      checkStatus = "failed"
	statusSkipped     checkStatus = "skipped"
)

type handoffInfo struct {
	Updater     string `json:"updater" yaml:"updater"`
	DownloadURL string `json:"download_url" yaml:"download_url"`
	Target      string `json:"target" yaml:"target"`
}

type checkResult struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Status      checkStatus  `json:"status" yaml:"status"`
	Current     string       `json:"current" yaml:"current"`
	Latest      string       `json:"latest,omitempty" yaml:"latest,omitempty"`
	Asset       string       `json:"asset,omitempty" yaml:"asset,omitempty"`
	DownloadURL string       `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	Published   string       `json:"published,omitempty" yaml:"published,omitempty"`
	Confirmed   bool         `json:"confirmed" yaml:"confirmed"`
	DryRun      bool         `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Handoff     *handoffInfo `json:"handoff,omitempty" yaml:"handoff,omitempty"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

func newCheckResult(out update.Outcome, version string, dryRun bool) checkResult {
	d := out.Decision
	r := checkResult{
		ID:        out.ID,
		Current:   version,
		Confirmed: out.Confirmed,
		DryRun:    dryRun,
	}
	if !d.Current.IsZero() {
		r.Current = d.Current.String()
	}
	if !d.Latest.IsZero() {
		r.Latest = d.Latest.String()
	}

	switch {
	case out.Skipped:
		r.Status = statusSkipped
	case d.Kind == update.UpdateAvailable:
		r.Status = statusAvailable
		r.Asset = d.Asset.Name
		r.DownloadURL = d.DownloadURL
	case d.Kind == update.NoUpdateAvailable:
		r.Status = statusUpToDate
	case d.NothingInstallable():
		r.Status = statusNoInstaller
	default:
		r.Status = statusFailed
	}

	if d.Release != nil && !d.Release.PublishedAt.IsZero() {
		r.Published = d.Release.PublishedAt.UTC().Format(time.RFC3339)
	}
	if out.Request != nil {
		r.Handoff = &handoffInfo{
			Updater:     out.Request.UpdaterPath,
			DownloadURL: out.Request.DownloadURL,
			Target:      out.Request.TargetPath,
		}
	}

	switch {
	case out.Err != nil:
		r.Error = appErrors.MessageOf(out.Err)
	case d.Reason != nil:
		r.Error = d.Reason.Error()
	}
	return r
}

func writeCheckResult(w io.Writer, format outputFormat, r checkResult) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		printCheckSummary(w, r)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}
