// Package update implements the self-update orchestrator.
//
// This package handles:
//   - Parsing and ordering release version strings
//   - Fetching the latest release metadata and selecting the platform asset
//   - Deciding whether an update is available
//   - Handing the process over to the companion updater, which replaces the
//     running binary after this process exits
//
// The package has no UI. Confirmation and error display are supplied by the
// host through the Prompter and Notifier interfaces.
//
// Example usage:
//
//	checker := update.NewChecker(update.CheckerConfig{
//	    Owner:          "studentdesk",
//	    Repo:           "studentdesk",
//	    CurrentVersion: version,
//	}, update.WithPrompter(prompter), update.WithNotifier(notifier))
//	outcome := checker.Run(ctx)
//	if outcome.Err != nil {
//	    // the updater could not be started; the application keeps running
//	}
package update
