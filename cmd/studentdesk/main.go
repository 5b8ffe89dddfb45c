package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studentdesk/internal/config"
	"studentdesk/internal/debug"
	"studentdesk/internal/ui"
	"studentdesk/internal/ui/theme"
	"studentdesk/internal/update"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var silent silentError
		if !errors.As(err, &silent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath    string
	debug         bool
	noUpdateCheck bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "studentdesk",
		Short: "Student records desk",
		Long: `StudentDesk opens the home screen and checks for a newer release shortly
after startup. When an update is accepted the bundled updater takes over
and StudentDesk exits.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd, stderr)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.UpdateSettings()
			if err != nil {
				return err
			}
			// The home screen confirms through its own dialog; the notifier
			// reports a failed handoff after the program has exited.
			checker := newChecker(settings, Version, update.WithNotifier(ui.NewModalNotifier()))
			appCfg := ui.Config{
				Version:        Version,
				Checker:        checker,
				CheckDelay:     settings.Delay,
				ChecksDisabled: settings.Disabled,
				Context:        cmd.Context(),
			}
			return runHome(appCfg, func(app *ui.App) programRunner {
				return tea.NewProgram(app, tea.WithAltScreen())
			}, checker.Handoff)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the user config file (default ~/.studentdesk/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write a debug log to ~/.studentdesk/debug.log (or set SD_DEBUG=true)")
	cmd.PersistentFlags().BoolVar(&opts.noUpdateCheck, "no-update-check", false, "Do not check for updates from the home screen (or set SD_UPDATE_DISABLED=true)")

	cmd.AddCommand(newCheckCmd(stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

// setup loads configuration, applies explicitly set flags on top and
// starts the debug log.
func (o *rootOptions) setup(cmd *cobra.Command, stderr io.Writer) error {
	var initOpts []config.Option
	if o.configPath != "" {
		initOpts = append(initOpts, config.WithUserConfig(o.configPath))
	}
	if err := config.Initialize(initOpts...); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	overrides := map[string]any{}
	if cmd.Flags().Changed("debug") {
		overrides[config.KeyDebug] = o.debug
	}
	if cmd.Flags().Changed("no-update-check") {
		overrides[config.KeyUpdateDisabled] = o.noUpdateCheck
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
	}
	theme.SetTheme(config.GetString(config.KeyTheme))
	return nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// runHome runs the home screen. A confirmed update is handed off only after
// the program has exited and restored the terminal. If the handoff fails the
// error has already been shown and the home screen opens again without a
// second startup check.
func runHome(cfg ui.Config, factory programFactory, handoff func(update.HandoffRequest) error) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	for {
		app := ui.NewApp(cfg)
		prog := factory(app)
		if prog == nil {
			return fmt.Errorf("program is nil")
		}
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("run UI: %w", err)
		}

		req, ok := app.HandoffRequest()
		if !ok {
			return nil
		}
		if err := handoff(req); err == nil {
			return nil
		}
		cfg.SkipStartupCheck = true
	}
}
