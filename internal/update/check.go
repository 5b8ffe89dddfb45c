package update

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studentdesk/internal/debug"
	appErrors "studentdesk/internal/errors"
)

// ErrorTitle is the title used when a handoff failure is reported to the user.
const ErrorTitle = "Update Error"

// Handoffer hands the process over to the external updater.
// *Coordinator is the production implementation.
type Handoffer interface {
	Handoff(req HandoffRequest) error
}

// CheckerConfig identifies the release feed and the local files involved in
// an update.
type CheckerConfig struct {
	Owner          string
	Repo           string
	CurrentVersion string

	// UpdaterPath and TargetPath default to DefaultUpdaterPath and
	// TargetPath when empty.
	UpdaterPath string
	TargetPath  string

	// Match selects the installable asset; nil means HasSuffix(InstallerSuffix()).
	Match AssetMatcher
}

// Outcome is the terminal result of one check run.
type Outcome struct {
	ID        string
	Skipped   bool
	Decision  UpdateDecision
	Confirmed bool
	Request   *HandoffRequest
	Err       error
}

// Checker runs the update check flow: fetch, decide, prompt, hand off.
// Every call works on fresh values; nothing is cached between checks.
type Checker struct {
	cfg       CheckerConfig
	resolver  *Resolver
	prompter  Prompter
	notifier  Notifier
	handoffer Handoffer
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithResolver sets the release resolver.
func WithResolver(r *Resolver) CheckerOption {
	return func(c *Checker) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithPrompter sets the confirmation capability.
func WithPrompter(p Prompter) CheckerOption {
	return func(c *Checker) {
		if p != nil {
			c.prompter = p
		}
	}
}

// WithNotifier sets the error notification capability.
func WithNotifier(n Notifier) CheckerOption {
	return func(c *Checker) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithHandoffer sets the component that launches the updater.
func WithHandoffer(h Handoffer) CheckerOption {
	return func(c *Checker) {
		if h != nil {
			c.handoffer = h
		}
	}
}

// NewChecker creates a checker. Without options it declines every prompt,
// discards notifications and hands off through a default Coordinator.
func NewChecker(cfg CheckerConfig, opts ...CheckerOption) *Checker {
	c := &Checker{
		cfg:       cfg,
		resolver:  NewResolver(),
		prompter:  StaticPrompter(false),
		notifier:  DiscardNotifier{},
		handoffer: NewCoordinator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the checker configuration.
func (c *Checker) Config() CheckerConfig {
	return c.cfg
}

// Skip reports whether the running build should never check for updates.
func (c *Checker) Skip() bool {
	return IsDevelopmentVersion(c.cfg.CurrentVersion)
}

// Check fetches the latest release and decides whether to update.
// It never prompts and never returns an error; failures become CheckFailed.
func (c *Checker) Check(ctx context.Context) UpdateDecision {
	current, err := ParseVersion(c.cfg.CurrentVersion)
	if err != nil {
		return Failed(Version{}, err)
	}

	meta, err := c.resolver.FetchLatest(ctx, c.cfg.Owner, c.cfg.Repo)
	if err != nil {
		return Failed(current, err)
	}
	return DecideRelease(current, meta, c.cfg.Match)
}

// Request builds the handoff request for an UpdateAvailable decision.
func (c *Checker) Request(d UpdateDecision) (HandoffRequest, error) {
	if d.Kind != UpdateAvailable {
		return HandoffRequest{}, appErrors.New(appErrors.CodeHandoffFailed,
			fmt.Sprintf("nothing to install (%s)", d.Kind), ErrHandoffFailed)
	}

	updaterPath := c.cfg.UpdaterPath
	if updaterPath == "" {
		p, err := DefaultUpdaterPath()
		if err != nil {
			return HandoffRequest{}, appErrors.New(appErrors.CodeUpdaterMissing,
				fmt.Sprintf("%s missing!", UpdaterBinaryName()), fmt.Errorf("%w: %v", ErrUpdaterMissing, err))
		}
		updaterPath = p
	}

	targetPath := c.cfg.TargetPath
	if targetPath == "" {
		p, err := TargetPath()
		if err != nil {
			return HandoffRequest{}, appErrors.New(appErrors.CodeHandoffFailed,
				"cannot locate the running executable", fmt.Errorf("%w: %v", ErrHandoffFailed, err))
		}
		targetPath = p
	}

	return HandoffRequest{
		DownloadURL: d.DownloadURL,
		TargetPath:  targetPath,
		UpdaterPath: updaterPath,
	}, nil
}

// Handoff launches the updater. On success the process exits inside this
// call. A failure is reported through the notifier and returned.
func (c *Checker) Handoff(req HandoffRequest) error {
	err := c.handoffer.Handoff(req)
	if err != nil {
		c.report(err)
	}
	return err
}

// Run performs one complete check: it fetches, decides, asks the prompter on
// UpdateAvailable and, only on an affirmative answer, hands off.
func (c *Checker) Run(ctx context.Context) Outcome {
	out := Outcome{ID: uuid.NewString()}
	log := debug.WithFields(logrus.Fields{
		"check":   out.ID,
		"current": c.cfg.CurrentVersion,
	})

	if c.Skip() {
		out.Skipped = true
		log.Debug("development build, skipping update check")
		return out
	}

	out.Decision = c.Check(ctx)
	LogDecision(log, out.Decision)
	if out.Decision.Kind != UpdateAvailable {
		return out
	}

	d := out.Decision
	out.Confirmed = c.prompter.Confirm(d.PromptTitle(), d.PromptMessage())
	if !out.Confirmed {
		log.Info("update declined")
		return out
	}

	req, err := c.Request(d)
	if err != nil {
		out.Err = err
		c.report(err)
		return out
	}
	out.Request = &req

	log.WithField("updater", req.UpdaterPath).Info("handing off to updater")
	out.Err = c.Handoff(req)
	return out
}

func (c *Checker) report(err error) {
	debug.WithFields(logrus.Fields{"code": appErrors.CodeOf(err)}).WithError(err).Error("update handoff failed")
	if appErrors.CodeOf(err).UserVisible() {
		c.notifier.NotifyError(ErrorTitle, appErrors.MessageOf(err))
	}
}

// LogDecision writes a decision to the debug log. Check failures are logged
// only; they are never shown to the user.
func LogDecision(log *logrus.Entry, d UpdateDecision) {
	switch d.Kind {
	case NoUpdateAvailable:
		log.WithField("latest", d.Latest.String()).Info("system is up to date")
	case UpdateAvailable:
		log.WithFields(logrus.Fields{
			"latest": d.Latest.String(),
			"asset":  d.Asset.Name,
		}).Info("update available")
	case CheckFailed:
		entry := log.WithField("code", appErrors.CodeOf(d.Reason)).WithError(d.Reason)
		if d.NothingInstallable() {
			entry.WithField("latest", d.Latest.String()).Warn("newer release has no installable asset")
			return
		}
		entry.Warn("update check failed")
	}
}

// Schedule runs fn once after delay on its own goroutine. The returned stop
// function cancels a check that has not started yet and reports whether it
// did. Cancelling ctx also prevents fn from running.
func Schedule(ctx context.Context, delay time.Duration, fn func(context.Context)) (stop func() bool) {
	timer := time.AfterFunc(delay, func() {
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	})
	return timer.Stop
}
