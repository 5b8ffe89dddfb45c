package update

import (
	"errors"
	"fmt"

	appErrors "studentdesk/internal/errors"
)

// ErrNoQualifyingAsset means a newer release exists but nothing installable
// for this platform was published with it.
var ErrNoQualifyingAsset = errors.New("no qualifying asset published")

// DecisionKind enumerates the terminal states of an update check.
type DecisionKind int

const (
	NoUpdateAvailable DecisionKind = iota
	UpdateAvailable
	CheckFailed
)

// String returns the string representation of a DecisionKind.
func (k DecisionKind) String() string {
	switch k {
	case NoUpdateAvailable:
		return "no-update"
	case UpdateAvailable:
		return "update-available"
	case CheckFailed:
		return "check-failed"
	default:
		return "unknown"
	}
}

// UpdateDecision is the result of comparing the running version against the
// latest release. It is produced fresh for every check.
type UpdateDecision struct {
	Kind DecisionKind

	// Current is the running version.
	Current Version
	// Latest is set whenever the release tag could be parsed.
	Latest Version

	// Asset and DownloadURL are set only for UpdateAvailable.
	Asset       Asset
	DownloadURL string

	// Release is the metadata the decision was made from, if any.
	Release *ReleaseMetadata

	// Reason is set only for CheckFailed.
	Reason error
}

// Decide compares current with the latest release tag and selects the
// installable asset. Only a strictly greater tag yields UpdateAvailable, so
// equal, older or rolled-back releases never prompt.
func Decide(current Version, latestTag string, assets []Asset, match AssetMatcher) UpdateDecision {
	d := UpdateDecision{Current: current}

	latest, err := ParseVersion(latestTag)
	if err != nil {
		d.Kind = CheckFailed
		d.Reason = err
		return d
	}
	d.Latest = latest

	if latest.Compare(current) != Greater {
		d.Kind = NoUpdateAvailable
		return d
	}

	if match == nil {
		match = HasSuffix(InstallerSuffix())
	}
	asset, ok := selectAsset(assets, match)
	if !ok {
		d.Kind = CheckFailed
		d.Reason = appErrors.New(appErrors.CodeNoQualifyingAsset,
			fmt.Sprintf("release %s has no installable asset", latest), ErrNoQualifyingAsset)
		return d
	}

	d.Kind = UpdateAvailable
	d.Asset = asset
	d.DownloadURL = asset.DownloadURL
	return d
}

// DecideRelease is Decide applied to fetched metadata.
func DecideRelease(current Version, meta *ReleaseMetadata, match AssetMatcher) UpdateDecision {
	if meta == nil {
		return Failed(current, appErrors.New(appErrors.CodeFetchFailed, "no release metadata", ErrFetchFailed))
	}
	d := Decide(current, meta.Tag, meta.Assets, match)
	d.Release = meta
	return d
}

// Failed builds a CheckFailed decision for an error raised before deciding.
func Failed(current Version, reason error) UpdateDecision {
	return UpdateDecision{Kind: CheckFailed, Current: current, Reason: reason}
}

// NothingInstallable reports whether the decision failed only because no
// qualifying asset was published.
func (d UpdateDecision) NothingInstallable() bool {
	return d.Kind == CheckFailed && errors.Is(d.Reason, ErrNoQualifyingAsset)
}

// PromptTitle returns the confirmation dialog title.
func (d UpdateDecision) PromptTitle() string {
	return "Update Available"
}

// PromptMessage returns the confirmation question for an available update.
func (d UpdateDecision) PromptMessage() string {
	return fmt.Sprintf("A new version (%s) is available.\nDo you want to update now?", d.Latest)
}
