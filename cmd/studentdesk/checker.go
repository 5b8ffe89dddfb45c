package main

import (
	"studentdesk/internal/config"
	"studentdesk/internal/update"
)

// newChecker builds the update checker from validated settings. Options are
// applied after the configured resolver, so callers may replace it.
func newChecker(s config.Update, version string, opts ...update.CheckerOption) *update.Checker {
	resolverOpts := []update.ResolverOption{
		update.WithBaseURL(s.Endpoint),
		update.WithTimeout(s.Timeout),
	}
	if s.Token != "" {
		resolverOpts = append(resolverOpts, update.WithToken(s.Token))
	}

	var match update.AssetMatcher
	if s.AssetSuffix != "" {
		match = update.HasSuffix(s.AssetSuffix)
	}

	cfg := update.CheckerConfig{
		Owner:          s.Owner,
		Repo:           s.Repo,
		CurrentVersion: version,
		UpdaterPath:    s.UpdaterPath,
		Match:          match,
	}
	all := append([]update.CheckerOption{update.WithResolver(update.NewResolver(resolverOpts...))}, opts...)
	return update.NewChecker(cfg, all...)
}
