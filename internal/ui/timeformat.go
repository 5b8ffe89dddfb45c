package ui

import (
	"fmt"
	"time"
)

var timeNow = time.Now

// formatReleased describes when a release was published, e.g.
// "released today" or "released 3 days ago". Older or future dates are
// shown as a calendar date.
func formatReleased(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	now := timeNow()
	if t.After(now) {
		return "released " + formatReleaseDate(t, now)
	}

	days := int(now.Sub(t) / (24 * time.Hour))
	switch {
	case days == 0:
		return "released today"
	case days == 1:
		return "released yesterday"
	case days < 60:
		return fmt.Sprintf("released %d days ago", days)
	default:
		return "released " + formatReleaseDate(t, now)
	}
}

func formatReleaseDate(t, now time.Time) string {
	local := t.In(now.Location())
	if local.Year() == now.Year() {
		return "on " + local.Format("Jan 2")
	}
	return "on " + local.Format("Jan 2, 2006")
}
