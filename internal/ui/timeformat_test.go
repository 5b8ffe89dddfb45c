package ui

import (
	"testing"
	"time"
)

func TestFormatReleased(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"hours ago", now.Add(-3 * time.Hour), "released today"},
		{"yesterday", now.Add(-30 * time.Hour), "released yesterday"},
		{"days", now.Add(-10 * 24 * time.Hour), "released 10 days ago"},
		{"same year", time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC), "released on Jan 3"},
		{"previous year", time.Date(2023, time.November, 20, 9, 0, 0, 0, time.UTC), "released on Nov 20, 2023"},
		{"future", now.Add(48 * time.Hour), "released on Jun 17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatReleased(tt.in); got != tt.want {
				t.Fatalf("formatReleased(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
