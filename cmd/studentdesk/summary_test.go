package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPrintCheckSummary(t *testing.T) {
	tests := []struct {
		name   string
		result checkResult
		want   []string
		absent []string
	}{
		{
			name:   "up to date",
			result: checkResult{Status: statusUpToDate, Current: "2.0.0", Latest: "2.0.0"},
			want:   []string{"StudentDesk 2.0.0 is up to date."},
		},
		{
			name:   "skipped",
			result: checkResult{Status: statusSkipped, Current: "dev"},
			want:   []string{"development build"},
		},
		{
			name:   "no installer",
			result: checkResult{Status: statusNoInstaller, Current: "1.0.0", Latest: "9.0.0"},
			want:   []string{"version 9.0.0 has no installer"},
		},
		{
			name:   "failed",
			result: checkResult{Status: statusFailed, Current: "1.0.0", Error: "release server returned 500"},
			want:   []string{"update check failed: release server returned 500"},
		},
		{
			name: "available, not confirmed",
			result: checkResult{
				Status: statusAvailable, Current: "1.3.2", Latest: "2.0.0",
				Asset: "StudentDesk-2.0.0.exe", Published: "2025-05-01T10:00:00Z",
			},
			want:   []string{"→ 2.0.0 available", "Installer: StudentDesk-2.0.0.exe", "Published: 2025-05-01T10:00:00Z", "check --yes"},
			absent: []string{"Dry run"},
		},
		{
			name: "available, handoff failed",
			result: checkResult{
				Status: statusAvailable, Current: "1.3.2", Latest: "2.0.0", Asset: "a.exe",
				Confirmed: true, Error: "updater.exe missing!",
			},
			want:   []string{"Update not started: updater.exe missing!"},
			absent: []string{"check --yes"},
		},
		{
			name: "available, dry run",
			result: checkResult{
				Status: statusAvailable, Current: "1.3.2", Latest: "2.0.0", Asset: "a.exe",
				Confirmed: true, DryRun: true,
				Handoff: &handoffInfo{Updater: "/opt/updater", DownloadURL: "https://dl.test/a.exe", Target: "/opt/app"},
			},
			want: []string{"Dry run, would launch:", "/opt/updater https://dl.test/a.exe /opt/app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printCheckSummary(&buf, tt.result)
			out := ansi.Strip(buf.String())

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, out)
				}
			}
		})
	}
}
