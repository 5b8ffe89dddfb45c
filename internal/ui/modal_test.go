package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModalModelQuitsOnAnswer(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.Msg
		wantAnswer bool
	}{
		{"confirmed", DialogConfirmedMsg{}, true},
		{"cancelled", DialogCancelledMsg{}, false},
		{"dismissed", DialogDismissedMsg{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &modalModel{dialog: NewConfirmDialog("Update Available", "question")}
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Fatal("expected tea.QuitMsg")
			}
			if m.answer != tt.wantAnswer {
				t.Fatalf("answer = %v, want %v", m.answer, tt.wantAnswer)
			}
		})
	}
}

func TestModalModelForwardsKeys(t *testing.T) {
	m := &modalModel{dialog: NewConfirmDialog("Update Available", "question")}
	_, cmd := m.Update(runeKey('y'))
	if cmd == nil {
		t.Fatal("expected the dialog to answer")
	}
	if _, ok := cmd().(DialogConfirmedMsg); !ok {
		t.Fatal("expected DialogConfirmedMsg from the dialog")
	}
}

func TestModalModelResizesDialog(t *testing.T) {
	m := &modalModel{dialog: NewConfirmDialog("Update Available", "question")}
	m.Update(tea.WindowSizeMsg{Width: 36, Height: 12})

	if m.width != 36 || m.height != 12 {
		t.Fatalf("size = %dx%d, want 36x12", m.width, m.height)
	}
	if want := 36 - 2 - 2*dialogHPadding; m.dialog.width != want {
		t.Fatalf("dialog width = %d, want %d", m.dialog.width, want)
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 12 {
		t.Fatalf("view should fill the terminal height, got %d lines", len(lines))
	}
}

func TestModalPrompterReadsAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := NewModalPrompter(
				tea.WithInput(strings.NewReader(tt.input)),
				tea.WithOutput(io.Discard),
			)
			if got := p.Confirm("Update Available", "A new version (2.0.0) is available."); got != tt.want {
				t.Fatalf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}
