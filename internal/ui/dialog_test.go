package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		written = append(written, s)
		return err
	}
	t.Cleanup(func() { clipboardWrite = orig })
	return &written
}

func TestConfirmDialogAnswers(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"y confirms", runeKey('y'), DialogConfirmedMsg{}},
		{"Y confirms", runeKey('Y'), DialogConfirmedMsg{}},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, DialogConfirmedMsg{}},
		{"n cancels", runeKey('n'), DialogCancelledMsg{}},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, DialogCancelledMsg{}},
		{"q cancels", runeKey('q'), DialogCancelledMsg{}},
		{"ctrl+c cancels", tea.KeyMsg{Type: tea.KeyCtrlC}, DialogCancelledMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfirmDialog("Update Available", "A new version (2.0.0) is available.")
			_, cmd := d.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Fatalf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestConfirmDialogIgnoresOtherKeys(t *testing.T) {
	d := NewConfirmDialog("Update Available", "question")
	if _, cmd := d.Update(runeKey('x')); cmd != nil {
		t.Fatalf("unexpected command for unbound key: %T", cmd())
	}
	if _, cmd := d.Update(tea.WindowSizeMsg{Width: 80, Height: 24}); cmd != nil {
		t.Fatal("non-key messages should be ignored")
	}
}

func TestErrorDialogDismiss(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEsc}, runeKey('q')} {
		d := NewErrorDialog("Update Error", "updater.exe missing!")
		_, cmd := d.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a command", key)
		}
		if _, ok := cmd().(DialogDismissedMsg); !ok {
			t.Fatalf("%s: expected DialogDismissedMsg", key)
		}
	}

	d := NewErrorDialog("Update Error", "updater.exe missing!")
	if _, cmd := d.Update(runeKey('y')); cmd != nil {
		t.Fatal("error dialogs have no yes answer")
	}
	if d.Kind() != DialogError {
		t.Fatalf("Kind() = %v, want DialogError", d.Kind())
	}
}

func TestDialogCopy(t *testing.T) {
	written := stubClipboard(t, nil)

	d := NewConfirmDialog("Update Available", "question").WithCopyText(" https://dl.test/app.exe ")
	if _, cmd := d.Update(runeKey('c')); cmd != nil {
		t.Fatal("copy should not answer the dialog")
	}
	if !d.Copied() {
		t.Fatal("expected Copied() after c")
	}
	if len(*written) != 1 || (*written)[0] != "https://dl.test/app.exe" {
		t.Fatalf("clipboard got %q", *written)
	}
	if !strings.Contains(ansi.Strip(d.View()), "Copied to clipboard.") {
		t.Error("view should confirm the copy")
	}
}

func TestDialogCopyFailure(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard utility"))

	d := NewErrorDialog("Update Error", "updater.exe missing!")
	d.Update(runeKey('c'))

	if d.Copied() {
		t.Fatal("Copied() should be false when the clipboard fails")
	}
	if !strings.Contains(ansi.Strip(d.View()), "Copy failed") {
		t.Error("view should report the failed copy")
	}
}

func TestDialogWithoutCopyText(t *testing.T) {
	written := stubClipboard(t, nil)

	d := NewConfirmDialog("Update Available", "question")
	d.Update(runeKey('c'))
	if len(*written) != 0 {
		t.Fatal("nothing should be copied without copy text")
	}
	if strings.Contains(ansi.Strip(d.View()), "Copy") {
		t.Error("copy hint should be hidden without copy text")
	}
}

func TestDialogViewContents(t *testing.T) {
	d := NewConfirmDialog("Update Available", "A new version (2.0.0) is available.\nDo you want to update now?")
	view := ansi.Strip(d.View())

	for _, want := range []string{"Update Available", "A new version (2.0.0) is available.", "Do you want to update now?", "Update now", "Later"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDialogSetTerminalWidth(t *testing.T) {
	d := NewConfirmDialog("Update Available", strings.Repeat("word ", 40))

	d.SetTerminalWidth(200)
	if d.width != dialogWidth {
		t.Fatalf("wide terminal width = %d, want %d", d.width, dialogWidth)
	}

	d.SetTerminalWidth(40)
	if want := 40 - 2 - 2*dialogHPadding; d.width != want {
		t.Fatalf("narrow terminal width = %d, want %d", d.width, want)
	}
	for _, line := range strings.Split(d.View(), "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("line wider than terminal (%d): %q", w, ansi.Strip(line))
		}
	}

	d.SetTerminalWidth(10)
	if d.width != dialogMinWidth {
		t.Fatalf("tiny terminal width = %d, want %d", d.width, dialogMinWidth)
	}
}

func TestCenterDialog(t *testing.T) {
	view := "box"
	if got := centerDialog(view, 0, 0); got != view {
		t.Fatalf("unknown size should return view unchanged, got %q", got)
	}
	placed := centerDialog(view, 20, 5)
	lines := strings.Split(placed, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "box") {
		t.Fatalf("expected view on the middle line, got %q", placed)
	}
}
