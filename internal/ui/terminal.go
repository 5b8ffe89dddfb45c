package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TerminalPrompter asks for confirmation on a plain line-based terminal.
// When input is not interactive it never consents.
type TerminalPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminalPrompter prompts on stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewLinePrompter prompts on the given streams and treats them as interactive.
func NewLinePrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out, interactive: true}
}

// Interactive reports whether the prompter can ask the user.
func (p *TerminalPrompter) Interactive() bool {
	return p.interactive
}

// Confirm prints the question and reads a y/N answer.
func (p *TerminalPrompter) Confirm(title, message string) bool {
	if !p.interactive {
		return false
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(palette().Accent)
	_, _ = fmt.Fprintln(p.out, heading.Render(title))
	_, _ = fmt.Fprintln(p.out, message)
	_, _ = fmt.Fprint(p.out, "[y/N] ")

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		_, _ = fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// TerminalNotifier writes errors to a stream, stderr by default.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminalNotifier creates a notifier writing to out, or stderr if nil.
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &TerminalNotifier{out: out}
}

// NotifyError prints "title: message".
func (n *TerminalNotifier) NotifyError(title, message string) {
	label := lipgloss.NewStyle().Bold(true).Foreground(palette().Error).Render(title + ":")
	_, _ = fmt.Fprintln(n.out, label, message)
}
