package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	defaultSpinnerInterval = 120 * time.Millisecond
	// defaultSpinnerDelay hides the spinner for checks that answer quickly.
	defaultSpinnerDelay = 300 * time.Millisecond
)

// checkSpinner shows progress on a terminal line while a check runs.
type checkSpinner struct {
	writer        io.Writer
	delay         time.Duration
	frameInterval time.Duration
	frames        []rune

	messages chan string
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once

	mu       sync.Mutex
	frameIdx int
}

// newCheckSpinner returns nil when w is not a terminal. A nil spinner is
// safe to use.
func newCheckSpinner(w io.Writer) *checkSpinner {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return newCustomCheckSpinner(w, defaultSpinnerDelay, defaultSpinnerInterval)
}

func newCustomCheckSpinner(w io.Writer, delay, frameInterval time.Duration) *checkSpinner {
	if w == nil {
		w = io.Discard
	}
	sp := &checkSpinner{
		writer:        w,
		delay:         delay,
		frameInterval: frameInterval,
		frames:        []rune{'|', '/', '-', '\\'},
		messages:      make(chan string, 8),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	go sp.loop()
	return sp
}

// Status replaces the message next to the spinner.
func (s *checkSpinner) Status(message string) {
	if s == nil {
		return
	}
	select {
	case <-s.stopCh:
		return
	default:
	}
	select {
	case s.messages <- strings.TrimSpace(message):
	default:
	}
}

// Stop clears the line and waits for the spinner goroutine to finish.
func (s *checkSpinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.stopCh)
		<-s.doneCh
	})
}

func (s *checkSpinner) loop() {
	defer close(s.doneCh)

	var delayCh <-chan time.Time
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		delayCh = timer.C
	}

	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	var current string
	hasMessage := false
	visible := s.delay == 0

	for {
		select {
		case <-s.stopCh:
			if visible {
				s.clearLine()
			}
			return
		case msg := <-s.messages:
			current = msg
			hasMessage = true
			if visible {
				s.render(current)
			}
		case <-ticker.C:
			if visible && hasMessage {
				s.render(current)
			}
		case <-delayCh:
			delayCh = nil
			visible = true
			if hasMessage {
				s.render(current)
			}
		}
	}
}

func (s *checkSpinner) render(message string) {
	_, _ = fmt.Fprintf(s.writer, "\r\033[2K%c %s", s.nextFrame(), message)
}

func (s *checkSpinner) clearLine() {
	_, _ = fmt.Fprint(s.writer, "\r\033[2K")
}

func (s *checkSpinner) nextFrame() rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := s.frames[s.frameIdx%len(s.frames)]
	s.frameIdx++
	return frame
}
