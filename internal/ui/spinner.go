package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner animates while a blocking call (connect, query) is in flight.
type Spinner struct {
	ui    *UI
	label string
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
	mu    sync.Mutex

	started bool
}

// Spinner animation frames (braille pattern).
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new animated spinner.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		done:  make(chan struct{}),
	}
}

// Spin runs fn behind a spinner and reports its outcome.
// The error from fn is returned unchanged.
func (u *UI) Spin(label string, fn func() error) error {
	s := u.NewSpinner(label)
	s.Start()
	if err := fn(); err != nil {
		s.Error("failed")
		return err
	}
	s.Success("done")
	return nil
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if !s.ui.shouldStyle() {
		// Non-TTY: just print the label once
		fmt.Fprintf(s.ui.Out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frame := 0
		spinnerStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.ui.Out, "\r%s %s...", spinnerStyle.Render(spinnerFrames[frame]), s.label)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// halt stops the animation; reports whether the spinner had been started
func (s *Spinner) halt() bool {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return false
	}

	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	return true
}

// Stop stops the spinner without showing a final status.
func (s *Spinner) Stop() {
	if s.halt() && s.ui.shouldStyle() {
		fmt.Fprint(s.ui.Out, "\r\033[K")
	}
}

// Success stops the spinner and shows a success message.
func (s *Spinner) Success(msg string) {
	s.finish(StyleSuccess.Render(SymbolSuccess), msg)
}

// Error stops the spinner and shows an error message.
func (s *Spinner) Error(msg string) {
	s.finish(StyleError.Render(SymbolError), msg, StyleError)
}

func (s *Spinner) finish(symbol, msg string, msgStyle ...lipgloss.Style) {
	if !s.halt() {
		return
	}

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, " %s\n", msg)
		return
	}
	for _, style := range msgStyle {
		msg = style.Render(msg)
	}
	fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", symbol, s.label, msg)
}
