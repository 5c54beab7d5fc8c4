package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar shows how many of a known number of steps are done,
// e.g. sheets written during an export.
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int
	current int
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar.
func (u *UI) NewProgressBar(label string, total int) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:    u,
		bar:   bar,
		label: label,
		total: total,
	}
}

// Step marks one more step done. The step name is shown next to the bar,
// or printed on its own line in plain mode.
func (p *ProgressBar) Step(name string) {
	p.mu.Lock()
	p.current++
	current, total := p.current, p.total
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "  %s: %s (%d/%d)\n", p.label, name, current, total)
		return
	}

	pct := 1.0
	if total > 0 && current < total {
		pct = float64(current) / float64(total)
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		StyleMuted.Render(fmt.Sprintf("%d/%d %s", current, total, name)),
	)
}

// Complete finishes the progress bar with a success indicator.
func (p *ProgressBar) Complete(msg string) {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "  %s: %s\n", p.label, msg)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(msg),
	)
}

// Fail finishes the progress bar with an error indicator.
func (p *ProgressBar) Fail(err error) {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "  %s: FAILED: %v\n", p.label, err)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		labelStyle.Render(p.label),
		StyleError.Render(err.Error()),
	)
}
