// Package bubbletea provides the Bubble Tea TUI for the booking chat client.
// The model is a passive subscriber: all conversation state lives in the
// controller, and the view re-renders from a snapshot after every applied
// operation.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. The context is used for graceful shutdown — when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SendDoneMsg signals that a send has run to completion and its outcome has
// been applied to the session. Err carries the controller's rejection
// sentinels, which the model ignores — rejected input is a silent no-op.
type SendDoneMsg struct {
	Err error
}
