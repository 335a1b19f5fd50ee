package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/mergegate/internal/gate"
	"github.com/wahlandcase/mergegate/internal/models"
)

// Message types for async operations

type gateDoneMsg struct {
	outcome models.Outcome
	err     error
}

type progressMsg gate.Event

type tickMsg time.Time

// runGateCmd runs the gate in the background and reports its result
func runGateCmd(ctx context.Context, run Runner) tea.Cmd {
	return func() tea.Msg {
		outcome, err := run(ctx)
		return gateDoneMsg{outcome: outcome, err: err}
	}
}

// listenForEvents creates a subscription that listens to the gate's
// progress channel
func listenForEvents(ch chan gate.Event) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
