// Package app is the bubbletea model behind --watch: it runs the gate in
// the background and renders live phase progress.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/mergegate/internal/gate"
	"github.com/wahlandcase/mergegate/internal/models"
	"github.com/wahlandcase/mergegate/internal/ui"
)

type phaseState int

const (
	phasePending phaseState = iota
	phaseActive
	phaseDone
	phaseFailed
)

// phaseOrder is the display order; it matches the state machine
var phaseOrder = []string{
	gate.PhaseStateCheck,
	gate.PhaseMergeability,
	gate.PhaseChecks,
	gate.PhaseApprovals,
	gate.PhaseMerge,
}

var phaseLabels = map[string]string{
	gate.PhaseStateCheck:   "draft & state",
	gate.PhaseMergeability: "mergeability",
	gate.PhaseChecks:       "required checks",
	gate.PhaseApprovals:    "approvals",
	gate.PhaseMerge:        "merge",
}

// Runner executes the gate run; watch mode stays ignorant of how the
// gate is assembled
type Runner func(ctx context.Context) (models.Outcome, error)

// Model is the watch-mode application state
type Model struct {
	repo   string
	number int

	ctx    context.Context
	cancel context.CancelFunc
	run    Runner
	events chan gate.Event

	states       map[string]phaseState
	notes        map[string]string
	current      string
	spinnerFrame int

	finished bool
	outcome  models.Outcome
	err      error
}

// New creates the watch model. The events channel must be the one the
// gate's progress callback writes to; it is closed by the runner wrapper
// when the run finishes.
func New(ctx context.Context, repo string, number int, events chan gate.Event, run Runner) Model {
	ctx, cancel := context.WithCancel(ctx)
	states := make(map[string]phaseState, len(phaseOrder))
	for _, p := range phaseOrder {
		states[p] = phasePending
	}
	return Model{
		repo:   repo,
		number: number,
		ctx:    ctx,
		cancel: cancel,
		run:    run,
		events: events,
		states: states,
		notes:  make(map[string]string),
	}
}

// Init starts the gate run, the event subscription and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(runGateCmd(m.ctx, m.run), listenForEvents(m.events), tickCmd())
}

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			if m.finished {
				return m, tea.Quit
			}
			// The cancelled run surfaces through gateDoneMsg.
			return m, nil
		}
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(ui.SpinnerFrames)
		if m.finished {
			return m, nil
		}
		return m, tickCmd()

	case progressMsg:
		ev := gate.Event(msg)
		if ev.Done {
			m.states[ev.Phase] = phaseDone
		} else {
			m.states[ev.Phase] = phaseActive
			m.current = ev.Phase
			if ev.Note != "" {
				m.notes[ev.Phase] = ev.Note
			}
		}
		return m, listenForEvents(m.events)

	case gateDoneMsg:
		m.cancel()
		m.finished = true
		m.outcome = msg.outcome
		m.err = msg.err
		if msg.err != nil && m.current != "" {
			m.states[m.current] = phaseFailed
		}
		return m, tea.Quit
	}

	return m, nil
}

// Outcome returns the terminal outcome once the run finished
func (m Model) Outcome() models.Outcome { return m.outcome }

// Err returns the run error, if any
func (m Model) Err() error { return m.err }
