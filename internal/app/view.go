package app

import (
	"strings"

	"github.com/wahlandcase/mergegate/internal/ui"
)

// View renders the phase list with the current spinner frame
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(ui.Title(m.repo, m.number))
	b.WriteString("\n\n")

	for _, phase := range phaseOrder {
		label := phaseLabels[phase]
		switch m.states[phase] {
		case phaseDone:
			b.WriteString(ui.PhaseDone(label))
		case phaseActive:
			b.WriteString(ui.PhaseActive(label, m.notes[phase], m.spinnerFrame))
		case phaseFailed:
			reason := ""
			if m.err != nil {
				reason = m.err.Error()
			}
			b.WriteString(ui.PhaseFailed(label, reason))
		default:
			b.WriteString(ui.PhasePending(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.finished {
		b.WriteString(ui.SectionHeader("RESULT", ui.ColorCyan))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(ui.PhaseFailed("run failed", m.err.Error()))
		} else {
			b.WriteString(ui.OutcomeLine(m.outcome))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(ui.Hint("press q to abort"))
		b.WriteString("\n")
	}

	return b.String()
}
