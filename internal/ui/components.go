package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/mergegate/internal/models"
)

// SpinnerFrames are the glyphs watch mode cycles through for the active
// phase
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	boldStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		boldStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// PhasePending renders a phase that has not started yet
func PhasePending(name string) string {
	return pendingStyle.Render("  ○ " + name)
}

// PhaseActive renders the phase currently running, with a spinner frame
// and an optional note
func PhaseActive(name, note string, frame int) string {
	line := activeStyle.Render("  " + SpinnerFrames[frame%len(SpinnerFrames)] + " " + name)
	if note != "" {
		line += noteStyle.Render("  " + note)
	}
	return line
}

// PhaseDone renders a passed phase
func PhaseDone(name string) string {
	return doneStyle.Render("  ✓ " + name)
}

// PhaseFailed renders the phase the run died in
func PhaseFailed(name, reason string) string {
	line := failedStyle.Render("  ✗ " + name)
	if reason != "" {
		line += noteStyle.Render("  " + reason)
	}
	return line
}

// OutcomeLine renders the terminal outcome of a finished run
func OutcomeLine(outcome models.Outcome) string {
	switch {
	case models.IsMerged(outcome):
		return doneStyle.Bold(true).Render("  merged " + models.MergedSHA(outcome))
	case models.IsDryRunPass(outcome):
		return doneStyle.Bold(true).Render("  dry run: would merge")
	default:
		return failedStyle.Render("  not merged: " + models.NotMergedReason(outcome))
	}
}

// Hint renders a key-binding hint line, e.g. "press q to abort"
func Hint(text string) string {
	return lipgloss.NewStyle().Foreground(ColorWhite).Faint(true).Render("  " + text)
}

// Title renders the run header, e.g. "mergegate acme/widgets#42"
func Title(repo string, number int) string {
	return titleStyle.Render(fmt.Sprintf("  mergegate %s#%d", repo, number))
}
