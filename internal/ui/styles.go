package ui

import "github.com/charmbracelet/lipgloss"

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	activeStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
	failedStyle  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(ColorDarkGray)
	noteStyle    = lipgloss.NewStyle().Foreground(ColorDarkGray)
)
