package ui

import "github.com/muesli/termenv"

// Interactive reports whether the terminal can render ANSI styling.
// Watch mode refuses to start on a dumb terminal or a pipe.
func Interactive() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}
