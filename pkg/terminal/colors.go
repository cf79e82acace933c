// Package terminal provides ANSI styling, icons and a progress bar for
// bundlekit's plain CLI output. The interactive UI styles itself with
// lipgloss instead.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Color codes for terminal output
const (
	Reset  = "\033[0m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// IsTerminal checks if output is to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func colorEnabled() bool {
	return IsTerminal() && os.Getenv("NO_COLOR") == ""
}

// Colorize returns text with color codes if terminal supports it
func Colorize(color, text string) string {
	if !colorEnabled() {
		return text
	}
	return color + text + Reset
}

// Success prints green text
func Success(text string) string { return Colorize(Green, text) }

// Error prints red text
func Error(text string) string { return Colorize(Red, text) }

// Warning prints yellow text
func Warning(text string) string { return Colorize(Yellow, text) }

// Info prints cyan text
func Info(text string) string { return Colorize(Cyan, text) }

// BoldText returns bold text
func BoldText(text string) string { return Colorize(Bold, text) }
