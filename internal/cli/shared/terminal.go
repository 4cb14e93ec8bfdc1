package shared

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the width cannot be detected.
const DefaultTerminalWidth = 80

// GetTerminalWidth returns the width of stdout, or DefaultTerminalWidth.
func GetTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultTerminalWidth
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CenterText pads text with leading spaces to center it within width.
func CenterText(text string, width int) string {
	pad := (width - len([]rune(text))) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
