package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols holds the glyphs used for progress output.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // Index into spinner.CharSets
}

// DetectTerminalCapabilities detects terminal features and returns capabilities.
// Checks: stderr isatty, NO_COLOR env, CHANGEGEN_ASCII env, terminal width.
// Progress is written to stderr so piped markdown on stdout stays clean.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stderr.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("CHANGEGEN_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
