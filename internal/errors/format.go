package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changegen/internal/progress"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// palette holds the styling applied to each part of a formatted error.
// The plain palette leaves text untouched.
type palette struct {
	label      func(a ...any) string
	message    func(a ...any) string
	category   func(a ...any) string
	usageLabel func(a ...any) string
	usage      func(a ...any) string
	fixLabel   func(a ...any) string
	bullet     func(a ...any) string
}

func newPalette(useColors bool) palette {
	if !useColors {
		return palette{
			label:      fmt.Sprint,
			message:    fmt.Sprint,
			category:   fmt.Sprint,
			usageLabel: fmt.Sprint,
			usage:      fmt.Sprint,
			fixLabel:   fmt.Sprint,
			bullet:     fmt.Sprint,
		}
	}

	// color.NoColor tracks stdout; the caller has already decided for its writer.
	style := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		label:      style(color.FgRed, color.Bold),
		message:    style(color.FgRed),
		category:   style(color.FgYellow),
		usageLabel: style(color.FgCyan, color.Bold),
		usage:      style(color.FgCyan),
		fixLabel:   style(color.FgGreen, color.Bold),
		bullet:     style(color.FgGreen),
	}
}

// FormatError renders a CLIError as the message line, the usage line for
// argument errors, and the remediation steps.
func FormatError(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}
	p := newPalette(useColors)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fixLabel("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError writes a formatted CLIError to w. Colors are used only when w
// is a terminal and NO_COLOR is unset.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err, colorsFor(w)))
}

func colorsFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f == os.Stderr {
		return progress.DetectTerminalCapabilities().SupportsColor
	}
	return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}
