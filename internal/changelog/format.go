package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps section names to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	SectionBreaking:      {Color: color.New(color.FgRed, color.Bold), Icon: "‼"},
	SectionAdded:         {Color: color.New(color.FgGreen), Icon: "✓"},
	SectionChanged:       {Color: color.New(color.FgBlue), Icon: "~"},
	SectionDeprecated:    {Color: color.New(color.FgRed), Icon: "⚠"},
	SectionRemoved:       {Color: color.New(color.FgRed), Icon: "✗"},
	SectionFixed:         {Color: color.New(color.FgYellow), Icon: "⚡"},
	SectionSecurity:      {Color: color.New(color.FgMagenta), Icon: "🔒"},
	SectionDocumentation: {Color: color.New(color.FgCyan), Icon: "📖"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatSections writes a terminal preview of a generated entry.
// Sections are shown in the given order with color-coded headers.
func FormatSections(w io.Writer, rel Release, sections []Section, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(rel, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range sections {
		if err := writeSection(s, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Name, err)
		}
	}

	return nil
}

// writeReleaseHeader writes the version header line.
func writeReleaseHeader(rel Release, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case rel.Version == "":
		header = "Unreleased"
	case rel.Date != "":
		header = fmt.Sprintf("v%s (%s)", rel.Version, rel.Date)
	default:
		header = fmt.Sprintf("v%s", rel.Version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a single section with its entries.
func writeSection(s Section, w io.Writer, opts FormatOptions, width int) error {
	style := sectionStyles[s.Name]

	if err := writeSectionHeader(s.Name, style, w, opts); err != nil {
		return err
	}

	for _, c := range s.Commits {
		if err := writeEntry(c, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeSectionHeader writes the section header line.
func writeSectionHeader(name string, style SectionStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain || style.Color == nil {
		_, err := fmt.Fprintf(w, "\n### %s\n", name)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(name))
	return err
}

// writeEntry writes a single commit with optional wrapping.
func writeEntry(c commit.Commit, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := previewText(c)

	if opts.Plain || style.Color == nil {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(wrapped), faint(c.Hash))
	return err
}

// previewText is the entry text shown in the terminal: scope, subject and
// references, without markdown link syntax.
func previewText(c commit.Commit) string {
	var b strings.Builder
	if c.HasScope() {
		b.WriteString(c.Scope + ": ")
	}
	b.WriteString(c.Subject)
	if len(c.Issues) > 0 {
		b.WriteString(" (closes #" + strings.Join(c.Issues, ", #") + ")")
	}
	return b.String()
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatSummary returns a one-line summary such as
// "5 commits: 1 breaking, 2 added, 2 fixed".
func FormatSummary(sections []Section) string {
	total := 0
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		total += len(s.Commits)
		parts = append(parts, fmt.Sprintf("%d %s", len(s.Commits), summaryLabel(s.Name)))
	}

	noun := "commits"
	if total == 1 {
		noun = "commit"
	}
	if len(parts) == 0 {
		return fmt.Sprintf("0 %s", noun)
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}

func summaryLabel(section string) string {
	if section == SectionBreaking {
		return "breaking"
	}
	return strings.ToLower(section)
}
