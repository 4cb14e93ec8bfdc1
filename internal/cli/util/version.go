// Package util holds small informational commands (version).
package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/changegen/internal/build"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Box drawing characters for the pretty version output.
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

const tagline = "changelogs from conventional commits"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for changegen",
	Example: `  # Show version info
  changegen version

  # Plain output (for scripts)
  changegen version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain || !shared.IsTerminal() {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), shared.GetTerminalWidth())
	},
}

func init() {
	versionCmd.GroupID = shared.GroupInspect
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// Register adds the util commands to root.
func Register(root *cobra.Command) {
	root.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "changegen %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints a styled version output in a centered box
func printPrettyVersion(w io.Writer, termWidth int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(w)
	fmt.Fprintln(w, cyan(shared.CenterText("changegen", termWidth)))
	fmt.Fprintln(w, dim(shared.CenterText(tagline, termWidth)))
	fmt.Fprintln(w)

	versionLabel := build.Version
	if build.IsDevBuild() {
		versionLabel += " (built from source)"
	}

	info := []struct {
		label string
		value string
	}{
		{"Version", versionLabel},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
	}

	// Box is 44 columns wide, narrower on small terminals
	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))

	fmt.Fprintln(w, pad+boxTopLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxTopRight)
	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)

	for _, item := range info {
		label := yellow(fmt.Sprintf("%12s", item.label))
		value := white(item.value)
		line := fmt.Sprintf("  %s    %s", label, value)
		lineLen := 12 + 4 + len(item.value) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, pad+boxVertical+" "+line+" "+boxVertical)
	}

	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)
	fmt.Fprintln(w, pad+boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxBottomRight)
	fmt.Fprintln(w)
}
