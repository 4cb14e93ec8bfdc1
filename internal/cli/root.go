// Package cli wires the changegen cobra commands.
package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/changegen/internal/changelog"
	configcmd "github.com/ariel-frischer/changegen/internal/cli/config"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/cli/util"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/git"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changegen",
	Short: "Generate changelog entries from conventional commits",
	Long: `changegen turns conventional commit history into Keep a Changelog entries.

Commits since the latest release tag are parsed, grouped into sections
(Breaking Changes, Added, Fixed, ...) and rendered as a markdown version
entry. With --write the entry is spliced into CHANGELOG.md below the
[Unreleased] heading and the comparison links are updated.`,
	Example: `  # Print the entry for 1.4.0 (commits since the latest tag)
  changegen generate 1.4.0

  # Write it into CHANGELOG.md
  changegen generate 1.4.0 --write

  # Preview unreleased changes
  changegen preview

  # Show how commit types map to sections
  changegen types`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool(shared.DebugFlag)
		setDebugLogging(debug)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: shared.GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringP(shared.ConfigFlag, "c", "", "Project config file (default: .changegen/config.yml)")
	rootCmd.PersistentFlags().StringP(shared.RepoFlag, "C", "", "Repository path (default: current directory)")
	rootCmd.PersistentFlags().Bool(shared.DebugFlag, false, "Log debug output to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentError(err.Error(), "See '"+cmd.CommandPath()+" --help' for valid flags")
	})

	configcmd.Register(rootCmd)
	util.Register(rootCmd)
}

// setDebugLogging points the package debug loggers at stderr, or silences them.
func setDebugLogging(enabled bool) {
	var logger func(format string, args ...any)
	if enabled {
		logger = log.New(os.Stderr, "[debug] ", log.Ltime|log.Lmicroseconds).Printf
	}
	git.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
	config.SetDebugLogger(logger)
}

// Execute runs the root command and returns the process exit code.
// SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return shared.ExitSuccess
	}

	var exitErr *shared.ExitError
	switch {
	case errors.As(err, &exitErr):
		// Already reported by the command.
	case clierrors.IsCLIError(err):
		clierrors.FprintError(os.Stderr, clierrors.AsCLIError(err))
	default:
		clierrors.FprintError(os.Stderr, clierrors.Wrap(err, clierrors.Runtime))
	}
	return shared.ExitCode(err)
}
