package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview unreleased changes in the terminal",
	Long: `Preview the commits since the latest release tag, grouped into
changelog sections with colors and icons.

With --watch the preview is redrawn whenever HEAD, a branch or a tag changes,
until interrupted.`,
	Example: `  # Colored preview of unreleased changes
  changegen preview

  # Plain text
  changegen preview --plain

  # Keep the preview open while committing
  changegen preview --watch`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.GroupID = shared.GroupRelease
	previewCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	previewCmd.Flags().String("since", "", "Exclusive start revision (default: latest release tag)")
	previewCmd.Flags().Bool("watch", false, "Redraw when refs change")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	watch, _ := cmd.Flags().GetBool("watch")

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	opts := changelog.FormatOptions{Plain: plain || cfg.PlainOutput}

	if !watch {
		return renderPreview(cmd, cfg, opts)
	}
	return watchPreview(cmd.Context(), cmd, cfg, opts)
}

// renderPreview draws one preview of the unreleased commits.
func renderPreview(cmd *cobra.Command, cfg *config.Configuration, opts changelog.FormatOptions) error {
	since, _ := cmd.Flags().GetString("since")
	if !cmd.Flags().Changed("since") {
		var err error
		if since, err = defaultSince(cmd, cfg); err != nil {
			return err
		}
	}

	records, err := collectRecords(cmd, since, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := changelog.Generate(changelog.Release{}, records)
	if result.IsEmpty() {
		fmt.Fprintf(out, "No conventional commits since %s\n", describeSince(since))
		return nil
	}

	if err := changelog.FormatSections(out, changelog.Release{}, result.Sections, opts); err != nil {
		return fmt.Errorf("formatting preview: %w", err)
	}
	printSummary(out, result, opts)
	return nil
}

func printSummary(out io.Writer, result changelog.Result, opts changelog.FormatOptions) {
	summary := changelog.FormatSummary(result.Sections)
	if !opts.Plain {
		summary = color.New(color.Faint).Sprint(summary)
	}
	fmt.Fprintf(out, "\n%s\n", summary)
}

// watchPreview redraws the preview on every ref change until ctx is done.
// The watcher and the render loop run under one errgroup so a watcher
// failure stops rendering too.
func watchPreview(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration, opts changelog.FormatOptions) error {
	w, err := git.NewRefWatcher(shared.RepoPath(cmd), git.DefaultDebounce)
	if err != nil {
		return gitError(err)
	}
	defer w.Close()

	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx, changes)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changes:
				redraw(cmd, cfg, opts)
			}
		}
	})
	return g.Wait()
}

// redraw clears the terminal and renders the preview. Errors are shown
// in place so the watch keeps running (e.g. while a rebase is in progress).
func redraw(cmd *cobra.Command, cfg *config.Configuration, opts changelog.FormatOptions) {
	out := cmd.OutOrStdout()
	if shared.IsTerminal() {
		fmt.Fprint(out, clearScreen)
	}

	if err := renderPreview(cmd, cfg, opts); err != nil {
		if cliErr := clierrors.AsCLIError(err); cliErr != nil {
			clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", dim("Watching for ref changes (updated "+time.Now().Format("15:04:05")+", Ctrl+C to stop)"))
}
