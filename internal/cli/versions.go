package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List versions released in the changelog",
	Long: `List the version headings of the changelog (changelog_path), newest
first. The Unreleased heading is not listed.`,
	Example: `  changegen versions
  changegen versions --latest`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		latest, _ := cmd.Flags().GetBool("latest")

		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.ResolveChangelogPath(shared.RepoRoot(cmd))
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return clierrors.ChangelogNotFound(path)
			}
			return fmt.Errorf("reading changelog: %w", err)
		}

		out := cmd.OutOrStdout()
		versions := changelog.ListVersions(string(data))
		if len(versions) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No released versions in "+path)
			return nil
		}
		if latest {
			versions = versions[:1]
		}
		for _, v := range versions {
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

func init() {
	versionsCmd.GroupID = shared.GroupInspect
	versionsCmd.Flags().Bool("latest", false, "Print only the newest version")
	rootCmd.AddCommand(versionsCmd)
}
