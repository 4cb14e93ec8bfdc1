package cli

import (
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print raw commit records for a range",
	Long: `Print the commits in a range as serialized records, the same stream
'git log --format=` + "'" + commit.GitLogFormat + "'" + `' produces.

The output can be edited and fed back with 'changegen generate <version> --stdin'.`,
	Example: `  # Records since the latest tag
  changegen log

  # Reword a commit subject before generating
  changegen log --since v1.3.0 > records.txt
  changegen generate 1.4.0 --stdin < records.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}

		since, _ := cmd.Flags().GetString("since")
		to, _ := cmd.Flags().GetString("to")
		if !cmd.Flags().Changed("since") {
			if since, err = defaultSince(cmd, cfg); err != nil {
				return err
			}
		}

		records, err := collectRecords(cmd, since, to)
		if err != nil {
			return err
		}
		return commit.WriteRecords(cmd.OutOrStdout(), records)
	},
}

func init() {
	logCmd.GroupID = shared.GroupInspect
	logCmd.Flags().String("since", "", "Exclusive start revision (default: latest release tag)")
	logCmd.Flags().String("to", "", "Inclusive end revision (default: HEAD)")
	rootCmd.AddCommand(logCmd)
}
