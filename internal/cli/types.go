package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show how commit types map to changelog sections",
	Long: `Show how conventional commit types map to changelog sections.

Any commit marked breaking ('!' before the colon, or a BREAKING CHANGE
footer) goes to Breaking Changes regardless of its type. Types not listed
here go to Changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Type", "Section"})
		table.SetBorder(false)
		for _, m := range changelog.TypeMappings() {
			table.Append([]string{m.Type, m.Section})
		}
		table.Append([]string{"(other)", changelog.SectionFor("")})
		table.Render()

		fmt.Fprintf(out, "\nSection order: %s\n", strings.Join(changelog.SectionOrder(), ", "))
		return nil
	},
}

func init() {
	typesCmd.GroupID = shared.GroupInspect
	rootCmd.AddCommand(typesCmd)
}
