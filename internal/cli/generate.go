package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatMarkdown = "markdown"
	formatYAML     = "yaml"
)

var outputFormats = []string{formatMarkdown, formatYAML}

var generateCmd = &cobra.Command{
	Use:     "generate <version>",
	Aliases: []string{"gen"},
	Short:   "Generate the changelog entry for a release (gen)",
	Long: `Generate the changelog entry for a release from conventional commits.

Commits between --since (default: the latest tag carrying tag_prefix) and
--to (default: HEAD) are parsed, grouped into sections and rendered as a
'## [<version>] - <date>' markdown block. Commits that do not follow the
conventional format are skipped.

The entry is printed to stdout unless --write is given, in which case it is
inserted into the changelog (changelog_path) below the [Unreleased] heading
and the comparison links at the bottom are updated.

When no conventional commits are found nothing is printed or written and the
command exits successfully.`,
	Example: `  # Entry for 1.4.0 from commits since the latest tag
  changegen generate 1.4.0

  # Write it into CHANGELOG.md
  changegen generate v1.4.0 --write

  # Explicit range and date
  changegen generate 1.4.0 --since v1.3.0 --to release/1.4 --date 2026-03-01

  # Structured output for other tools
  changegen generate 1.4.0 --format yaml

  # Records from another source
  git log --format='%H|%s|%b%x1e' v1.3.0..HEAD | changegen generate 1.4.0 --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.GroupID = shared.GroupRelease
	generateCmd.Flags().String("since", "", "Exclusive start revision (default: latest release tag)")
	generateCmd.Flags().String("to", "", "Inclusive end revision (default: HEAD)")
	generateCmd.Flags().String("date", "", "Release date in the date_format layout (default: today)")
	generateCmd.Flags().Bool("stdin", false, "Read serialized commit records from stdin instead of git")
	generateCmd.Flags().BoolP("write", "w", false, "Insert the entry into the changelog file")
	generateCmd.Flags().StringP("format", "f", formatMarkdown, "Output format: markdown or yaml")
	generateCmd.Flags().String("repo-url", "", "Repository web URL for links (default: repo_url, then the remote)")
	rootCmd.AddCommand(generateCmd)
}

// generateOptions holds the parsed generate flags.
type generateOptions struct {
	since   string
	to      string
	date    string
	stdin   bool
	write   bool
	format  string
	repoURL string
}

func readGenerateOptions(cmd *cobra.Command) generateOptions {
	var opts generateOptions
	opts.since, _ = cmd.Flags().GetString("since")
	opts.to, _ = cmd.Flags().GetString("to")
	opts.date, _ = cmd.Flags().GetString("date")
	opts.stdin, _ = cmd.Flags().GetBool("stdin")
	opts.write, _ = cmd.Flags().GetBool("write")
	opts.format, _ = cmd.Flags().GetString("format")
	opts.repoURL, _ = cmd.Flags().GetString("repo-url")
	return opts
}

// validate rejects flag values and combinations before any work is done.
func (o generateOptions) validate(cmd *cobra.Command) error {
	if o.format != formatMarkdown && o.format != formatYAML {
		return clierrors.InvalidFormat(o.format, outputFormats)
	}
	if o.stdin && (cmd.Flags().Changed("since") || cmd.Flags().Changed("to")) {
		return clierrors.InvalidFlagCombination("--stdin with --since/--to",
			"Records read from stdin already cover the range; drop --since and --to")
	}
	if o.write && o.format != formatMarkdown {
		return clierrors.InvalidFlagCombination("--write with --format "+o.format,
			"Only markdown entries can be written to the changelog")
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return clierrors.MissingVersion()
	}
	version := changelog.NormalizeVersion(args[0])
	if err := changelog.ValidateVersion(version); err != nil {
		return clierrors.InvalidVersion(args[0], err)
	}

	opts := readGenerateOptions(cmd)
	if err := opts.validate(cmd); err != nil {
		return err
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	date, err := resolveDate(opts.date, cfg.DateFormat, time.Now())
	if err != nil {
		return err
	}

	records, err := generateRecords(cmd, cfg, opts)
	if err != nil {
		return err
	}

	rel := changelog.Release{
		Version: version,
		Date:    date,
		RepoURL: resolveRepoURL(cmd, cfg, opts.repoURL),
	}
	result := changelog.Generate(rel, records)
	out := cmd.OutOrStdout()

	if result.IsEmpty() {
		fmt.Fprintln(out, "No conventional commits found")
		return nil
	}

	switch {
	case opts.format == formatYAML:
		return changelog.ExportYAML(out, rel, result.Sections)
	case opts.write:
		return writeEntry(cmd, cfg, rel, result)
	default:
		_, err := fmt.Fprint(out, result.Markdown)
		return err
	}
}

// generateRecords reads records from stdin or walks git history.
func generateRecords(cmd *cobra.Command, cfg *config.Configuration, opts generateOptions) ([]commit.Record, error) {
	if opts.stdin {
		return commit.ReadRecords(cmd.InOrStdin())
	}

	since := opts.since
	if !cmd.Flags().Changed("since") {
		var err error
		if since, err = defaultSince(cmd, cfg); err != nil {
			return nil, err
		}
	}
	return collectRecords(cmd, since, opts.to)
}

// resolveDate returns the release date in layout: today when value is empty,
// otherwise value after checking it parses with layout.
func resolveDate(value, layout string, now time.Time) (string, error) {
	if value == "" {
		return now.Format(layout), nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return "", clierrors.InvalidDate(value, layout)
	}
	return t.Format(layout), nil
}

// writeEntry splices the rendered entry into the configured changelog.
func writeEntry(cmd *cobra.Command, cfg *config.Configuration, rel changelog.Release, result changelog.Result) error {
	path := cfg.ResolveChangelogPath(shared.RepoRoot(cmd))

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return clierrors.ChangelogNotFound(path)
		}
		return fmt.Errorf("reading changelog: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}

	updated, err := changelog.Splice(string(data), result.Markdown, changelog.SpliceOptions{
		Version:   rel.Version,
		RepoURL:   rel.RepoURL,
		TagPrefix: cfg.TagPrefix,
	})
	if err != nil {
		var exists *changelog.VersionExistsError
		switch {
		case errors.Is(err, changelog.ErrNoUnreleasedSection):
			return clierrors.NoUnreleasedSection(path)
		case errors.As(err, &exists):
			return clierrors.VersionAlreadyReleased(rel.Version, path)
		default:
			return fmt.Errorf("updating changelog: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s to %s (%s)\n",
		green("✓"), rel.Version, path, changelog.FormatSummary(result.Sections))
	return nil
}
