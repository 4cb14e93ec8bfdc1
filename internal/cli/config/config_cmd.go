// Package config implements the 'changegen config' command tree.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changegen configuration",
	Long: `Manage changegen configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHANGEGEN_*)
  2. Project config (.changegen/config.yml, or --config)
  3. User config (~/.config/changegen/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the resolved configuration
  changegen config show

  # Read one value
  changegen config get tag_prefix

  # Create a project config
  changegen config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration and its sources",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one resolved configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every configuration key with its default and env variable",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Write a commented default config file.

By default the project config (.changegen/config.yml at the repository root)
is created. Use --user for the user-level config. An existing file is left
unchanged unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy config.json to config.yml",
	Long: `Convert a legacy config.json to config.yml.

The JSON file is kept as config.json.bak after a successful migration.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration

	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configInitCmd.Flags().Bool("user", false, "Create the user-level config instead of the project config")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config with defaults")
	configMigrateCmd.Flags().Bool("user", false, "Migrate the user-level config instead of the project config")
	configMigrateCmd.Flags().Bool("dry-run", false, "Report what would change without writing")

	configCmd.AddCommand(configShowCmd, configGetCmd, configKeysCmd, configInitCmd, configMigrateCmd)
}

// Register adds the config command tree to root.
func Register(root *cobra.Command) {
	root.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cBold("Configuration Sources:"))
	for _, f := range config.ConfigFiles(shared.LoadOptions(cmd)) {
		mark := cDim("(not found)")
		if f.Exists {
			mark = cGreen("✓")
		}
		fmt.Fprintf(out, "  %-8s %s %s\n", f.Source, f.Path, mark)
	}
	fmt.Fprintln(out)

	if asJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding config as JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config as YAML: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	value, err := cfg.Value(args[0])
	if err != nil {
		return clierrors.UnknownConfigKey(args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	printKeysTable(cmd.OutOrStdout())
	return nil
}

// printKeysTable renders the key registry in alphabetical order.
func printKeysTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Type", "Default", "Env", "Description"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		def := fmt.Sprint(schema.Default)
		if def == "" {
			def = `""`
		}
		table.Append([]string{schema.Path, schema.Type.String(), def, schema.EnvVar(), schema.Description})
	}
	table.Render()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	path, err := initTargetPath(cmd, user)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "%s Config already exists at %s (use --force to overwrite)\n", cYellow("⚠"), path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	fmt.Fprintf(out, "%s Created config at %s\n", cGreen("✓"), path)
	return nil
}

// initTargetPath returns the config file 'config init' writes.
func initTargetPath(cmd *cobra.Command, user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("getting user config path: %w", err)
		}
		return path, nil
	}
	opts := shared.LoadOptions(cmd)
	if opts.ProjectConfigPath != "" {
		return opts.ProjectConfigPath, nil
	}
	return config.ProjectConfigPath(opts.ProjectDir), nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetBool("user")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	var (
		result *config.MigrationResult
		err    error
	)
	if user {
		result, err = config.MigrateUserConfig(dryRun)
	} else {
		result, err = config.MigrateProjectConfig(shared.RepoRoot(cmd), dryRun)
	}
	if err != nil {
		return fmt.Errorf("migrating config: %w", err)
	}

	if !result.Success {
		fmt.Fprintln(out, result.Message)
		return nil
	}

	if err := config.RemoveLegacyConfig(result.SourcePath, dryRun); err != nil {
		return fmt.Errorf("removing legacy config: %w", err)
	}
	fmt.Fprintf(out, "%s %s\n", cGreen("✓"), result.Message)
	if !dryRun {
		fmt.Fprintf(out, "  %s\n", cDim("Backup: "+result.SourcePath+".bak"))
	}
	return nil
}
