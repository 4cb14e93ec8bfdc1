package shared

import (
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/git"
	"github.com/spf13/cobra"
)

// Persistent flag names defined on the root command.
const (
	ConfigFlag = "config"
	RepoFlag   = "repo"
	DebugFlag  = "debug"
)

// stringFlag returns a flag value, or "" when the command lacks the flag.
func stringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// RepoPath returns the --repo flag value (empty means the current directory).
func RepoPath(cmd *cobra.Command) string {
	return stringFlag(cmd, RepoFlag)
}

// RepoRoot returns the root of the repository selected by --repo. Outside a
// repository it falls back to the --repo value itself.
func RepoRoot(cmd *cobra.Command) string {
	path := RepoPath(cmd)
	root, err := git.GetRepositoryRoot(path)
	if err != nil {
		return path
	}
	return root
}

// LoadOptions builds config load options from the persistent flags.
func LoadOptions(cmd *cobra.Command) config.LoadOptions {
	return config.LoadOptions{
		ProjectDir:        RepoRoot(cmd),
		ProjectConfigPath: stringFlag(cmd, ConfigFlag),
		WarningWriter:     cmd.ErrOrStderr(),
	}
}

// LoadConfig loads configuration for the command, converting failures into
// a CLIError with remediation steps.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(LoadOptions(cmd))
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	return cfg, nil
}
