// Package config provides hierarchical configuration management for changegen using koanf.
// Configuration is loaded with priority: environment variables > project config (.changegen/config.yml)
// > user config (~/.config/changegen/config.yml) > defaults. A JSON config (config.json) in the
// same directory is accepted when no YAML file exists, with a migration hint.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHANGEGEN_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the changegen CLI tool configuration
type Configuration struct {
	// ChangelogPath is the markdown document that generate --write updates,
	// relative to the repository root unless absolute.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" json:"changelog_path" validate:"required"`

	// RepoURL is the project web URL used for pull-request and compare links.
	// When empty it is derived from the configured remote.
	RepoURL string `koanf:"repo_url" yaml:"repo_url" json:"repo_url" validate:"omitempty,url"`

	// Remote names the git remote consulted when RepoURL is empty.
	Remote string `koanf:"remote" yaml:"remote" json:"remote" validate:"required"`

	// TagPrefix is prepended to versions to form tag names (e.g., "v" for v1.2.0).
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix" json:"tag_prefix"`

	// DateFormat is a Go time layout for release dates.
	DateFormat string `koanf:"date_format" yaml:"date_format" json:"date_format" validate:"required,timelayout"`

	PlainOutput bool `koanf:"plain_output" yaml:"plain_output" json:"plain_output"` // Disable colors in previews
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the directory holding .changegen/ (default: current directory)
	ProjectDir string
	// ProjectConfigPath overrides the project config path (default: <ProjectDir>/.changegen/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: ~/.config/changegen/config.yml)
	UserConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// Config paths:
//   - User config: ~/.config/changegen/config.yml (XDG compliant)
//   - Project config: .changegen/config.yml
//
// A config.json next to either path is read when the YAML file is absent.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	userPath, err := resolveUserPath(opts.UserConfigPath)
	if err != nil {
		return nil, err
	}
	if err := loadLayer(k, userPath, SourceUser, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadLayer(k, resolveProjectPath(opts), SourceProject, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// resolveUserPath returns the user config path, honoring an override.
// A missing home directory disables the user layer instead of failing.
func resolveUserPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	path, err := UserConfigPath()
	if err != nil {
		return "", nil
	}
	return path, nil
}

// resolveProjectPath returns the project config path for opts.
func resolveProjectPath(opts LoadOptions) string {
	if opts.ProjectConfigPath != "" {
		return opts.ProjectConfigPath
	}
	return ProjectConfigPath(opts.ProjectDir)
}

// loadLayer loads one config layer (YAML preferred, JSON accepted).
// Warns if both exist (YAML used, JSON ignored) or if only JSON exists.
func loadLayer(k *koanf.Koanf, yamlPath string, source ConfigSource, warningWriter io.Writer, skipWarnings bool) error {
	if yamlPath == "" {
		return nil
	}
	jsonPath := JSONPathFor(yamlPath)

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	if yamlExists {
		if err := loadYAMLConfig(k, yamlPath, source); err != nil {
			return fmt.Errorf("loading %s YAML config: %w", source, err)
		}
		warnJSONIgnored(warningWriter, jsonPath, yamlPath, jsonExists, skipWarnings)
	} else if jsonExists {
		if err := loadJSONConfig(k, jsonPath, source, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading %s JSON config: %w", source, err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string, source ConfigSource) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	logDebug("[config] loaded %s config %s", source, path)
	return nil
}

// loadJSONConfig loads a JSON config and suggests migrating it
func loadJSONConfig(k *koanf.Koanf, path string, source ConfigSource, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	logDebug("[config] loaded %s config %s", source, path)
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'changegen config migrate' to convert it to YAML.\n\n")
	}
	return nil
}

// warnJSONIgnored warns if a JSON config sits next to the YAML one
func warnJSONIgnored(warningWriter io.Writer, jsonPath, yamlPath string, jsonExists, skipWarnings bool) {
	if jsonExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: JSON config found at %s (ignored, using %s)\n", jsonPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'changegen config migrate' to remove it.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.RepoURL = strings.TrimSuffix(cfg.RepoURL, "/")

	return &cfg, nil
}

// ResolveChangelogPath returns the changelog path joined to root unless it
// is already absolute.
func (c *Configuration) ResolveChangelogPath(root string) string {
	if filepath.IsAbs(c.ChangelogPath) || root == "" {
		return c.ChangelogPath
	}
	return filepath.Join(root, c.ChangelogPath)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGEGEN_REPO_URL -> repo_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// ConfigFile describes one config file consulted by Load.
type ConfigFile struct {
	Source ConfigSource
	Path   string
	Exists bool
}

// ConfigFiles lists the config files Load would consult for opts, in load order.
func ConfigFiles(opts LoadOptions) []ConfigFile {
	userPath, _ := resolveUserPath(opts.UserConfigPath)
	var files []ConfigFile
	for _, f := range []ConfigFile{
		{Source: SourceUser, Path: userPath},
		{Source: SourceProject, Path: resolveProjectPath(opts)},
	} {
		if f.Path == "" {
			continue
		}
		if !fileExists(f.Path) && fileExists(JSONPathFor(f.Path)) {
			f.Path = JSONPathFor(f.Path)
		}
		f.Exists = fileExists(f.Path)
		files = append(files, f)
	}
	return files
}
