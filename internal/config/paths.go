package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectDirName is the per-repository configuration directory.
const ProjectDirName = ".changegen"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changegen/config.yml
// - macOS: ~/Library/Application Support/changegen/config.yml
// - Windows: %APPDATA%\changegen\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changegen"), nil
}

// ProjectConfigPath returns the path to the project-level config file
// under dir (the current directory when dir is empty).
func ProjectConfigPath(dir string) string {
	return filepath.Join(ProjectConfigDir(dir), "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir(dir string) string {
	return filepath.Join(dir, ProjectDirName)
}

// JSONPathFor returns the JSON config path that pairs with a YAML config path.
func JSONPathFor(yamlPath string) string {
	ext := filepath.Ext(yamlPath)
	return strings.TrimSuffix(yamlPath, ext) + ".json"
}
