package config

import (
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Key name (e.g., "repo_url")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// EnvVar returns the environment variable that overrides the key.
func (s ConfigKeySchema) EnvVar() string {
	return EnvPrefix + strings.ToUpper(s.Path)
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_path": {
		Path:        "changelog_path",
		Type:        TypeString,
		Description: "Markdown changelog updated by generate --write",
		Default:     "CHANGELOG.md",
	},
	"repo_url": {
		Path:        "repo_url",
		Type:        TypeString,
		Description: "Project web URL for pull-request and compare links",
		Default:     "",
	},
	"remote": {
		Path:        "remote",
		Type:        TypeString,
		Description: "Git remote used to derive repo_url when it is empty",
		Default:     "origin",
	},
	"tag_prefix": {
		Path:        "tag_prefix",
		Type:        TypeString,
		Description: "Prefix joining versions to tag names",
		Default:     "v",
	},
	"date_format": {
		Path:        "date_format",
		Type:        TypeString,
		Description: "Go time layout for release dates",
		Default:     "2006-01-02",
	},
	"plain_output": {
		Path:        "plain_output",
		Type:        TypeBool,
		Description: "Disable colors and icons in previews",
		Default:     false,
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the configured value of a known key.
func (c *Configuration) Value(key string) (interface{}, error) {
	if _, err := GetKeySchema(key); err != nil {
		return nil, err
	}
	switch key {
	case "changelog_path":
		return c.ChangelogPath, nil
	case "repo_url":
		return c.RepoURL, nil
	case "remote":
		return c.Remote, nil
	case "tag_prefix":
		return c.TagPrefix, nil
	case "date_format":
		return c.DateFormat, nil
	default:
		return c.PlainOutput, nil
	}
}
