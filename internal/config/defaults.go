package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changegen configuration
# See 'changegen config keys' for all options

changelog_path: CHANGELOG.md          # Document updated by 'generate --write'
repo_url: ""                          # Web URL for PR/compare links (empty = derive from remote)
remote: origin                        # Remote used to derive repo_url
tag_prefix: v                         # Tag name prefix (v1.2.0)
date_format: "2006-01-02"             # Go time layout for release dates
plain_output: false                   # Disable colors in 'changegen preview'
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}
