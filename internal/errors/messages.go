package errors

import "fmt"

// Common error messages for the changegen CLI.
// These templates ensure consistent, actionable error messages.

// MissingVersion creates an error for a missing version argument.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"version is required",
		"changegen generate <version>",
		"Pass the version being released, e.g. changegen generate 1.4.0",
		"A leading v is accepted (v1.4.0)",
	)
}

// InvalidVersion creates an error for a version that is not X.Y.Z.
func InvalidVersion(provided string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("invalid version %q", provided),
		"Use semantic versioning: MAJOR.MINOR.PATCH (e.g., 1.4.0)",
		"Pre-release and build suffixes are allowed (1.4.0-rc.1)",
	)
}

// InvalidDate creates an error for a release date that does not match the configured layout.
func InvalidDate(provided, layout string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid release date %q", provided),
		fmt.Sprintf("Use the configured date_format layout (%s)", layout),
		"Omit --date to use today's date",
	)
}

// InvalidFormat creates an error for an unknown --format value.
func InvalidFormat(provided string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format %q", provided),
		fmt.Sprintf("Valid formats: %v", valid),
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'changegen <command> --help' to see valid options",
	)
}

// UnknownRevision creates an error for a --since/--to revision git cannot resolve.
func UnknownRevision(rev string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("cannot resolve revision %q", rev),
		"List release tags with: git tag --list",
		"Pass a tag, branch or commit hash that exists locally",
		"Fetch missing tags with: git fetch --tags",
	)
}

// ChangelogNotFound creates an error when the changelog document does not exist.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Create it with an '## [Unreleased]' heading",
		"Or point changelog_path at the right file: changegen config get changelog_path",
	)
}

// NoUnreleasedSection creates an error when the changelog lacks an Unreleased heading.
func NoUnreleasedSection(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no '## [Unreleased]' heading in %s", path),
		"Add an '## [Unreleased]' heading above the newest version",
		"Or print the entry instead of writing it: changegen generate <version>",
	)
}

// VersionAlreadyReleased creates an error when the changelog already has the version.
func VersionAlreadyReleased(version, path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("version %s is already in %s", version, path),
		"Pick the next version number",
		"List released versions with: changegen versions",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Show the resolved configuration with: changegen config show",
		"List valid keys with: changegen config keys",
		"Reset a project config with: changegen config init --force",
	)
}

// UnknownConfigKey creates an error for a key missing from the config schema.
func UnknownConfigKey(key string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown configuration key: %s", key),
		"List valid keys with: changegen config keys",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// GitNotRepository creates an error when not in a git repository.
func GitNotRepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Initialize with: git init",
		"Or navigate to an existing repository (or pass --repo)",
		"Or pipe records in with: changegen generate <version> --stdin",
	)
}
