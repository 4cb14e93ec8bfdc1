package changelog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

// ValidationError represents an invalid release field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ParseVersion parses a bare MAJOR.MINOR.PATCH version with optional
// pre-release and build suffixes. Unlike semver.NewVersion it rejects a
// leading "v" and short forms such as "1.2"; call NormalizeVersion first to
// accept prefixed input.
func ParseVersion(version string) (*semver.Version, error) {
	if version == "" {
		return nil, &ValidationError{Field: "version", Message: "required field is empty"}
	}

	core, _, _ := strings.Cut(version, "+")
	core, _, _ = strings.Cut(core, "-")
	if strings.Count(core, ".") != 2 || strings.HasPrefix(core, "v") || strings.HasPrefix(core, "V") {
		return nil, &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", version),
		}
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("invalid semver format %q: %v", version, err),
		}
	}
	return v, nil
}

// ValidateVersion checks that version is a bare semantic version.
func ValidateVersion(version string) error {
	_, err := ParseVersion(version)
	return err
}

// NormalizeVersion removes a leading "v" so both "v0.6.0" and "0.6.0" are
// accepted on input.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") || strings.HasPrefix(version, "V") {
		return version[1:]
	}
	return version
}
