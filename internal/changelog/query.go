package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^##\s+\[([^\]]+)\]`)

// unreleasedLabel is the heading label of the pending-changes section.
const unreleasedLabel = "unreleased"

// VersionExistsError is returned when a document already has a heading for
// the version being added.
type VersionExistsError struct {
	Version string
}

func (e *VersionExistsError) Error() string {
	return fmt.Sprintf("version %q already exists in changelog", e.Version)
}

// Heading is a `## [label]` line found in a changelog document.
type Heading struct {
	Label string
	// Line is the zero-based line index of the heading.
	Line int
}

// IsUnreleased returns true if this heading is the Unreleased section.
func (h Heading) IsUnreleased() bool {
	return strings.EqualFold(h.Label, unreleasedLabel)
}

// ParseHeadings returns every version heading in document order.
func ParseHeadings(doc string) []Heading {
	return headingsFromLines(strings.Split(doc, "\n"))
}

func headingsFromLines(lines []string) []Heading {
	var headings []Heading
	for i, line := range lines {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, Heading{Label: m[1], Line: i})
		}
	}
	return headings
}

// ListVersions returns the released version labels in document order
// (newest first for a conventional changelog). Unreleased is excluded.
func ListVersions(doc string) []string {
	var versions []string
	for _, h := range ParseHeadings(doc) {
		if !h.IsUnreleased() {
			versions = append(versions, h.Label)
		}
	}
	return versions
}

// HasVersion returns true if the document has a heading for version.
// A leading "v" is ignored on both sides.
func HasVersion(doc, version string) bool {
	want := NormalizeVersion(version)
	for _, v := range ListVersions(doc) {
		if NormalizeVersion(v) == want {
			return true
		}
	}
	return false
}

// PreviousVersion returns the first released version heading that follows
// the Unreleased heading, or "" if there is none.
func PreviousVersion(doc string) string {
	seenUnreleased := false
	for _, h := range ParseHeadings(doc) {
		if h.IsUnreleased() {
			seenUnreleased = true
			continue
		}
		if seenUnreleased {
			return h.Label
		}
	}
	return ""
}
