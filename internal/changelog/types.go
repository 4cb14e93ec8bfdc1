package changelog

import "github.com/ariel-frischer/changegen/internal/commit"

// Section names, in Keep a Changelog wording plus the two extra buckets
// this tool emits.
const (
	SectionBreaking      = "Breaking Changes"
	SectionAdded         = "Added"
	SectionChanged       = "Changed"
	SectionDeprecated    = "Deprecated"
	SectionRemoved       = "Removed"
	SectionFixed         = "Fixed"
	SectionSecurity      = "Security"
	SectionDocumentation = "Documentation"
)

// Release identifies the version entry being generated.
// Version and Date are passed in explicitly; nothing is read from the
// environment during rendering.
type Release struct {
	Version string
	Date    string
	// RepoURL is the repository web URL used for pull-request links,
	// e.g. https://github.com/owner/repo. May be empty.
	RepoURL string
}

// Section is a named bucket of commits in encounter order.
type Section struct {
	Name    string          `yaml:"name"`
	Commits []commit.Commit `yaml:"entries"`
}

// Result is the outcome of one generation pass.
type Result struct {
	// Markdown is the rendered version entry. Empty when Count is zero.
	Markdown string
	// Count is the number of conventional commits classified.
	Count int
	// Sections holds the non-empty sections in render order.
	Sections []Section
}

// IsEmpty returns true if no conventional commits were found, which callers
// treat as "nothing to generate".
func (r Result) IsEmpty() bool {
	return r.Count == 0
}

// SectionOrder returns the fixed order sections are rendered in.
func SectionOrder() []string {
	return []string{
		SectionBreaking,
		SectionAdded,
		SectionChanged,
		SectionDeprecated,
		SectionRemoved,
		SectionFixed,
		SectionSecurity,
		SectionDocumentation,
	}
}
