package changelog

import (
	"sort"
	"strings"

	"github.com/ariel-frischer/changegen/internal/commit"
)

// typeSections maps conventional-commit types to changelog sections.
var typeSections = map[string]string{
	"feat":     SectionAdded,
	"fix":      SectionFixed,
	"docs":     SectionDocumentation,
	"style":    SectionChanged,
	"refactor": SectionChanged,
	"perf":     SectionChanged,
	"test":     SectionChanged,
	"build":    SectionChanged,
	"ci":       SectionChanged,
	"chore":    SectionChanged,
	"revert":   SectionRemoved,
}

// SectionFor returns the section a commit type belongs to.
// Unknown types fall back to "Changed".
func SectionFor(commitType string) string {
	if section, ok := typeSections[strings.ToLower(commitType)]; ok {
		return section
	}
	return SectionChanged
}

// Classify returns the section a commit is rendered in. Breaking commits
// always go to "Breaking Changes" regardless of type.
func Classify(c commit.Commit) string {
	if c.Breaking {
		return SectionBreaking
	}
	return SectionFor(c.Type)
}

// Group buckets commits by section and returns the non-empty sections in
// SectionOrder. Commits keep their input order within a section.
func Group(commits []commit.Commit) []Section {
	buckets := make(map[string][]commit.Commit)
	for _, c := range commits {
		name := Classify(c)
		buckets[name] = append(buckets[name], c)
	}

	var sections []Section
	for _, name := range SectionOrder() {
		if len(buckets[name]) == 0 {
			continue
		}
		sections = append(sections, Section{Name: name, Commits: buckets[name]})
	}
	return sections
}

// TypeMapping is one row of the type to section table.
type TypeMapping struct {
	Type    string
	Section string
}

// TypeMappings returns the known type mappings sorted by section order,
// then by type.
func TypeMappings() []TypeMapping {
	rank := make(map[string]int)
	for i, name := range SectionOrder() {
		rank[name] = i
	}

	mappings := make([]TypeMapping, 0, len(typeSections))
	for t, s := range typeSections {
		mappings = append(mappings, TypeMapping{Type: t, Section: s})
	}

	sort.Slice(mappings, func(i, j int) bool {
		if rank[mappings[i].Section] != rank[mappings[j].Section] {
			return rank[mappings[i].Section] < rank[mappings[j].Section]
		}
		return mappings[i].Type < mappings[j].Type
	})
	return mappings
}
