package changelog

import (
	"testing"

	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commitType string
		want       string
	}{
		"feat":           {commitType: "feat", want: SectionAdded},
		"fix":            {commitType: "fix", want: SectionFixed},
		"docs":           {commitType: "docs", want: SectionDocumentation},
		"style":          {commitType: "style", want: SectionChanged},
		"refactor":       {commitType: "refactor", want: SectionChanged},
		"perf":           {commitType: "perf", want: SectionChanged},
		"test":           {commitType: "test", want: SectionChanged},
		"build":          {commitType: "build", want: SectionChanged},
		"ci":             {commitType: "ci", want: SectionChanged},
		"chore":          {commitType: "chore", want: SectionChanged},
		"revert":         {commitType: "revert", want: SectionRemoved},
		"unknown type":   {commitType: "wibble", want: SectionChanged},
		"empty type":     {commitType: "", want: SectionChanged},
		"uppercase feat": {commitType: "FEAT", want: SectionAdded},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SectionFor(tt.commitType))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit commit.Commit
		want   string
	}{
		"breaking feat":    {commit: commit.Commit{Type: "feat", Breaking: true}, want: SectionBreaking},
		"breaking docs":    {commit: commit.Commit{Type: "docs", Breaking: true}, want: SectionBreaking},
		"breaking unknown": {commit: commit.Commit{Type: "wibble", Breaking: true}, want: SectionBreaking},
		"plain fix":        {commit: commit.Commit{Type: "fix"}, want: SectionFixed},
		"plain unknown":    {commit: commit.Commit{Type: "wibble"}, want: SectionChanged},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.commit))
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	commits := []commit.Commit{
		{Hash: "a1", Type: "fix", Subject: "first fix"},
		{Hash: "a2", Type: "feat", Subject: "big feature", Breaking: true},
		{Hash: "a3", Type: "docs", Subject: "docs"},
		{Hash: "a4", Type: "feat", Subject: "small feature"},
		{Hash: "a5", Type: "fix", Subject: "second fix"},
		{Hash: "a6", Type: "revert", Subject: "undo"},
		{Hash: "a7", Type: "chore", Subject: "tidy"},
	}

	sections := Group(commits)

	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		SectionBreaking,
		SectionAdded,
		SectionChanged,
		SectionRemoved,
		SectionFixed,
		SectionDocumentation,
	}, names)

	require.Len(t, sections[0].Commits, 1)
	assert.Equal(t, "a2", sections[0].Commits[0].Hash)

	require.Len(t, sections[1].Commits, 1, "breaking feat must not appear under Added")
	assert.Equal(t, "a4", sections[1].Commits[0].Hash)

	fixed := sections[4]
	require.Len(t, fixed.Commits, 2)
	assert.Equal(t, "a1", fixed.Commits[0].Hash, "input order preserved")
	assert.Equal(t, "a5", fixed.Commits[1].Hash)
}

func TestGroup_BreakingExcludedFromTypeSection(t *testing.T) {
	t.Parallel()

	for _, typ := range []string{"feat", "fix", "docs", "revert", "chore", "wibble"} {
		sections := Group([]commit.Commit{{Hash: "h", Type: typ, Breaking: true}})
		require.Len(t, sections, 1, typ)
		assert.Equal(t, SectionBreaking, sections[0].Name, typ)
	}
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Group(nil))
}

func TestTypeMappings(t *testing.T) {
	t.Parallel()

	mappings := TypeMappings()
	require.Len(t, mappings, 11)

	assert.Equal(t, TypeMapping{Type: "feat", Section: SectionAdded}, mappings[0])
	assert.Equal(t, TypeMapping{Type: "docs", Section: SectionDocumentation}, mappings[len(mappings)-1])

	for _, m := range mappings {
		assert.Equal(t, SectionFor(m.Type), m.Section, m.Type)
	}
}
