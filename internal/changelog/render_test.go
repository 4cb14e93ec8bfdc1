package changelog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRepo = "https://github.com/example/project"

func TestGenerate_Golden(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		{Hash: "1111111aaaaaaa", Subject: "feat(cli)!: add retry flag", Body: "BREAKING CHANGE: removes --no-retry"},
		{Hash: "2222222bbbbbbb", Subject: "fix: handle timeout (#42)"},
		{Hash: "3333333ccccccc", Subject: "Merge branch 'main'"},
		{Hash: "4444444ddddddd", Subject: "feat(api): list users", Body: "Closes #7"},
		{Hash: "5555555eeeeeee", Subject: "docs: explain config"},
		{Hash: "6666666fffffff", Subject: "wibble: odd type"},
		{Hash: "7777777aaaaaaa", Subject: "revert: drop legacy mode (#9)"},
	}

	res := Generate(Release{Version: "1.2.0", Date: "2026-01-15", RepoURL: testRepo}, records)

	want := `## [1.2.0] - 2026-01-15

### Breaking Changes
- **cli**: add retry flag

### Added
- **api**: list users

### Changed
- odd type

### Removed
- drop legacy mode (#9) ([#9](https://github.com/example/project/pull/9))

### Fixed
- handle timeout (#42) ([#42](https://github.com/example/project/pull/42))

### Documentation
- explain config
`
	assert.Equal(t, want, res.Markdown)
	assert.Equal(t, 6, res.Count)
	assert.False(t, res.IsEmpty())
	assert.Len(t, res.Sections, 6)
}

func TestGenerate_NoConventionalCommits(t *testing.T) {
	t.Parallel()

	tests := map[string][]commit.Record{
		"nil input": nil,
		"only non-conventional": {
			{Hash: "1111111", Subject: "Initial commit"},
			{Hash: "2222222", Subject: "Merge pull request #3 from x/y"},
		},
		"blank descriptions": {
			{Hash: "3333333", Subject: "feat:   "},
			{Hash: "4444444", Subject: "fix(api): "},
		},
	}

	for name, records := range tests {
		records := records
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := Generate(Release{Version: "1.0.0", Date: "2026-01-15"}, records)
			assert.True(t, res.IsEmpty())
			assert.Zero(t, res.Count)
			assert.Empty(t, res.Markdown)
			assert.Empty(t, res.Sections)
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	commits := commit.ParseAll([]commit.Record{
		{Hash: "aaaaaaa1", Subject: "feat: a"},
		{Hash: "bbbbbbb2", Subject: "fix(core): b (#1)"},
		{Hash: "ccccccc3", Subject: "perf!: c"},
	})
	sections := Group(commits)
	rel := Release{Version: "0.1.0", Date: "2026-02-01", RepoURL: testRepo}

	first := Render(rel, sections)
	second := Render(rel, sections)
	assert.Equal(t, first, second)

	var buf bytes.Buffer
	require.NoError(t, RenderTo(&buf, rel, sections))
	assert.Equal(t, first, buf.String())
}

func TestRender_Layout(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{Name: SectionAdded, Commits: []commit.Commit{{Type: "feat", Subject: "one"}}},
		{Name: SectionChanged},
		{Name: SectionFixed, Commits: []commit.Commit{{Type: "fix", Subject: "two"}}},
	}

	got := Render(Release{Version: "2.0.0", Date: "2026-03-03"}, sections)

	assert.True(t, strings.HasPrefix(got, "## [2.0.0] - 2026-03-03\n"))
	assert.NotContains(t, got, "### Changed", "empty sections have no header")
	assert.NotContains(t, got, "\n\n\n", "one blank line between sections")
	assert.True(t, strings.HasSuffix(got, "- two\n"))
	assert.False(t, strings.HasSuffix(got, "\n\n"))
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit  commit.Commit
		repoURL string
		want    string
	}{
		"subject only": {
			commit: commit.Commit{Subject: "add thing"},
			want:   "- add thing",
		},
		"with scope": {
			commit: commit.Commit{Scope: "cli", Subject: "add retry flag"},
			want:   "- **cli**: add retry flag",
		},
		"with pr and repo": {
			commit:  commit.Commit{Subject: "handle timeout (#42)", PR: "42"},
			repoURL: testRepo,
			want:    "- handle timeout (#42) ([#42](https://github.com/example/project/pull/42))",
		},
		"repo with trailing slash": {
			commit:  commit.Commit{Subject: "x", PR: "5"},
			repoURL: testRepo + "/",
			want:    "- x ([#5](https://github.com/example/project/pull/5))",
		},
		"with pr and no repo": {
			commit: commit.Commit{Scope: "db", Subject: "y", PR: "8"},
			want:   "- **db**: y (#8)",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatEntry(tt.commit, tt.repoURL))
		})
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTo_WriteError(t *testing.T) {
	t.Parallel()

	err := RenderTo(errWriter{}, Release{Version: "1.0.0", Date: "2026-01-01"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing version header")
}
