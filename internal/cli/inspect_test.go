package cli

import (
	"strings"
	"testing"

	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/ariel-frischer/changegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCmd(t *testing.T) {
	r := releasedRepo(t)

	out, _, err := execute(t, "", "--repo", r.Dir, "log")
	require.NoError(t, err)

	records, err := commit.ReadRecords(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "docs: usage section", records[0].Subject)
	assert.Equal(t, "feat(api): add endpoint (#12)", records[3].Subject)
	assert.Len(t, records[0].Hash, 40)
}

func TestLogCmd_FeedsGenerate(t *testing.T) {
	r := releasedRepo(t)

	records, _, err := execute(t, "", "--repo", r.Dir, "log")
	require.NoError(t, err)

	direct, _, err := execute(t, "", "--repo", r.Dir, "generate", "1.1.0", "--date", "2026-03-01")
	require.NoError(t, err)

	piped, _, err := execute(t, records, "--repo", r.Dir, "generate", "1.1.0", "--date", "2026-03-01", "--stdin")
	require.NoError(t, err)

	assert.Equal(t, direct, piped)
}

func TestLogCmd_Range(t *testing.T) {
	r := releasedRepo(t)

	out, _, err := execute(t, "", "--repo", r.Dir, "log", "--since", "v1.0.0", "--to", "HEAD~2")
	require.NoError(t, err)

	records, err := commit.ReadRecords(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "update readme wording", records[0].Subject)
}

func TestVersionsCmd(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.WriteFile("CHANGELOG.md", "# Changelog\n\n## [Unreleased]\n\n## [1.1.0] - 2026-02-01\n\n## [1.0.0] - 2026-01-01\n")

	tests := map[string]struct {
		args []string
		want string
	}{
		"all":    {args: []string{"versions"}, want: "1.1.0\n1.0.0\n"},
		"latest": {args: []string{"versions", "--latest"}, want: "1.1.0\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, "", append([]string{"--repo", r.Dir}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionsCmd_Empty(t *testing.T) {
	r := testutil.NewGitRepo(t)
	r.WriteFile("CHANGELOG.md", "# Changelog\n\n## [Unreleased]\n")

	out, errOut, err := execute(t, "", "--repo", r.Dir, "versions")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No released versions")
}

func TestVersionsCmd_MissingChangelog(t *testing.T) {
	_, _, err := execute(t, "", "--repo", t.TempDir(), "versions")
	require.Error(t, err)
	assert.Equal(t, shared.ExitMissingDependency, shared.ExitCode(err))
}
