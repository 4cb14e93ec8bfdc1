package util

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/ariel-frischer/changegen/internal/build"
	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests that modify build.Version cannot run in parallel.
func TestPrintPlainVersion(t *testing.T) {
	origVersion, origCommit := build.Version, build.Commit
	build.Version, build.Commit = "1.4.0", "0123456789abcdef"
	defer func() { build.Version, build.Commit = origVersion, origCommit }()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "changegen 1.4.0", lines[0])
	assert.Equal(t, "commit: 0123456789abcdef", lines[1])
	assert.Equal(t, "go: "+runtime.Version(), lines[3])
	assert.Equal(t, "platform: "+runtime.GOOS+"/"+runtime.GOARCH, lines[4])
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf, 80)

	out := buf.String()
	assert.Contains(t, out, "changegen")
	assert.Contains(t, out, boxTopLeft)
	assert.Contains(t, out, boxBottomRight)
	assert.Contains(t, out, "Platform")
}

func TestPrintPrettyVersion_NarrowTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NotPanics(t, func() { printPrettyVersion(&buf, 30) })
}

func TestVersionCmd_Plain(t *testing.T) {
	root := &cobra.Command{Use: "changegen"}
	root.AddGroup(&cobra.Group{ID: shared.GroupInspect, Title: "Inspection"})
	Register(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--plain"})
	require.NoError(t, root.Execute())
	defer func() { versionPlain = false }()

	assert.True(t, strings.HasPrefix(buf.String(), "changegen "))
}

func TestVersionCmd_Alias(t *testing.T) {
	t.Parallel()
	assert.Contains(t, versionCmd.Aliases, "v")
}
