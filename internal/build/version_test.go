package build

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests here modify package globals and cannot run in parallel.

func TestIsDevBuild(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	assert.True(t, IsDevBuild())
	Version = "1.2.0"
	assert.False(t, IsDevBuild())
}

func TestShortCommit(t *testing.T) {
	orig := Commit
	defer func() { Commit = orig }()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"full hash": {commit: "0123456789abcdef", want: "0123456"},
		"short":     {commit: "abc", want: "abc"},
		"unknown":   {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			Commit = tt.commit
			assert.Equal(t, tt.want, ShortCommit())
		})
	}
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, Platform())
}
