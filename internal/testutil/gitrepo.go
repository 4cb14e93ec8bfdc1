// Package testutil provides test helpers shared by changegen packages.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// StartTime is the author time of the first commit in a GitRepo.
var StartTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a throwaway repository in t.TempDir(). Each commit is one
// minute after the previous one so history order is deterministic.
type GitRepo struct {
	Dir  string
	Repo *git.Repository

	t    testing.TB
	when time.Time
	n    int
}

// NewGitRepo initializes an empty repository.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &GitRepo{Dir: dir, Repo: repo, t: t, when: StartTime}
}

func (r *GitRepo) signature() *object.Signature {
	return &object.Signature{Name: "Test", Email: "test@test.com", When: r.when}
}

// Commit writes a new file and commits it with msg.
func (r *GitRepo) Commit(msg string) plumbing.Hash {
	r.t.Helper()

	r.n++
	r.when = r.when.Add(time.Minute)

	rel := filepath.Join("src", "change"+strconv.Itoa(r.n)+".txt")
	r.WriteFile(rel, msg)

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(filepath.ToSlash(rel))
	require.NoError(r.t, err)

	hash, err := wt.Commit(msg, &git.CommitOptions{Author: r.signature()})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag.
func (r *GitRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag object pointing at hash.
func (r *GitRepo) AnnotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Message: "release " + name,
		Tagger:  r.signature(),
	})
	require.NoError(r.t, err)
}

// AddRemote configures a remote with a single URL.
func (r *GitRepo) AddRemote(name, url string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(r.t, err)
}

// WriteFile writes content to rel under the repository, creating parent
// directories. It returns the absolute path.
func (r *GitRepo) WriteFile(rel, content string) string {
	r.t.Helper()
	path := filepath.Join(r.Dir, rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
