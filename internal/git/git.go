// Package git reads commit history for changegen. It uses the go-git library
// for every operation (history walks, tag lookup, remote inspection) so no
// git binary is required at runtime.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// GetRepositoryRoot returns the absolute path to the repository root
// containing path (or the current directory when path is empty).
func GetRepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// RangeOptions selects the commits to collect.
type RangeOptions struct {
	RepoPath string // Repository path; empty means the current directory
	From     string // Exclusive lower bound (tag, branch or hash); empty means full history
	To       string // Inclusive upper bound; empty means HEAD
}

// CollectRecords returns the commits reachable from opts.To but not from
// opts.From, newest first. Cancelling ctx aborts the walk.
func CollectRecords(ctx context.Context, opts RangeOptions) ([]commit.Record, error) {
	repo, err := openRepo(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	to := opts.To
	if to == "" {
		to = "HEAD"
	}
	toHash, err := resolve(repo, to)
	if err != nil {
		return nil, err
	}

	var excluded map[plumbing.Hash]struct{}
	if opts.From != "" {
		fromHash, err := resolve(repo, opts.From)
		if err != nil {
			return nil, err
		}
		excluded, err = reachable(ctx, repo, fromHash)
		if err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}
	defer iter.Close()

	var records []commit.Record
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		records = append(records, recordFromCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] CollectRecords: %d commits in %s..%s", len(records), opts.From, to)
	return records, nil
}

// resolve turns a revision (tag, branch, hash, HEAD) into a commit hash.
func resolve(repo *git.Repository, rev string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, &RevisionError{Revision: rev, Err: err}
	}
	return *hash, nil
}

// reachable returns the set of commits reachable from hash.
func reachable(ctx context.Context, repo *git.Repository, hash plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", hash, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history below %s: %w", hash, err)
	}
	return seen, nil
}

// recordFromCommit splits a commit message into subject and body.
func recordFromCommit(c *object.Commit) commit.Record {
	subject, body, _ := strings.Cut(c.Message, "\n")
	return commit.Record{
		Hash:    c.Hash.String(),
		Subject: strings.TrimSpace(subject),
		Body:    strings.TrimSpace(body),
	}
}

// RevisionError reports a revision that does not name a commit.
type RevisionError struct {
	Revision string
	Err      error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("unknown revision %q: %v", e.Revision, e.Err)
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}

// LatestTag returns the name of the highest semantic-version tag carrying
// prefix. The rest of the tag name must be a version changegen accepts for
// release (see changelog.ParseVersion); other tags are ignored. An empty string
// means the repository has no release tags.
func LatestTag(path, prefix string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	var (
		latest     string
		latestVers *semver.Version
	)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		v, err := changelog.ParseVersion(strings.TrimPrefix(name, prefix))
		if err != nil {
			logDebug("[git] LatestTag: skipping non-version tag %s", name)
			return nil
		}
		if latestVers == nil || v.GreaterThan(latestVers) {
			latest, latestVers = name, v
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] LatestTag(%q): %q", prefix, latest)
	return latest, nil
}

// RemoteURL returns the web URL of the named remote, derived from its first
// configured URL. An empty string means the remote has no usable URL.
func RemoteURL(path, remoteName string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("looking up remote '%s': %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	web := NormalizeRemoteURL(urls[0])
	logDebug("[git] RemoteURL(%s): %s -> %s", remoteName, urls[0], web)
	return web, nil
}

// NormalizeRemoteURL converts a clone URL into the https URL of the project page:
//   - "git@github.com:o/r.git" → "https://github.com/o/r"
//   - "ssh://git@github.com/o/r.git" → "https://github.com/o/r"
//   - "https://user@github.com/o/r.git" → "https://github.com/o/r"
//
// Local paths and unknown schemes yield an empty string.
func NormalizeRemoteURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")

	switch {
	case strings.HasPrefix(u, "git@"):
		host, repoPath, ok := strings.Cut(strings.TrimPrefix(u, "git@"), ":")
		if !ok {
			return ""
		}
		return "https://" + host + "/" + strings.TrimPrefix(repoPath, "/")
	case isSSHURL(u):
		u = u[strings.Index(u, "://")+3:]
	case strings.HasPrefix(u, "https://"):
		u = strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = strings.TrimPrefix(u, "http://")
	default:
		return ""
	}

	// Drop credentials ("user@" or "user:token@") ahead of the host.
	if at := strings.Index(u, "@"); at >= 0 && at < strings.Index(u+"/", "/") {
		u = u[at+1:]
	}
	// ssh://host:22/o/r carries a port that has no meaning for the web URL.
	if host, rest, ok := strings.Cut(u, "/"); ok {
		if h, _, hasPort := strings.Cut(host, ":"); hasPort {
			u = h + "/" + rest
		}
	}
	return "https://" + u
}

// isSSHURL checks if a URL uses an ssh:// or git+ssh:// scheme.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
