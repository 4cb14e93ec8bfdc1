package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a RefWatcher waits for a burst of ref updates
// to settle before reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// RefWatcher reports changes to a repository's HEAD, branches and tags.
// It uses fsnotify on the .git directory, so it only works for repositories
// whose .git is a directory (not linked worktrees).
type RefWatcher struct {
	gitDir   string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// NewRefWatcher starts watching the repository containing path.
func NewRefWatcher(path string, debounce time.Duration) (*RefWatcher, error) {
	root, err := GetRepositoryRoot(path)
	if err != nil {
		return nil, err
	}

	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("locating git directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watching refs requires a .git directory, %s is a file", gitDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &RefWatcher{gitDir: gitDir, debounce: debounce, watcher: watcher}

	if err := w.addTree(gitDir); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches the .git directory and every directory under refs/.
func (w *RefWatcher) addTree(gitDir string) error {
	if err := w.watcher.Add(gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", gitDir, err)
	}
	refs := filepath.Join(gitDir, "refs")
	return filepath.WalkDir(refs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		logDebug("[git] watching %s", p)
		return nil
	})
}

// Run sends on changes after each settled burst of ref updates until ctx is
// cancelled or the watcher is closed. A pending signal is never duplicated,
// so a slow consumer sees one change rather than a backlog.
func (w *RefWatcher) Run(ctx context.Context, changes chan<- struct{}) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent reports whether event touches a ref, and starts watching
// directories created under refs/ (e.g. refs/heads/feature/).
func (w *RefWatcher) handleEvent(event fsnotify.Event) bool {
	rel, err := filepath.Rel(w.gitDir, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	if event.Has(fsnotify.Create) && strings.HasPrefix(rel, "refs/") {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
		}
	}

	if !isRefPath(rel) {
		return false
	}
	logDebug("[git] ref change: %s %s", event.Op, rel)
	return true
}

// isRefPath matches HEAD, packed-refs and loose refs, ignoring lock files.
func isRefPath(rel string) bool {
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	return rel == "HEAD" || rel == "packed-refs" || strings.HasPrefix(rel, "refs/")
}

// Close stops the watcher. It is safe to call more than once.
func (w *RefWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
