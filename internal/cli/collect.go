package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/changegen/internal/cli/shared"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/git"
	"github.com/ariel-frischer/changegen/internal/progress"
	gogit "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
)

// collectRecords walks the repository selected by --repo between since and
// to, showing a spinner on stderr while the walk runs.
func collectRecords(cmd *cobra.Command, since, to string) ([]commit.Record, error) {
	sp := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	sp.Start("Reading commit history...")

	records, err := git.CollectRecords(cmd.Context(), git.RangeOptions{
		RepoPath: shared.RepoPath(cmd),
		From:     since,
		To:       to,
	})
	if err != nil {
		sp.Fail("Reading commit history failed")
		return nil, gitError(err)
	}

	sp.Success(fmt.Sprintf("Read %d commits since %s", len(records), describeSince(since)))
	return records, nil
}

// defaultSince returns the latest release tag, or "" when there is none.
func defaultSince(cmd *cobra.Command, cfg *config.Configuration) (string, error) {
	tag, err := git.LatestTag(shared.RepoPath(cmd), cfg.TagPrefix)
	if err != nil {
		return "", gitError(err)
	}
	return tag, nil
}

// resolveRepoURL picks the repository web URL: explicit flag, then config,
// then the configured remote.
func resolveRepoURL(cmd *cobra.Command, cfg *config.Configuration, flagValue string) string {
	if flagValue != "" {
		return strings.TrimSuffix(flagValue, "/")
	}
	if cfg.RepoURL != "" {
		return cfg.RepoURL
	}
	url, err := git.RemoteURL(shared.RepoPath(cmd), cfg.Remote)
	if err != nil {
		return ""
	}
	return url
}

// gitError converts collector failures into CLI errors where the cause is known.
func gitError(err error) error {
	var revErr *git.RevisionError
	switch {
	case errors.As(err, &revErr):
		return clierrors.UnknownRevision(revErr.Revision, revErr.Err)
	case errors.Is(err, gogit.ErrRepositoryNotExists):
		return clierrors.GitNotRepository()
	default:
		return fmt.Errorf("reading commit history: %w", err)
	}
}

func describeSince(since string) string {
	if since == "" {
		return "the first commit"
	}
	return since
}
