package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/changegen/internal/commit"
)

// Generate runs the full pipeline over raw records: parse, classify, group
// and render. Records that are not conventional commits are dropped.
// When no conventional commits remain the renderer is not invoked and the
// returned Result is empty.
func Generate(rel Release, records []commit.Record) Result {
	commits := commit.ParseAll(records)
	if len(commits) == 0 {
		return Result{}
	}

	sections := Group(commits)
	return Result{
		Markdown: Render(rel, sections),
		Count:    len(commits),
		Sections: sections,
	}
}

// Render produces the markdown block for one version entry.
// The output is deterministic: identical input yields identical bytes.
func Render(rel Release, sections []Section) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = RenderTo(&b, rel, sections)
	return b.String()
}

// RenderTo writes the markdown block for one version entry to w.
func RenderTo(w io.Writer, rel Release, sections []Section) error {
	if _, err := io.WriteString(w, FormatVersionHeader(rel)+"\n"); err != nil {
		return fmt.Errorf("writing version header: %w", err)
	}

	for _, s := range sections {
		if len(s.Commits) == 0 {
			continue
		}
		if err := renderSection(w, rel, s); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Name, err)
		}
	}

	return nil
}

// FormatVersionHeader formats the `## [version] - date` heading.
func FormatVersionHeader(rel Release) string {
	return fmt.Sprintf("## [%s] - %s", rel.Version, rel.Date)
}

// renderSection writes a single section with its entries.
func renderSection(w io.Writer, rel Release, s Section) error {
	if _, err := io.WriteString(w, "\n### "+s.Name+"\n"); err != nil {
		return err
	}

	for _, c := range s.Commits {
		if _, err := io.WriteString(w, FormatEntry(c, rel.RepoURL)+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// FormatEntry formats one commit as a markdown list item.
func FormatEntry(c commit.Commit, repoURL string) string {
	var b strings.Builder
	b.WriteString("- ")
	if c.HasScope() {
		b.WriteString("**" + c.Scope + "**: ")
	}
	b.WriteString(c.Subject)
	if c.HasPR() {
		b.WriteString(" " + formatPRLink(c.PR, repoURL))
	}
	return b.String()
}

// formatPRLink returns `([#N](url/pull/N))`, or `(#N)` without a repo URL.
func formatPRLink(pr, repoURL string) string {
	if repoURL == "" {
		return "(#" + pr + ")"
	}
	return fmt.Sprintf("([#%s](%s))", pr, PullRequestURL(repoURL, pr))
}

// PullRequestURL returns the web URL of pull request pr in repoURL.
func PullRequestURL(repoURL, pr string) string {
	return strings.TrimSuffix(repoURL, "/") + "/pull/" + pr
}
