package changelog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoUnreleasedSection is returned when a document has no
// `## [Unreleased]` heading to insert after.
var ErrNoUnreleasedSection = errors.New("changelog has no [Unreleased] section")

var (
	linkRefPattern        = regexp.MustCompile(`^\[[^\]]+\]:\s*\S+`)
	unreleasedLinkPattern = regexp.MustCompile(`(?i)^\[unreleased\]:\s*(\S+)`)
)

// linkPathMarkers separate a repository URL from the ref part of a link
// target, e.g. https://github.com/o/r/commits/HEAD.
var linkPathMarkers = []string{"/compare/", "/commits/", "/tree/"}

// SpliceOptions controls how a rendered block is inserted.
type SpliceOptions struct {
	// Version is the version being released, without tag prefix.
	Version string
	// RepoURL is used for comparison links when the document has no
	// existing [Unreleased] link to take the base URL from.
	RepoURL string
	// TagPrefix is prepended to versions in comparison links (usually "v").
	TagPrefix string
}

// Splice inserts block into doc after the Unreleased section's content and
// before the next version heading, then rewrites the [Unreleased] comparison
// link to start at the new version and adds a link for the new version
// comparing it to the previous one.
func Splice(doc, block string, opts SpliceOptions) (string, error) {
	lines := strings.Split(doc, "\n")
	headings := headingsFromLines(lines)

	unreleased := -1
	for i, h := range headings {
		if h.IsUnreleased() {
			unreleased = i
			break
		}
	}
	if unreleased < 0 {
		return "", ErrNoUnreleasedSection
	}

	if HasVersion(doc, opts.Version) {
		return "", &VersionExistsError{Version: opts.Version}
	}

	previous := PreviousVersion(doc)
	var insertAt int
	if unreleased+1 < len(headings) {
		insertAt = headings[unreleased+1].Line
	} else {
		insertAt = trailingLinksStart(lines, headings[unreleased].Line)
	}

	logDebug("[changelog] splicing %s at line %d (previous: %q)", opts.Version, insertAt, previous)
	lines = insertBlock(lines, insertAt, block)

	base := strings.TrimSuffix(opts.RepoURL, "/")
	linkLine := -1
	for i, line := range lines {
		if m := unreleasedLinkPattern.FindStringSubmatch(line); m != nil {
			base = linkBase(m[1], base)
			linkLine = i
			break
		}
	}
	if base == "" {
		logDebug("[changelog] no repository URL known, leaving links untouched")
		return strings.Join(lines, "\n"), nil
	}

	unreleasedLink := fmt.Sprintf("[Unreleased]: %s/compare/%s%s...HEAD", base, opts.TagPrefix, opts.Version)
	versionLink := formatVersionLink(base, opts.TagPrefix, opts.Version, previous)

	if linkLine >= 0 {
		lines[linkLine] = unreleasedLink
		lines = insertLines(lines, linkLine+1, versionLink)
	} else {
		lines = appendLinks(lines, unreleasedLink, versionLink)
	}

	return strings.Join(lines, "\n"), nil
}

// linkBase returns the repository URL a link target points into. A target
// without a recognized ref path falls back to repoURL, or to the target
// itself when no repository URL is known.
func linkBase(target, repoURL string) string {
	for _, marker := range linkPathMarkers {
		if i := strings.Index(target, marker); i > 0 {
			return target[:i]
		}
	}
	if repoURL != "" {
		return repoURL
	}
	return strings.TrimSuffix(target, "/")
}

// formatVersionLink creates the comparison link for a newly added version.
func formatVersionLink(base, prefix, version, previous string) string {
	if previous == "" {
		return fmt.Sprintf("[%s]: %s/releases/tag/%s%s", version, base, prefix, version)
	}
	return fmt.Sprintf("[%s]: %s/compare/%s%s...%s%s",
		version, base, prefix, NormalizeVersion(previous), prefix, version)
}

// trailingLinksStart returns the index of the first line of the link
// reference block at the end of the document, or len(lines) if there is none
// after minLine.
func trailingLinksStart(lines []string, minLine int) int {
	end := len(lines)
	for end > minLine+1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	start := end
	for start > minLine+1 && linkRefPattern.MatchString(lines[start-1]) {
		start--
	}
	if start == end {
		return len(lines)
	}
	return start
}

// insertBlock places block at index at, separated from its neighbours by
// exactly one blank line.
func insertBlock(lines []string, at int, block string) []string {
	before := trimTrailingBlank(lines[:at])
	after := trimLeadingBlank(lines[at:])
	blockLines := strings.Split(strings.Trim(block, "\n"), "\n")

	out := make([]string, 0, len(before)+len(blockLines)+len(after)+3)
	out = append(out, before...)
	out = append(out, "")
	out = append(out, blockLines...)
	out = append(out, "")
	if len(after) == 0 {
		// The document ends with the new block; keep a final newline.
		return out
	}
	return append(out, after...)
}

// appendLinks adds link lines at the end of the document, joining an
// existing trailing link block when there is one.
func appendLinks(lines []string, links ...string) []string {
	out := trimTrailingBlank(lines)
	if len(out) > 0 && !linkRefPattern.MatchString(out[len(out)-1]) {
		out = append(out, "")
	}
	out = append(out, links...)
	return append(out, "")
}

func insertLines(lines []string, at int, extra ...string) []string {
	out := make([]string, 0, len(lines)+len(extra))
	out = append(out, lines[:at]...)
	out = append(out, extra...)
	return append(out, lines[at:]...)
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return append([]string(nil), lines[:end]...)
}

func trimLeadingBlank(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	return lines[start:]
}
