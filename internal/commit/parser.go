package commit

import (
	"regexp"
	"strings"
)

var (
	// subjectPattern matches `type(scope)!: description`. The type group is
	// optional in the pattern so a bare `: text` subject is rejected in Parse
	// rather than by the regexp. The description must not be blank.
	subjectPattern = regexp.MustCompile(`^(\w+)?(?:\(([^)]+)\))?(!)?:\s*(\S.*)$`)

	prPattern = regexp.MustCompile(`#(\d+)`)

	issuePattern = regexp.MustCompile(`(?i)(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+#(\d+)`)
)

const (
	breakingSubjectMarker = "!:"
	breakingBodyMarker    = "BREAKING CHANGE"
)

// Parse converts a raw record into a Commit.
// Returns false if the subject is not a conventional commit; this is an
// expected outcome, not an error.
func Parse(r Record) (Commit, bool) {
	m := subjectPattern.FindStringSubmatch(r.Subject)
	if m == nil || m[1] == "" {
		return Commit{}, false
	}

	return Commit{
		Hash:     shortHash(r.Hash),
		Type:     m[1],
		Scope:    m[2],
		Subject:  strings.TrimSpace(m[4]),
		Body:     r.Body,
		Breaking: IsBreaking(r.Subject, r.Body),
		PR:       ExtractPR(r.Subject),
		Issues:   ExtractIssues(r.Subject + "\n" + r.Body),
	}, true
}

// ParseAll parses every record and keeps only the conventional commits,
// preserving input order.
func ParseAll(records []Record) []Commit {
	commits := make([]Commit, 0, len(records))
	for _, r := range records {
		if c, ok := Parse(r); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

// IsBreaking reports whether the subject contains `!:` or the body contains
// `BREAKING CHANGE`. Both are plain substring tests.
func IsBreaking(subject, body string) bool {
	return strings.Contains(subject, breakingSubjectMarker) ||
		strings.Contains(body, breakingBodyMarker)
}

// ExtractPR returns the digits following the first `#` in text, or "".
func ExtractPR(text string) string {
	m := prPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractIssues returns every issue number referenced by a closing keyword
// (close, fixes, resolved, ...) in order of appearance. Duplicates are kept.
func ExtractIssues(text string) []string {
	matches := issuePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	issues := make([]string, 0, len(matches))
	for _, m := range matches {
		issues = append(issues, m[1])
	}
	return issues
}

func shortHash(hash string) string {
	if len(hash) <= ShortHashLen {
		return hash
	}
	return hash[:ShortHashLen]
}
