// Package commit turns raw git commit records into typed conventional commits.
//
// This package implements:
//   - Conventional-commit subject parsing (type, scope, breaking marker)
//   - Pull-request and closing-keyword issue reference extraction
//   - Decoding of the `hash|subject|body` record stream produced by git log
//
// Parsing never fails: a record whose subject is not a conventional commit is
// simply not a Commit, and callers drop it.
package commit
