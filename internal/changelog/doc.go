// Package changelog turns parsed conventional commits into Keep a Changelog
// version entries.
//
// This package implements:
//   - Classification of commit types into changelog sections
//   - Deterministic markdown rendering of one version entry
//   - Splicing a rendered entry into an existing CHANGELOG.md
//   - Terminal preview and YAML export of generated entries
//
// Breaking commits are rendered only under "Breaking Changes" and never in
// the section their type would otherwise select.
package changelog
