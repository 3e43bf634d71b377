// Package commits turns raw commit messages into conventional-commit records.
//
// This package implements:
//   - the RawCommit and ParsedCommit data model
//   - a conventional-commit message parser (header, body, footer, notes,
//     merge and revert lines)
//   - breaking-change detection
//   - filtering and classification of a commit range
//
// The grammar follows the Angular convention: a header
// "type(scope): subject", an optional body and an optional footer that starts
// at the first note ("BREAKING CHANGE: ...") or issue-reference line.
package commits
