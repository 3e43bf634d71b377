// Package changelog renders classified commits as release notes.
//
// This package implements:
//   - the ordered table of changelog sections (breaking changes, one section
//     per conventional-commit type, the generic commits bucket)
//   - entry formatting with short SHA links
//   - Markdown generation for the release body
//   - colored terminal output for previews
//
// Rendering is deterministic: the same ordered input always produces
// byte-identical output.
package changelog
