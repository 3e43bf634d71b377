package changelog

import "github.com/ariel-frischer/autorelease/internal/commits"

const (
	// BreakingTitle is the title of the section listing breaking changes.
	BreakingTitle = "Breaking Changes"
	// CommitsTitle is the title of the generic bucket for untyped commits.
	CommitsTitle = "Commits"
)

// TypeSection pairs a conventional-commit type with its section title.
type TypeSection struct {
	Type  commits.Type
	Title string
}

// typeSections is the fixed section table. Its order is the rendering order.
var typeSections = []TypeSection{
	{commits.TypeFeat, "Features"},
	{commits.TypeFix, "Bug Fixes"},
	{commits.TypeDocs, "Documentation"},
	{commits.TypeStyle, "Styles"},
	{commits.TypeRefactor, "Code Refactoring"},
	{commits.TypePerf, "Performance Improvements"},
	{commits.TypeTest, "Tests"},
	{commits.TypeBuild, "Builds"},
	{commits.TypeCI, "Continuous Integration"},
	{commits.TypeChore, "Chores"},
	{commits.TypeRevert, "Reverts"},
}

// TypeSections returns a copy of the section table in rendering order.
func TypeSections() []TypeSection {
	out := make([]TypeSection, len(typeSections))
	copy(out, typeSections)
	return out
}

// Kind tells which part of the changelog a section belongs to.
type Kind int

const (
	KindBreaking Kind = iota
	KindType
	KindCommits
)

// Section is one titled block of the changelog. Sections never have zero entries.
type Section struct {
	Kind Kind
	// Type is set for KindType sections.
	Type    commits.Type
	Title   string
	Entries []string
}

// Changelog is the ordered list of non-empty sections built from a commit range.
type Changelog struct {
	Sections []Section
}

// IsEmpty returns true if no section has entries.
func (c *Changelog) IsEmpty() bool {
	return len(c.Sections) == 0
}

// Count returns the number of entries across all sections.
// A breaking typed commit is counted once per section it appears in.
func (c *Changelog) Count() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Entries)
	}
	return n
}
