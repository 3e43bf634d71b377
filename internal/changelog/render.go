package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

// FormatEntry renders one changelog line:
//
//   - **<scope>**: <subject> ([<sha7>](<url>))
//
// The scope prefix is dropped when the commit has no scope. A commit without
// a recognized type renders as "" unless generic is set, in which case its
// subject is used, else its header, else the merge line of a merge commit
// that has no title.
func FormatEntry(pc commits.ParsedCommit, generic bool) string {
	subject := pc.Subject
	if !pc.HasType() {
		if !generic {
			return ""
		}
		if subject == "" {
			subject = pc.Header
		}
		if subject == "" && pc.Merge != nil {
			subject = fmt.Sprintf("Merge pull request #%s from %s", pc.Merge.IssueID, pc.Merge.Source)
		}
	}

	scope := ""
	if pc.Scope != "" {
		scope = "**" + pc.Scope + "**: "
	}
	return fmt.Sprintf("- %s%s ([%s](%s))", scope, subject, pc.Raw.ShortSHA(), pc.Raw.URL)
}

// Build groups parsed commits into sections: breaking changes first, then one
// section per type in table order, then (unless strict) the generic commits
// bucket. Input order is kept within every section and empty sections are
// left out. Untyped commits are dropped entirely in strict mode.
func Build(parsed []commits.ParsedCommit, strict bool) *Changelog {
	c := &Changelog{}

	var breaking []string
	for _, pc := range parsed {
		if pc.Breaking {
			breaking = appendEntry(breaking, FormatEntry(pc, false))
		}
	}
	c.add(Section{Kind: KindBreaking, Title: BreakingTitle, Entries: breaking})

	for _, ts := range typeSections {
		var entries []string
		for _, pc := range parsed {
			if pc.Type == ts.Type {
				entries = appendEntry(entries, FormatEntry(pc, false))
			}
		}
		c.add(Section{Kind: KindType, Type: ts.Type, Title: ts.Title, Entries: entries})
	}

	if !strict {
		var generic []string
		for _, pc := range parsed {
			if !pc.HasType() {
				generic = appendEntry(generic, FormatEntry(pc, true))
			}
		}
		c.add(Section{Kind: KindCommits, Title: CommitsTitle, Entries: generic})
	}

	return c
}

func appendEntry(entries []string, entry string) []string {
	if entry == "" {
		return entries
	}
	return append(entries, entry)
}

func (c *Changelog) add(s Section) {
	if len(s.Entries) > 0 {
		c.Sections = append(c.Sections, s)
	}
}

// Markdown returns the changelog as release-body Markdown: each section is
// "## <title>" followed by its entries, sections separated by a blank line,
// surrounding whitespace trimmed.
func (c *Changelog) Markdown() string {
	blocks := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		blocks = append(blocks, "## "+s.Title+"\n"+strings.Join(s.Entries, "\n"))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// Render builds and renders the changelog for parsed in one step.
//
// The function is idempotent - given the same input, it produces identical output.
func Render(parsed []commits.ParsedCommit, strict bool) string {
	return Build(parsed, strict).Markdown()
}

// RenderMarkdown writes the rendered changelog to w.
func RenderMarkdown(w io.Writer, parsed []commits.ParsedCommit, strict bool) error {
	if _, err := io.WriteString(w, Render(parsed, strict)); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}
