// Package changelog tests section grouping, entry formatting and Markdown output.
// Related: internal/changelog/render.go, internal/changelog/types.go
// Tags: changelog, render, markdown

package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

const commitURL = "https://github.com/octo/repo/commit/"

func parsed(sha, message string) commits.ParsedCommit {
	return commits.ParseCommit(commits.RawCommit{SHA: sha, Message: message, URL: commitURL + sha})
}

func TestRender_FeatureAndFix(t *testing.T) {
	t.Parallel()

	input := []commits.ParsedCommit{
		parsed("abcdef1234", "feat(api): add endpoint"),
		parsed("1234567890", "fix: correct typo"),
	}

	want := "## Features\n" +
		"- **api**: add endpoint ([abcdef1](" + commitURL + "abcdef1234))\n" +
		"\n" +
		"## Bug Fixes\n" +
		"- correct typo ([1234567](" + commitURL + "1234567890))"

	assert.Equal(t, want, Render(input, false))
}

func TestRender_SectionOrder(t *testing.T) {
	t.Parallel()

	input := []commits.ParsedCommit{
		parsed("0000000001", "revert: undo"),
		parsed("0000000002", "Update README"),
		parsed("0000000003", "chore: tidy"),
		parsed("0000000004", "ci: cache"),
		parsed("0000000005", "build: go 1.25"),
		parsed("0000000006", "test: more cases"),
		parsed("0000000007", "perf: faster"),
		parsed("0000000008", "refactor: split"),
		parsed("0000000009", "style: gofmt"),
		parsed("0000000010", "docs: usage"),
		parsed("0000000011", "fix: bug"),
		parsed("0000000012", "feat: thing\n\nBREAKING CHANGE: removed flag"),
	}

	out := Render(input, false)

	titles := []string{
		"## Breaking Changes", "## Features", "## Bug Fixes", "## Documentation",
		"## Styles", "## Code Refactoring", "## Performance Improvements", "## Tests",
		"## Builds", "## Continuous Integration", "## Chores", "## Reverts", "## Commits",
	}
	last := -1
	for _, title := range titles {
		idx := strings.Index(out, title+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing %s", title)
		assert.Greater(t, idx, last, "%s out of order", title)
		last = idx
	}
}

func TestRender_BreakingAppearsInBothSections(t *testing.T) {
	t.Parallel()

	input := []commits.ParsedCommit{
		parsed("aaaaaaa111", "feat(core): new api\n\nBREAKING CHANGE: old api removed"),
		parsed("bbbbbbb222", "Rewrite everything\n\nBREAKING CHANGE: all of it"),
	}

	c := Build(input, false)
	require.Len(t, c.Sections, 3)

	assert.Equal(t, KindBreaking, c.Sections[0].Kind)
	assert.Equal(t, []string{
		"- **core**: new api ([aaaaaaa](" + commitURL + "aaaaaaa111))",
	}, c.Sections[0].Entries, "untyped breaking commits have no entry outside the generic bucket")

	assert.Equal(t, "Features", c.Sections[1].Title)
	assert.Equal(t, c.Sections[0].Entries, c.Sections[1].Entries)

	assert.Equal(t, CommitsTitle, c.Sections[2].Title)
	assert.Equal(t, []string{
		"- Rewrite everything ([bbbbbbb](" + commitURL + "bbbbbbb222))",
	}, c.Sections[2].Entries)
}

func TestRender_StrictMode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input []commits.ParsedCommit
	}{
		"free form message": {
			input: []commits.ParsedCommit{parsed("1111111111", "fix: a"), parsed("2222222222", "Update deps")},
		},
		"unknown type": {
			input: []commits.ParsedCommit{parsed("3333333333", "feature: b")},
		},
		"merge without conventional title": {
			input: []commits.ParsedCommit{parsed("4444444444", "Merge pull request #9 from octo/x\n\nBump version")},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.NotContains(t, Render(tt.input, true), "## Commits")
			assert.Contains(t, Render(tt.input, false), "## Commits")
		})
	}
}

func TestRender_GenericEntryUsesHeader(t *testing.T) {
	t.Parallel()

	out := Render([]commits.ParsedCommit{
		parsed("cafebabe00", "Update README.md"),
		parsed("deadbeef00", "feature(cli): add flag"),
	}, false)

	assert.Equal(t, "## Commits\n"+
		"- Update README.md ([cafebab]("+commitURL+"cafebabe00))\n"+
		"- **cli**: add flag ([deadbee]("+commitURL+"deadbeef00))", out)
}

func TestRender_MergeCommits(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    string
	}{
		"merge without title": {
			message: "Merge pull request #12 from octo/feature",
			want:    "## Commits\n- Merge pull request #12 from octo/feature ([abcdef1](" + commitURL + "abcdef1234))",
		},
		"merge with conventional title": {
			message: "Merge pull request #12 from octo/feature\n\nfeat(api): add endpoint",
			want:    "## Features\n- **api**: add endpoint ([abcdef1](" + commitURL + "abcdef1234))",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := Render([]commits.ParsedCommit{parsed("abcdef1234", tt.message)}, false)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Render(nil, false))
	assert.Equal(t, "", Render([]commits.ParsedCommit{parsed("1111111111", "Update deps")}, true))
	assert.True(t, Build(nil, true).IsEmpty())
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	input := []commits.ParsedCommit{
		parsed("abcdef1234", "feat(api): add endpoint\n\nBREAKING CHANGE: v2 only"),
		parsed("1234567890", "fix: correct typo"),
		parsed("0987654321", "Update README"),
		parsed("1029384756", "docs(readme): badges"),
	}

	first := Render(input, false)
	second := Render(input, false)
	assert.Equal(t, first, second)

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, input, false))
	assert.Equal(t, first, buf.String())
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		generic bool
		want    string
	}{
		"scope": {
			message: "feat(api): add endpoint",
			want:    "- **api**: add endpoint ([abcdef1](" + commitURL + "abcdef1234))",
		},
		"no scope": {
			message: "fix: typo",
			want:    "- typo ([abcdef1](" + commitURL + "abcdef1234))",
		},
		"untyped outside generic bucket": {
			message: "Update README",
			want:    "",
		},
		"untyped inside generic bucket": {
			message: "Update README",
			generic: true,
			want:    "- Update README ([abcdef1](" + commitURL + "abcdef1234))",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatEntry(parsed("abcdef1234", tt.message), tt.generic))
		})
	}
}

func TestChangelogCount(t *testing.T) {
	t.Parallel()

	c := Build([]commits.ParsedCommit{
		parsed("abcdef1234", "feat: x\n\nBREAKING CHANGE: y"),
		parsed("1234567890", "fix: z"),
	}, false)
	assert.Equal(t, 3, c.Count())
}

func TestTypeSections(t *testing.T) {
	t.Parallel()

	sections := TypeSections()
	require.Len(t, sections, len(commits.KnownTypes()))
	for i, typ := range commits.KnownTypes() {
		assert.Equal(t, typ, sections[i].Type)
	}

	sections[0].Title = "changed"
	assert.Equal(t, "Features", TypeSections()[0].Title)
}
