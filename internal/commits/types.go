package commits

import (
	"strings"
	"time"
)

// Type is a recognized conventional-commit type.
// The zero value, TypeNone, marks commits whose header does not carry one.
type Type string

const (
	TypeNone     Type = ""
	TypeFeat     Type = "feat"
	TypeFix      Type = "fix"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeBuild    Type = "build"
	TypeCI       Type = "ci"
	TypeChore    Type = "chore"
	TypeRevert   Type = "revert"
)

// KnownTypes lists the recognized types in changelog order.
func KnownTypes() []Type {
	return []Type{
		TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypePerf,
		TypeTest, TypeBuild, TypeCI, TypeChore, TypeRevert,
	}
}

// NormalizeType maps a raw header type onto a recognized Type.
// Matching is case-insensitive; anything unrecognized yields TypeNone.
func NormalizeType(raw string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownTypes() {
		if t == known {
			return t
		}
	}
	return TypeNone
}

// RawCommit is a commit as supplied by the hosting platform or a local clone.
type RawCommit struct {
	SHA         string
	Message     string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	// URL is the commit's web page; empty when unknown.
	URL string
}

// ShortSHA returns the seven-character abbreviation of the commit SHA.
func (c RawCommit) ShortSHA() string {
	const abbrev = 7
	if len(c.SHA) <= abbrev {
		return c.SHA
	}
	return c.SHA[:abbrev]
}

// MergeInfo holds the parts of a "Merge pull request #<id> from <source>" line.
type MergeInfo struct {
	IssueID string
	Source  string
}

// RevertInfo holds the parts of a revert message.
type RevertInfo struct {
	Header string
	Hash   string
}

// Note is a footer note such as "BREAKING CHANGE: <text>".
type Note struct {
	Title string
	Text  string
}

// ParsedCommit is the structured form of one commit message.
type ParsedCommit struct {
	// Type is the normalized type; TypeNone when unrecognized.
	Type Type
	// RawType is the type text as written in the header, if the header parsed.
	RawType string
	Scope   string
	Subject string
	// Header is the line the type/scope/subject were read from.
	Header string
	Body   string
	Footer string
	Merge  *MergeInfo
	Revert *RevertInfo
	Notes  []Note
	// Breaking is set when Body or Footer has a line starting with a
	// BREAKING CHANGE(S) marker.
	Breaking bool
	Raw      RawCommit
}

// HasType reports whether the commit carries a recognized type.
func (p ParsedCommit) HasType() bool {
	return p.Type != TypeNone
}
