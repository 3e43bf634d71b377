// Package release runs the tag-to-release pipeline: resolve the previous
// release tag, fetch the commits since it, classify them, render the
// changelog and publish the release.
package release

import (
	"context"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	"github.com/ariel-frischer/autorelease/internal/commits"
)

// Source is the read side of the hosting platform (or a local clone).
type Source interface {
	// ListTags returns every tag name of the repository, all pages consumed.
	ListTags(ctx context.Context) ([]string, error)
	// ResolveRef resolves a ref such as "tags/v1.2.3" to a commit SHA.
	ResolveRef(ctx context.Context, ref string) (string, error)
	// DefaultBranch returns the name of the repository's default branch.
	DefaultBranch(ctx context.Context) (string, error)
	// Compare returns the commits reachable from head but not from base,
	// oldest first.
	Compare(ctx context.Context, base, head string) ([]commits.RawCommit, error)
}

// Publisher creates releases.
type Publisher interface {
	Publish(ctx context.Context, req Request) (*Published, error)
}

// Logger receives progress output. *githubactions.Action satisfies it, as
// does the terminal logger of the cli package.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Group(title string)
	EndGroup()
}

// Request describes the release to create.
type Request struct {
	Owner      string
	Repo       string
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// Published is the handle of a created release.
type Published struct {
	ID      int64
	HTMLURL string
	// UploadURL is the asset upload target (a URI template).
	UploadURL string
}

// Options are the per-run inputs of the pipeline.
type Options struct {
	Owner string
	Repo  string
	// Ref is the trigger ref, expected to look like refs/tags/<name>.
	Ref string
	// SHA is the commit the release points at.
	SHA string
	// Title is the release display name; the tag name when empty.
	Title      string
	Draft      bool
	Prerelease bool
	// Filter is a regular expression commits must match to be listed.
	Filter string
	// Strict drops commits without a recognized type.
	Strict bool
	// DryRun stops before publishing.
	DryRun bool
}

// Result is everything a run produced.
type Result struct {
	Tag         string
	PreviousTag string
	Commits     []commits.ParsedCommit
	Changelog   *changelog.Changelog
	Body        string
	// Release is nil for dry runs.
	Release *Published
}

// UploadURL returns the upload target of the created release, or "".
func (r *Result) UploadURL() string {
	if r.Release == nil {
		return ""
	}
	return r.Release.UploadURL
}
