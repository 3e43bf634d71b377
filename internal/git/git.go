// Package git reads release history from a local clone with go-git, so a
// changelog can be previewed without API access. Local implements the same
// Source contract as the GitHub client.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/autorelease/internal/commits"
	"github.com/ariel-frischer/autorelease/internal/release"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// Local is a release source backed by a local clone.
type Local struct {
	repo *git.Repository
	// commitURL prefixes commit SHAs to build links; links are empty when unset.
	commitURL string
}

// Open opens the clone containing path ("" for the working directory).
// commitURL is the web prefix for commit links, for example
// https://github.com/octo/repo/commit.
func Open(path, commitURL string) (*Local, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return &Local{repo: repo, commitURL: strings.TrimSuffix(commitURL, "/")}, nil
}

// ListTags returns every tag name in the clone.
func (l *Local) ListTags(ctx context.Context) ([]string, error) {
	iter, err := l.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	logDebug("[git] ListTags: %d tags", len(names))
	return names, nil
}

// ResolveRef resolves a ref such as "tags/v1.2.3" to the commit it points at.
// Annotated tags are peeled to their commit.
func (l *Local) ResolveRef(_ context.Context, ref string) (string, error) {
	name := plumbing.ReferenceName("refs/" + strings.TrimPrefix(ref, "refs/"))
	r, err := l.repo.Reference(name, true)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	c, err := l.peel(r.Hash())
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return c.Hash.String(), nil
}

// DefaultBranch returns the branch origin/HEAD points at, or the checked out
// branch when the clone has no remote HEAD.
func (l *Local) DefaultBranch(_ context.Context) (string, error) {
	if r, err := l.repo.Reference(plumbing.NewRemoteHEADReferenceName("origin"), false); err == nil && r.Type() == plumbing.SymbolicReference {
		branch := strings.TrimPrefix(r.Target().Short(), "origin/")
		logDebug("[git] DefaultBranch: %s (origin/HEAD)", branch)
		return branch, nil
	}

	head, err := l.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached and origin/HEAD is not set")
	}
	logDebug("[git] DefaultBranch: %s (HEAD)", head.Name().Short())
	return head.Name().Short(), nil
}

// Compare returns the commits reachable from head but not from base, oldest
// first by committer time.
func (l *Local) Compare(ctx context.Context, base, head string) ([]commits.RawCommit, error) {
	baseCommit, err := l.resolveRevision(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := l.resolveRevision(head)
	if err != nil {
		return nil, err
	}

	seen, err := l.ancestors(ctx, baseCommit.Hash)
	if err != nil {
		return nil, err
	}

	iter, err := l.repo.Log(&git.LogOptions{From: headCommit.Hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", head, err)
	}
	defer iter.Close()

	var newestFirst []commits.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := seen[c.Hash]; ok {
			return nil
		}
		newestFirst = append(newestFirst, l.toRawCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", head, err)
	}

	out := make([]commits.RawCommit, len(newestFirst))
	for i, c := range newestFirst {
		out[len(newestFirst)-1-i] = c
	}
	logDebug("[git] Compare %s...%s: %d commits", base, head, len(out))
	return out, nil
}

func (l *Local) ancestors(ctx context.Context, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := l.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", from, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", from, err)
	}
	return seen, nil
}

func (l *Local) resolveRevision(rev string) (*object.Commit, error) {
	h, err := l.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	c, err := l.peel(*h)
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return c, nil
}

// peel returns the commit h names, following an annotated tag if needed.
func (l *Local) peel(h plumbing.Hash) (*object.Commit, error) {
	if c, err := l.repo.CommitObject(h); err == nil {
		return c, nil
	}
	tag, err := l.repo.TagObject(h)
	if err != nil {
		return nil, fmt.Errorf("object %s is neither a commit nor a tag: %w", h, err)
	}
	return tag.Commit()
}

func (l *Local) toRawCommit(c *object.Commit) commits.RawCommit {
	sha := c.Hash.String()
	url := ""
	if l.commitURL != "" {
		url = l.commitURL + "/" + sha
	}
	return commits.RawCommit{
		SHA:         sha,
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		Date:        c.Author.When,
		URL:         url,
	}
}

var _ release.Source = (*Local)(nil)
