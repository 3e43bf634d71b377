package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v52/github"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

// ListTags returns every tag name of the repository, following pagination
// until the last page.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	opts := &gh.ListOptions{PerPage: perPage}
	var names []string
	for {
		tags, resp, err := c.gh.Repositories.ListTags(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags of %s/%s: %w", c.owner, c.repo, err)
		}
		for _, t := range tags {
			names = append(names, t.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	logDebug("[github] %d tags in %s/%s", len(names), c.owner, c.repo)
	return names, nil
}

// ResolveRef resolves a ref such as "tags/v1.2.3" to the SHA it points at.
func (c *Client) ResolveRef(ctx context.Context, ref string) (string, error) {
	r, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, ref)
	if err != nil {
		return "", fmt.Errorf("getting ref %s: %w", ref, err)
	}
	return r.GetObject().GetSHA(), nil
}

// DefaultBranch returns the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return "", fmt.Errorf("getting repository %s/%s: %w", c.owner, c.repo, err)
	}
	if repo.GetDefaultBranch() == "" {
		return "", fmt.Errorf("repository %s/%s reports no default branch", c.owner, c.repo)
	}
	return repo.GetDefaultBranch(), nil
}

// Compare returns the commits reachable from head but not from base, oldest
// first, across all pages of the comparison.
func (c *Client) Compare(ctx context.Context, base, head string) ([]commits.RawCommit, error) {
	opts := &gh.ListOptions{PerPage: perPage}
	var out []commits.RawCommit
	for {
		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("comparing %s...%s: %w", base, head, err)
		}
		for _, rc := range cmp.Commits {
			out = append(out, toRawCommit(rc))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	logDebug("[github] %d commits in %s...%s", len(out), base, head)
	return out, nil
}

func toRawCommit(rc *gh.RepositoryCommit) commits.RawCommit {
	author := rc.GetCommit().GetAuthor()
	return commits.RawCommit{
		SHA:         rc.GetSHA(),
		Message:     rc.GetCommit().GetMessage(),
		AuthorName:  author.GetName(),
		AuthorEmail: author.GetEmail(),
		Date:        author.GetDate().Time,
		URL:         rc.GetHTMLURL(),
	}
}
