package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v52/github"

	"github.com/ariel-frischer/autorelease/internal/release"
)

// Publish creates the release described by req. Owner and Repo default to
// the client's repository when empty.
func (c *Client) Publish(ctx context.Context, req release.Request) (*release.Published, error) {
	owner, repo := req.Owner, req.Repo
	if owner == "" || repo == "" {
		owner, repo = c.owner, c.repo
	}

	created, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, &gh.RepositoryRelease{
		TagName:    gh.String(req.TagName),
		Name:       gh.String(req.Name),
		Body:       gh.String(req.Body),
		Draft:      gh.Bool(req.Draft),
		Prerelease: gh.Bool(req.Prerelease),
	})
	if err != nil {
		return nil, fmt.Errorf("creating release %s in %s/%s: %w", req.TagName, owner, repo, err)
	}

	logDebug("[github] created release %d (%s)", created.GetID(), created.GetHTMLURL())
	return &release.Published{
		ID:        created.GetID(),
		HTMLURL:   created.GetHTMLURL(),
		UploadURL: created.GetUploadURL(),
	}, nil
}

var (
	_ release.Source    = (*Client)(nil)
	_ release.Publisher = (*Client)(nil)
)
