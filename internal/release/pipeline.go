package release

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	"github.com/ariel-frischer/autorelease/internal/commits"
	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/semvertag"
)

// Runner wires the pipeline to its collaborators.
// Publisher may be nil when only dry runs are performed.
type Runner struct {
	Source    Source
	Publisher Publisher
	Log       Logger
}

// Run executes the pipeline once. Only invalid input, tag listing failures
// and publish failures are returned as errors; a missing previous tag or a
// failed comparison degrade to a smaller changelog.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	tag, prev, err := r.resolveTags(ctx, opts.Ref)
	if err != nil {
		return nil, err
	}
	res.Tag, res.PreviousTag = tag, prev

	raw := FetchRange(ctx, r.Source, r.Log, prev, opts.SHA)

	parsed, err := r.classify(raw, opts.Filter)
	if err != nil {
		return nil, err
	}
	res.Commits = parsed
	res.Changelog = changelog.Build(parsed, opts.Strict)
	res.Body = res.Changelog.Markdown()

	if opts.DryRun {
		r.Log.Infof("Dry run: skipping release creation for %q", tag)
		return res, nil
	}

	published, err := r.publish(ctx, Request{
		Owner:      opts.Owner,
		Repo:       opts.Repo,
		TagName:    tag,
		Name:       releaseName(opts.Title, tag),
		Body:       res.Body,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, err
	}
	res.Release = published
	return res, nil
}

func (r *Runner) resolveTags(ctx context.Context, ref string) (tag, previous string, err error) {
	r.Log.Group("Determining release tags")
	defer r.Log.EndGroup()

	tag = semvertag.ExtractTagName(ref)
	if tag == "" {
		r.Log.Debugf("Input %q does not appear to be a tag", ref)
		return "", "", clierrors.NotATagEvent(ref)
	}
	if !semvertag.Parse(tag).Valid() {
		return "", "", clierrors.NotSemver(tag)
	}

	names, err := r.Source.ListTags(ctx)
	if err != nil {
		return "", "", clierrors.WrapWithMessage(err, clierrors.Runtime, "listing repository tags")
	}
	for _, name := range names {
		r.Log.Debugf("Currently processing tag %s", name)
	}

	previous, err = semvertag.FindPreviousReleaseTag(tag, names)
	if err != nil {
		return "", "", err
	}
	if previous == "" {
		r.Log.Infof("No release tag precedes %q", tag)
	} else {
		r.Log.Infof("Previous release tag for %q is %q", tag, previous)
	}
	return tag, previous, nil
}

func (r *Runner) classify(raw []commits.RawCommit, filter string) ([]commits.ParsedCommit, error) {
	r.Log.Group("Generating changelog")
	defer r.Log.EndGroup()

	parsed, err := commits.Classify(raw, filter)
	if err != nil {
		return nil, err
	}
	if dropped := len(raw) - len(parsed); dropped > 0 {
		r.Log.Debugf("Filter %q excluded %d commits", filter, dropped)
	}

	for _, pc := range parsed {
		r.Log.Debugf("Parsed commit %s: type=%q scope=%q subject=%q breaking=%t",
			pc.Raw.ShortSHA(), pc.Type, pc.Scope, pc.Subject, pc.Breaking)
		r.Log.Infof("Adding commit %q to the changelog", pc.Header)
	}
	return parsed, nil
}

func (r *Runner) publish(ctx context.Context, req Request) (*Published, error) {
	r.Log.Group(fmt.Sprintf("Generating new GitHub release for the %q tag", req.TagName))
	defer r.Log.EndGroup()

	if r.Publisher == nil {
		return nil, clierrors.NewRuntimeError("no publisher configured")
	}

	r.Log.Infof("Creating new release")
	published, err := r.Publisher.Publish(ctx, req)
	if err != nil {
		return nil, clierrors.PublishFailed(req.TagName, err)
	}
	return published, nil
}

func releaseName(title, tag string) string {
	if title != "" {
		return title
	}
	return tag
}
