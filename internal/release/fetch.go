package release

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

// headFallback is the base used when neither the previous tag nor the
// default branch can be resolved.
const headFallback = "HEAD"

// LookupError records that the previous release tag could not be resolved.
// It is logged and the default branch is used as base instead.
type LookupError struct {
	Ref string
	Err error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no previous release tag to resolve for %q", e.Ref)
	}
	return fmt.Sprintf("could not find SHA corresponding to %q: %v", e.Ref, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// RangeError records a failed commit comparison. The range is then empty.
type RangeError struct {
	Base string
	Head string
	Err  error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("could not find any commits between %s and %s: %v", e.Base, e.Head, e.Err)
}

func (e *RangeError) Unwrap() error { return e.Err }

// FetchRange returns the commits between the previous release and head,
// oldest first. A missing previous tag switches the base to the default
// branch and a failed comparison yields no commits; neither is an error.
func FetchRange(ctx context.Context, src Source, log Logger, previousTag, head string) []commits.RawCommit {
	log.Group("Retrieving commit history")
	defer log.EndGroup()

	log.Infof("Determining state of the previous release")
	base, lookupErr := resolveBase(ctx, src, previousTag)
	if lookupErr != nil {
		log.Infof("%v. Assuming this is the first release.", lookupErr)
		base = defaultBase(ctx, src, log)
	}

	log.Infof("Retrieving commits between %s and %s", base, head)
	raw, err := src.Compare(ctx, base, head)
	if err != nil {
		log.Warningf("%v", &RangeError{Base: base, Head: head, Err: err})
		raw = nil
	} else {
		log.Infof("Successfully retrieved %d commits between %s and %s", len(raw), base, head)
	}

	return raw
}

// resolveBase checks that the previous release tag exists on the source and
// returns its name as comparison base.
func resolveBase(ctx context.Context, src Source, previousTag string) (string, *LookupError) {
	ref := "tags/" + previousTag
	if previousTag == "" {
		return "", &LookupError{Ref: ref}
	}
	if _, err := src.ResolveRef(ctx, ref); err != nil {
		return "", &LookupError{Ref: ref, Err: err}
	}
	return previousTag, nil
}

func defaultBase(ctx context.Context, src Source, log Logger) string {
	branch, err := src.DefaultBranch(ctx)
	if err != nil || branch == "" {
		log.Debugf("Default branch lookup failed (%v), comparing against %s", err, headFallback)
		return headFallback
	}
	return branch
}
