// Package actions adapts a run to the GitHub Actions runner: workflow
// commands for logging, step outputs, exported environment and the failure
// annotation.
package actions

import (
	"github.com/sethvargo/go-githubactions"

	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/release"
)

// Names of the values handed to later workflow steps.
const (
	EnvReleaseTag    = "AUTOMATIC_RELEASES_TAG"
	OutputReleaseTag = "automatic_releases_tag"
	OutputUploadURL  = "upload_url"
)

// Reporter writes workflow commands through a githubactions.Action.
type Reporter struct {
	action *githubactions.Action
}

// New wraps action; nil uses a default action bound to stdout and the
// process environment.
func New(action *githubactions.Action) *Reporter {
	if action == nil {
		action = githubactions.New()
	}
	return &Reporter{action: action}
}

// Running reports whether the process runs inside a GitHub Actions job.
func Running(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

// Logger returns the action itself; workflow commands map one to one onto
// the pipeline's log levels and groups.
func (r *Reporter) Logger() release.Logger {
	return r.action
}

// Mask hides secret from all subsequent log output of the job.
func (r *Reporter) Mask(secret string) {
	if secret != "" {
		r.action.AddMask(secret)
	}
}

// Report exports the tag for later steps and sets the step outputs.
// The upload URL output is empty when no release was created.
func (r *Reporter) Report(res *release.Result) {
	if res == nil {
		return
	}
	r.action.SetEnv(EnvReleaseTag, res.Tag)
	r.action.SetOutput(OutputReleaseTag, res.Tag)
	r.action.SetOutput(OutputUploadURL, res.UploadURL())
}

// Fail emits an error annotation carrying err's message, followed by one
// notice per remediation hint. The caller decides the exit code.
func (r *Reporter) Fail(err error) {
	if err == nil {
		return
	}
	r.action.Errorf("%s", err.Error())
	for _, hint := range clierrors.RemediationOf(err) {
		r.action.Noticef("%s", hint)
	}
}
