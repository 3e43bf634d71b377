package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the autorelease CLI.
// These templates keep messages consistent between the release and preview commands.

// NotATagEvent creates an error for a trigger ref that does not point at a tag.
func NotATagEvent(ref string) *CLIError {
	return NewInputError(
		fmt.Sprintf("This does not appear to be a GitHub tag event. (Event: %s)", ref),
		"Trigger the workflow on tag pushes: on: { push: { tags: ['v*'] } }",
		"Or pass the tag explicitly: autorelease release --ref refs/tags/v1.2.3",
	)
}

// NotSemver creates an error for a current tag that is not a semantic version.
func NotSemver(tag string) *CLIError {
	return NewInputError(
		fmt.Sprintf("The current tag %q does not appear to conform to semantic versioning.", tag),
		"Use tags of the form v1.2.3 or 1.2.3-rc.1",
	)
}

// InvalidFilter creates an error for a filter input that is not a valid regular expression.
func InvalidFilter(pattern string, err error) *CLIError {
	return &CLIError{
		Category: InvalidInput,
		Message:  fmt.Sprintf("invalid filter pattern %q: %v", pattern, err),
		Remediation: []string{
			"The filter uses RE2 syntax (https://github.com/google/re2/wiki/Syntax)",
			"Leave the filter input empty to include every commit",
		},
		Err: err,
	}
}

// MissingInput creates an error for a required input that has no value.
func MissingInput(name string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("input required and not supplied: %s", name),
		fmt.Sprintf("Set '%s' in the step's 'with:' block", name),
		fmt.Sprintf("Or export INPUT_%s", strings.ToUpper(name)),
	)
}

// MissingTriggerContext creates an error for a trigger context value the
// release command cannot run without.
func MissingTriggerContext(key, env, flag string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("trigger context not supplied: %s", key),
		fmt.Sprintf("Run on a tag push inside GitHub Actions, or export %s", env),
		fmt.Sprintf("Or pass it explicitly: autorelease release --%s <value>", flag),
	)
}

// PublishFailed wraps a release creation failure.
func PublishFailed(tag string, err error) *CLIError {
	return WrapWithMessage(err, Publish,
		fmt.Sprintf("creating release for tag %q", tag),
		"Check that repo_token has 'contents: write' permission",
		"Check that a release for this tag does not already exist",
	)
}
