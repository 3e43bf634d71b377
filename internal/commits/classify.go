package commits

import (
	"regexp"

	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// CompileFilter compiles a user-supplied commit filter. Matching is
// case-insensitive and multiline; an empty pattern matches every message.
func CompileFilter(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?im)" + pattern)
	if err != nil {
		return nil, clierrors.InvalidFilter(pattern, err)
	}
	return re, nil
}

// Filter returns the commits whose message matches re, preserving order.
func Filter(raw []RawCommit, re *regexp.Regexp) []RawCommit {
	kept := make([]RawCommit, 0, len(raw))
	for _, c := range raw {
		if re.MatchString(c.Message) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Classify drops the commits whose message does not match filter and parses
// the rest, one ParsedCommit per surviving commit, in input order.
func Classify(raw []RawCommit, filter string) ([]ParsedCommit, error) {
	re, err := CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	kept := Filter(raw, re)
	parsed := make([]ParsedCommit, 0, len(kept))
	for _, c := range kept {
		parsed = append(parsed, ParseCommit(c))
	}
	return parsed, nil
}
