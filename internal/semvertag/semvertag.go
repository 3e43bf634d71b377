// Package semvertag resolves release tags: it extracts tag names from git
// refs and finds the nearest earlier semantic-version tag for a release.
package semvertag

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

var tagRefPattern = regexp.MustCompile(`^(refs/)?tags/(.*)$`)

// Tag is a tag name paired with its parsed semantic version.
// Version is nil when the name is not a valid semantic version.
type Tag struct {
	Name    string
	Version *semver.Version
}

// Valid reports whether the tag carries a semantic version.
func (t Tag) Valid() bool {
	return t.Version != nil
}

// ExtractTagName returns the tag name from refs shaped like
// refs/tags/<name> or tags/<name>. Any other ref yields "".
func ExtractTagName(ref string) string {
	m := tagRefPattern.FindStringSubmatch(ref)
	if m == nil || m[2] == "" {
		return ""
	}
	return m[2]
}

// Parse parses name as a strict MAJOR.MINOR.PATCH semantic version with
// optional prerelease and build metadata. A single leading "v" (optionally
// preceded by "=") is accepted; partial versions such as "1.2" are not.
func Parse(name string) Tag {
	v, err := semver.StrictNewVersion(normalize(name))
	if err != nil {
		return Tag{Name: name}
	}
	return Tag{Name: name, Version: v}
}

func normalize(name string) string {
	s := strings.TrimSpace(name)
	s = strings.TrimPrefix(s, "=")
	return strings.TrimPrefix(s, "v")
}

// SortDescending returns the valid tags of names ordered by descending
// semver precedence. Invalid names are dropped. Tags of equal precedence
// (e.g. differing only in build metadata) keep their input order.
func SortDescending(names []string) []Tag {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		if t := Parse(name); t.Valid() {
			tags = append(tags, t)
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Version.GreaterThan(tags[j].Version)
	})
	return tags
}

// FindPreviousReleaseTag returns the name of the highest tag in all whose
// version is strictly lower than current, or "" when there is none.
// It fails with an InvalidInput error when current is not a semantic version.
func FindPreviousReleaseTag(current string, all []string) (string, error) {
	cur := Parse(current)
	if !cur.Valid() {
		return "", clierrors.NotSemver(current)
	}

	for _, t := range SortDescending(all) {
		if t.Version.LessThan(cur.Version) {
			return t.Name, nil
		}
	}
	return "", nil
}
