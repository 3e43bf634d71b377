// Package release tests the commit range fetcher and its fallbacks.
// Related: internal/release/fetch.go
// Tags: release, fetch, compare, fallback

package release

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

func TestFetchRange(t *testing.T) {
	t.Parallel()

	someCommits := []commits.RawCommit{{SHA: "1111111111", Message: "feat: a"}, {SHA: "2222222222", Message: "fix: b"}}

	tests := map[string]struct {
		src         *fakeSource
		previousTag string
		wantBase    string
		wantCommits []commits.RawCommit
		wantInfo    string
		wantWarning string
	}{
		"previous tag resolves": {
			src:         &fakeSource{refs: map[string]string{"tags/v1.0.0": "aaa"}, commits: someCommits},
			previousTag: "v1.0.0",
			wantBase:    "v1.0.0",
			wantCommits: someCommits,
			wantInfo:    "Successfully retrieved 2 commits",
		},
		"missing previous tag falls back to default branch": {
			src:         &fakeSource{defaultBranch: "main", commits: someCommits},
			previousTag: "v1.0.0",
			wantBase:    "main",
			wantCommits: someCommits,
			wantInfo:    "Assuming this is the first release",
		},
		"first release without previous tag": {
			src:         &fakeSource{defaultBranch: "trunk"},
			previousTag: "",
			wantBase:    "trunk",
			wantCommits: nil,
			wantInfo:    "Assuming this is the first release",
		},
		"default branch lookup failure uses HEAD": {
			src:         &fakeSource{branchErr: errors.New("boom")},
			previousTag: "",
			wantBase:    "HEAD",
			wantInfo:    "Assuming this is the first release",
		},
		"compare failure yields empty range": {
			src: &fakeSource{
				refs:       map[string]string{"tags/v1.0.0": "aaa"},
				commits:    someCommits,
				compareErr: errors.New("No common ancestor"),
			},
			previousTag: "v1.0.0",
			wantBase:    "v1.0.0",
			wantCommits: nil,
			wantWarning: "could not find any commits between v1.0.0 and deadbeef",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			log := &recordingLogger{}

			got := FetchRange(context.Background(), tt.src, log, tt.previousTag, "deadbeef")

			assert.Equal(t, tt.wantCommits, got)
			require.Len(t, tt.src.compared, 1)
			assert.Equal(t, [2]string{tt.wantBase, "deadbeef"}, tt.src.compared[0])
			if tt.wantInfo != "" {
				assert.True(t, log.has("info", tt.wantInfo), "lines: %v", log.lines)
			}
			if tt.wantWarning != "" {
				assert.True(t, log.has("warning", tt.wantWarning), "lines: %v", log.lines)
			} else {
				assert.False(t, log.has("warning", ""), "unexpected warning: %v", log.lines)
			}
			assert.Zero(t, log.groups, "groups must be closed")
		})
	}
}

func TestLookupError(t *testing.T) {
	t.Parallel()

	cause := errors.New("Not Found")
	err := &LookupError{Ref: "tags/v1.0.0", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tags/v1.0.0")

	assert.Contains(t, (&LookupError{Ref: "tags/"}).Error(), "no previous release tag")
}

func TestRangeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("rate limited")
	err := &RangeError{Base: "v1", Head: "abc", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not find any commits between v1 and abc: rate limited", err.Error())
}
