package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/autorelease/internal/commits"
)

type fakeSource struct {
	tags          []string
	tagsErr       error
	refs          map[string]string
	defaultBranch string
	branchErr     error
	commits       []commits.RawCommit
	compareErr    error

	compared [][2]string
}

func (f *fakeSource) ListTags(context.Context) ([]string, error) {
	return f.tags, f.tagsErr
}

func (f *fakeSource) ResolveRef(_ context.Context, ref string) (string, error) {
	if sha, ok := f.refs[ref]; ok {
		return sha, nil
	}
	return "", errors.New("Not Found")
}

func (f *fakeSource) DefaultBranch(context.Context) (string, error) {
	return f.defaultBranch, f.branchErr
}

func (f *fakeSource) Compare(_ context.Context, base, head string) ([]commits.RawCommit, error) {
	f.compared = append(f.compared, [2]string{base, head})
	if f.compareErr != nil {
		return nil, f.compareErr
	}
	return f.commits, nil
}

type fakePublisher struct {
	err      error
	requests []Request
}

func (f *fakePublisher) Publish(_ context.Context, req Request) (*Published, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &Published{ID: 7, UploadURL: "https://uploads.example.test/releases/7/assets{?name,label}"}, nil
}

// recordingLogger keeps every line with its level so tests can assert on them.
type recordingLogger struct {
	lines  []string
	groups int
}

func (l *recordingLogger) add(level, format string, args ...any) {
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any)   { l.add("debug", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)    { l.add("info", format, args...) }
func (l *recordingLogger) Warningf(format string, args ...any) { l.add("warning", format, args...) }
func (l *recordingLogger) Group(title string)                  { l.groups++; l.add("group", "%s", title) }
func (l *recordingLogger) EndGroup()                           { l.groups-- }

func (l *recordingLogger) has(level, substr string) bool {
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+": ") && strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
