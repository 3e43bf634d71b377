// Package config tests validation of loaded configuration.
// Related: internal/config/validate.go
// Tags: config, validation, yaml

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

func validConfig() *Configuration {
	return &Configuration{
		RepoToken: "ghs_abc",
		GitHub: GitHubContext{
			Ref:        "refs/tags/v1.0.0",
			SHA:        "cafef00d",
			Repository: "octo/repo",
			APIURL:     "https://api.github.com",
			ServerURL:  "https://github.com",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate       func(*Configuration)
		mode         Mode
		wantCategory clierrors.ErrorCategory
		wantMsg      string
	}{
		"valid release": {
			mode: ModeRelease,
		},
		"missing token for release": {
			mutate:       func(c *Configuration) { c.RepoToken = "" },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "input required and not supplied: repo_token",
		},
		"missing ref for release": {
			mutate:       func(c *Configuration) { c.GitHub.Ref = "" },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "trigger context not supplied: github.ref",
		},
		"missing sha for release": {
			mutate:       func(c *Configuration) { c.GitHub.SHA = "" },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "trigger context not supplied: github.sha",
		},
		"sha optional for preview": {
			mutate: func(c *Configuration) { c.GitHub.SHA = "" },
			mode:   ModePreview,
		},
		"token optional for preview": {
			mutate: func(c *Configuration) { c.RepoToken = "" },
			mode:   ModePreview,
		},
		"missing repository": {
			mutate:       func(c *Configuration) { c.GitHub.Repository = "" },
			mode:         ModePreview,
			wantCategory: clierrors.Configuration,
			wantMsg:      "repository is not set",
		},
		"repository optional for local preview": {
			mutate: func(c *Configuration) { c.GitHub.Repository = ""; c.RepoToken = "" },
			mode:   ModePreviewLocal,
		},
		"malformed repository": {
			mutate:       func(c *Configuration) { c.GitHub.Repository = "octo" },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "field 'github.repository': must be owner/repo",
		},
		"relative API URL": {
			mutate:       func(c *Configuration) { c.GitHub.APIURL = "api/v3" },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "field 'github.api_url'",
		},
		"negative timeout": {
			mutate:       func(c *Configuration) { c.Timeout = -time.Second },
			mode:         ModeRelease,
			wantCategory: clierrors.Configuration,
			wantMsg:      "field 'timeout'",
		},
		"invalid filter": {
			mutate:       func(c *Configuration) { c.Filter = "feat(" },
			mode:         ModeRelease,
			wantCategory: clierrors.InvalidInput,
			wantMsg:      "invalid filter pattern",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err := Validate(cfg, tt.mode)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, clierrors.IsCategory(err, tt.wantCategory), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_RequiredKeysEnforced(t *testing.T) {
	t.Parallel()

	clearKey := map[string]func(*Configuration){
		"repo_token":        func(c *Configuration) { c.RepoToken = "" },
		"github.ref":        func(c *Configuration) { c.GitHub.Ref = "" },
		"github.sha":        func(c *Configuration) { c.GitHub.SHA = "" },
		"github.repository": func(c *Configuration) { c.GitHub.Repository = "" },
	}

	var required []string
	for _, key := range SortedKeys() {
		if KnownKeys[key].Required {
			required = append(required, key)
		}
	}
	require.Len(t, required, len(clearKey), "required keys: %v", required)

	for _, key := range required {
		key := key
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			mutate, ok := clearKey[key]
			require.True(t, ok, "no mutator for required key %s", key)

			cfg := validConfig()
			mutate(cfg)
			err := Validate(cfg, ModeRelease)
			require.Error(t, err)
			assert.True(t, clierrors.IsCategory(err, clierrors.Configuration), "got %v", err)
		})
	}
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  string
		wantErr  bool
		wantLine int
	}{
		"valid":      {content: "title: x\ndraft: true\n"},
		"whitespace": {content: "  \n\n"},
		"bad indent": {content: "title: x\n  draft: true\n", wantErr: true, wantLine: 2},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "c.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, path, vErr.FilePath)
			assert.Equal(t, tt.wantLine, vErr.Line)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c.yml:3:5: bad", (&ValidationError{FilePath: "c.yml", Line: 3, Column: 5, Message: "bad"}).Error())
	assert.Equal(t, "config: field 'timeout': bad", (&ValidationError{FilePath: "config", Field: "timeout", Message: "bad"}).Error())
	assert.Equal(t, "c.yml: bad", (&ValidationError{FilePath: "c.yml", Message: "bad"}).Error())
}

func TestExtractLineColumn(t *testing.T) {
	t.Parallel()

	line, col := extractLineColumn("yaml: line 5: could not find expected ':'")
	assert.Equal(t, 5, line)
	assert.Equal(t, 1, col)

	line, col = extractLineColumn("something else")
	assert.Zero(t, line)
	assert.Zero(t, col)
}
