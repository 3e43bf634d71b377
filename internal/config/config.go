// Package config provides layered configuration for autorelease using koanf.
// Values are loaded with priority: command flags > GITHUB_* trigger context >
// INPUT_* action inputs > config file (--config) > defaults. Action inputs use
// the names declared in action.yml (repo_token, draft, prerelease, ...).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment prefixes read by Load.
const (
	InputPrefix  = "INPUT_"
	GitHubPrefix = "GITHUB_"
)

// GitHubContext is the trigger context the runner exports as GITHUB_* variables.
type GitHubContext struct {
	// Ref is the ref that triggered the run, e.g. refs/tags/v1.2.3.
	Ref string `koanf:"ref" yaml:"ref"`
	// SHA is the commit the ref points at.
	SHA string `koanf:"sha" yaml:"sha"`
	// Repository is the owner/repo slug.
	Repository string `koanf:"repository" yaml:"repository" validate:"omitempty,repository"`
	APIURL     string `koanf:"api_url" yaml:"api_url" validate:"omitempty,url"`
	ServerURL  string `koanf:"server_url" yaml:"server_url" validate:"omitempty,url"`
}

// Configuration is the effective configuration of one run.
type Configuration struct {
	RepoToken  string        `koanf:"repo_token" yaml:"repo_token"`
	Draft      bool          `koanf:"draft" yaml:"draft"`
	Prerelease bool          `koanf:"prerelease" yaml:"prerelease"`
	Filter     string        `koanf:"filter" yaml:"filter"`
	Strict     bool          `koanf:"strict" yaml:"strict"`
	Title      string        `koanf:"title" yaml:"title"`
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout" validate:"gte=0"`

	GitHub GitHubContext `koanf:"github" yaml:"github"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an optional YAML or JSON file, chosen by extension.
	ConfigPath string
	// Overrides are applied last; empty values are ignored.
	Overrides map[string]string
	// WarningWriter receives warnings about unknown keys (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from all sources. It does not validate; call
// Validate with the mode of the command being run.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadConfigFile(k, opts.ConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if value != "" {
			if err := k.Set(key, value); err != nil {
				return nil, fmt.Errorf("applying override %s: %w", key, err)
			}
		}
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

// loadConfigFile loads the --config file into its own koanf instance so its
// keys can be checked before merging.
func loadConfigFile(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if path == "" {
		return nil
	}
	if !fileExists(path) {
		return fmt.Errorf("config file %s not found", path)
	}

	fk := koanf.New(".")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := fk.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
	default:
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax: %w", err)
		}
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if !skipWarnings {
		warnUnknownKeys(warningWriter, path, fk.Keys())
	}
	if err := k.Merge(fk); err != nil {
		return fmt.Errorf("merging config %s: %w", path, err)
	}
	return nil
}

// warnUnknownKeys warns about keys that no part of the program reads.
func warnUnknownKeys(w io.Writer, path string, keys []string) {
	for _, key := range keys {
		if _, ok := KnownKeys[key]; ok {
			continue
		}
		fmt.Fprintf(w, "Warning: unknown config key %q in %s (ignored)\n", key, path)
	}
}

// loadEnvironmentConfig loads action inputs, then the trigger context.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(InputPrefix, ".", inputTransform), nil); err != nil {
		return fmt.Errorf("failed to load input environment: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(GitHubPrefix, ".", githubTransform), nil); err != nil {
		return fmt.Errorf("failed to load GitHub environment: %w", err)
	}
	return nil
}

// inputTransform converts input variables to config keys and drops empty
// values, which the runner exports for inputs the workflow did not set.
// Example: INPUT_REPO_TOKEN -> repo_token
func inputTransform(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return strings.ToLower(strings.TrimPrefix(key, InputPrefix)), value
}

// githubKeys are the trigger context variables read from GITHUB_*.
var githubKeys = map[string]struct{}{
	"ref":        {},
	"sha":        {},
	"repository": {},
	"api_url":    {},
	"server_url": {},
}

// githubTransform maps GITHUB_REF to github.ref and so on; every other
// GITHUB_* variable is ignored.
func githubTransform(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, GitHubPrefix))
	if _, ok := githubKeys[name]; !ok || value == "" {
		return "", nil
	}
	return "github." + name, value
}

// finalizeConfig unmarshals the merged layers.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Filter = strings.TrimSpace(cfg.Filter)
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Redacted returns a copy safe to print: the token is masked.
func (c *Configuration) Redacted() *Configuration {
	out := *c
	if out.RepoToken != "" {
		out.RepoToken = "***"
	}
	return &out
}

// CommitURL returns the web prefix for commit links of the repository, or
// "" when the server URL or repository is unknown.
func (c *Configuration) CommitURL() string {
	if c.GitHub.ServerURL == "" || c.GitHub.Repository == "" {
		return ""
	}
	return strings.TrimSuffix(c.GitHub.ServerURL, "/") + "/" + c.GitHub.Repository + "/commit"
}
