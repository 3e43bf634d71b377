package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autorelease/internal/config"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/github"
	"github.com/ariel-frischer/autorelease/internal/release"
	"github.com/ariel-frischer/autorelease/internal/version"
)

// triggerFlags override the GITHUB_* trigger context.
type triggerFlags struct {
	ref        string
	sha        string
	repository string
}

func (f *triggerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ref, "ref", "", "Trigger ref, e.g. refs/tags/v1.2.3 (default $GITHUB_REF)")
	cmd.Flags().StringVar(&f.sha, "sha", "", "Commit the release points at (default $GITHUB_SHA)")
	cmd.Flags().StringVar(&f.repository, "repository", "", "Repository as owner/repo (default $GITHUB_REPOSITORY)")
}

func (f *triggerFlags) overrides() map[string]string {
	return map[string]string{
		"github.ref":        f.ref,
		"github.sha":        f.sha,
		"github.repository": f.repository,
	}
}

// loadConfig loads and validates configuration for mode.
func loadConfig(cmd *cobra.Command, mode config.Mode, overrides map[string]string) (*config.Configuration, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:    configPathFlag,
		Overrides:     overrides,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg, mode); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withTimeout applies the configured deadline; zero means none.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// newGitHubClient builds the REST client for the configured repository.
func newGitHubClient(cfg *config.Configuration) (*github.Client, error) {
	owner, repo, err := github.SplitRepository(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}
	return github.New(github.Options{
		Token:     cfg.RepoToken,
		APIURL:    cfg.GitHub.APIURL,
		Owner:     owner,
		Repo:      repo,
		UserAgent: version.UserAgent(),
	})
}

// routeDebugLogs sends the packages' debug hooks to log.
func routeDebugLogs(log release.Logger) {
	github.SetDebugLogger(log.Debugf)
	git.SetDebugLogger(log.Debugf)
}

func releaseOptions(cfg *config.Configuration) release.Options {
	owner, repo, _ := github.SplitRepository(cfg.GitHub.Repository)
	return release.Options{
		Owner:      owner,
		Repo:       repo,
		Ref:        cfg.GitHub.Ref,
		SHA:        cfg.GitHub.SHA,
		Title:      cfg.Title,
		Draft:      cfg.Draft,
		Prerelease: cfg.Prerelease,
		Filter:     cfg.Filter,
		Strict:     cfg.Strict,
	}
}
