package cli

import (
	"os"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autorelease/internal/actions"
	"github.com/ariel-frischer/autorelease/internal/config"
	"github.com/ariel-frischer/autorelease/internal/release"
)

var releaseTrigger triggerFlags

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Publish a GitHub release for the pushed tag",
	Long: `Publish a GitHub release for the tag that triggered the run.

The previous semantic-version tag is looked up among the repository's tags,
the commits between the two are classified as conventional commits and the
rendered changelog becomes the release body.

Inside GitHub Actions the tag is exported as AUTOMATIC_RELEASES_TAG and the
step outputs automatic_releases_tag and upload_url are set.`,
	Example: `  # As a workflow step
  autorelease release

  # From a terminal
  INPUT_REPO_TOKEN=$(gh auth token) autorelease release \
    --repository octo/repo --ref refs/tags/v1.2.0 --sha $(git rev-parse v1.2.0)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)
	releaseTrigger.register(releaseCmd)
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, config.ModeRelease, releaseTrigger.overrides())
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	var reporter *actions.Reporter
	var log release.Logger
	if actions.Running(os.Getenv) {
		reporter = actions.New(githubactions.New(githubactions.WithWriter(cmd.OutOrStdout())))
		reporter.Mask(cfg.RepoToken)
		log = reporter.Logger()
	} else {
		log = newTerminalLogger(cmd.ErrOrStderr(), debugFlag, false, nil)
	}
	routeDebugLogs(log)

	client, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}

	runner := &release.Runner{Source: client, Publisher: client, Log: log}
	res, err := runner.Run(ctx, releaseOptions(cfg))
	if err != nil {
		return err
	}

	if reporter != nil {
		reporter.Report(res)
	}
	log.Infof("Published release %s: %s", res.Tag, res.Release.HTMLURL)
	return nil
}
