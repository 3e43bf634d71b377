// Package cli implements the autorelease command line with cobra.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autorelease/internal/actions"
	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// Command groups shown in help output.
const (
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

var (
	configPathFlag string
	debugFlag      bool
	plainFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "autorelease",
	Short: "Create GitHub releases with conventional-commit changelogs from tag pushes",
	Long: `autorelease creates a GitHub release when a semantic-version tag is pushed.

It finds the previous release tag, collects the commits since then, groups
them by conventional-commit type and publishes a release whose body is the
resulting changelog. Inside GitHub Actions it reads the action inputs
(INPUT_*) and the trigger context (GITHUB_*) from the environment.

Source: https://github.com/ariel-frischer/autorelease`,
	Example: `  # In a workflow step (inputs and context come from the environment)
  autorelease release

  # Preview the changelog for a tag from a local clone
  autorelease preview --local . --tag v1.2.0

  # Preview against GitHub as raw Markdown
  autorelease preview --repository octo/repo --tag v1.2.0 --markdown`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if plainFlag {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Information Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output without colors or styling")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewInputErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for usage")
	})
}

// Execute runs the root command. Errors are reported once, as an error
// annotation inside GitHub Actions and as formatted text otherwise; the
// returned error is an *ExitError carrying the exit code.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	reportError(cmd, err)
	return NewExitError(exitCodeFor(err))
}

// reportError prints err for a person or for the Actions runner.
func reportError(cmd *cobra.Command, err error) {
	if actions.Running(os.Getenv) {
		action := githubactions.New(githubactions.WithWriter(cmd.OutOrStdout()))
		actions.New(action).Fail(err)
		return
	}
	clierrors.FprintAny(cmd.ErrOrStderr(), err)
}
