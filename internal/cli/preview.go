package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/autorelease/internal/changelog"
	"github.com/ariel-frischer/autorelease/internal/config"
	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
	"github.com/ariel-frischer/autorelease/internal/git"
	"github.com/ariel-frischer/autorelease/internal/progress"
	"github.com/ariel-frischer/autorelease/internal/release"
	"github.com/ariel-frischer/autorelease/internal/semvertag"
)

// Output formats of the preview command.
const (
	formatTerminal = "terminal"
	formatMarkdown = "markdown"
	formatYAML     = "yaml"
)

var (
	previewTrigger      triggerFlags
	previewTagFlag      string
	previewLocalFlag    string
	previewFormatFlag   string
	previewMarkdownFlag bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the changelog for a tag without publishing",
	Long: `Render the changelog a release would get, without creating it.

Commits come from the GitHub API, or from a local clone with --local. The
target commit defaults to the tag itself.`,
	Example: `  # From the clone in the current directory
  autorelease preview --local . --tag v1.2.0

  # From GitHub, as the Markdown release body
  autorelease preview --repository octo/repo --tag v1.2.0 --markdown

  # Structured output for scripts
  autorelease preview --local . --tag v1.2.0 --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd)
	},
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)

	previewTrigger.register(previewCmd)
	previewCmd.Flags().StringVarP(&previewTagFlag, "tag", "t", "", "Tag to preview (shorthand for --ref refs/tags/<tag>)")
	previewCmd.Flags().StringVar(&previewLocalFlag, "local", "", "Read history from the git clone at this path")
	previewCmd.Flags().StringVarP(&previewFormatFlag, "format", "f", formatTerminal, "Output format: terminal | markdown | yaml")
	previewCmd.Flags().BoolVar(&previewMarkdownFlag, "markdown", false, "Same as --format markdown")
	previewCmd.MarkFlagsMutuallyExclusive("tag", "ref")
}

func runPreview(cmd *cobra.Command) error {
	format, err := previewFormat()
	if err != nil {
		return err
	}

	overrides := previewTrigger.overrides()
	if previewTagFlag != "" {
		overrides["github.ref"] = "refs/tags/" + previewTagFlag
	}

	mode := config.ModePreview
	if previewLocalFlag != "" {
		mode = config.ModePreviewLocal
	}
	cfg, err := loadConfig(cmd, mode, overrides)
	if err != nil {
		return err
	}
	if cfg.GitHub.Ref == "" {
		return clierrors.NewInputErrorWithUsage("no tag to preview", "autorelease preview --tag v1.2.3",
			"Pass --tag or --ref, or export GITHUB_REF")
	}

	ctx, cancel := withTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	var display *progress.ProgressDisplay
	if caps := progress.DetectTerminalCapabilities(); caps.IsTTY && !debugFlag {
		display = progress.NewProgressDisplayWithWriter(caps, cmd.ErrOrStderr())
	}
	log := newTerminalLogger(cmd.ErrOrStderr(), debugFlag, true, display)
	routeDebugLogs(log)

	src, err := previewSource(cfg)
	if err != nil {
		return err
	}

	opts := releaseOptions(cfg)
	opts.DryRun = true
	if opts.SHA == "" {
		opts.SHA = semvertag.ExtractTagName(cfg.GitHub.Ref)
	}

	runner := &release.Runner{Source: src, Log: log}
	res, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	return writePreview(cmd.OutOrStdout(), res, format)
}

func previewFormat() (string, error) {
	if previewMarkdownFlag {
		return formatMarkdown, nil
	}
	switch f := strings.ToLower(previewFormatFlag); f {
	case formatTerminal, formatMarkdown, formatYAML:
		return f, nil
	default:
		return "", clierrors.NewInputErrorWithUsage(
			fmt.Sprintf("unknown format %q", previewFormatFlag),
			"autorelease preview --format terminal|markdown|yaml",
		)
	}
}

func previewSource(cfg *config.Configuration) (release.Source, error) {
	if previewLocalFlag != "" {
		return git.Open(previewLocalFlag, cfg.CommitURL())
	}
	return newGitHubClient(cfg)
}

func writePreview(w io.Writer, res *release.Result, format string) error {
	switch format {
	case formatMarkdown:
		_, err := fmt.Fprintln(w, res.Body)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newPreviewDocument(res)); err != nil {
			return fmt.Errorf("encoding preview: %w", err)
		}
		return enc.Close()
	default:
		heading := res.Tag
		if res.PreviousTag != "" {
			heading += " (since " + res.PreviousTag + ")"
		}
		fmt.Fprintf(w, "%s: %d commits\n\n", heading, len(res.Commits))
		return changelog.FormatTerminal(res.Changelog, w, changelog.FormatOptions{Plain: plainFlag})
	}
}

// previewDocument is the --format yaml shape.
type previewDocument struct {
	Tag         string          `yaml:"tag"`
	PreviousTag string          `yaml:"previous_tag,omitempty"`
	Commits     []previewCommit `yaml:"commits"`
	Body        string          `yaml:"body"`
}

type previewCommit struct {
	SHA      string `yaml:"sha"`
	Type     string `yaml:"type,omitempty"`
	Scope    string `yaml:"scope,omitempty"`
	Subject  string `yaml:"subject,omitempty"`
	Header   string `yaml:"header"`
	Breaking bool   `yaml:"breaking,omitempty"`
}

func newPreviewDocument(res *release.Result) previewDocument {
	doc := previewDocument{
		Tag:         res.Tag,
		PreviousTag: res.PreviousTag,
		Commits:     make([]previewCommit, 0, len(res.Commits)),
		Body:        res.Body,
	}
	for _, pc := range res.Commits {
		doc.Commits = append(doc.Commits, previewCommit{
			SHA:      pc.Raw.ShortSHA(),
			Type:     string(pc.Type),
			Scope:    pc.Scope,
			Subject:  pc.Subject,
			Header:   pc.Header,
			Breaking: pc.Breaking,
		})
	}
	return doc
}
