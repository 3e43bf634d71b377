package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/autorelease/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the configuration autorelease would run with.

Values are layered: defaults, the --config file, INPUT_* action inputs,
the GITHUB_* trigger context, then command flags.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML (token redacted)",
	Example: `  autorelease config show
  autorelease config show --config autorelease.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.LoadOptions{
			ConfigPath:    configPathFlag,
			WarningWriter: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg.Redacted()); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		return enc.Close()
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTYPE\tDEFAULT\tENV\tDESCRIPTION")
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			desc := schema.Description
			if schema.Required {
				desc += " (required for release)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s\n", key, schema.Type, schema.Default, schema.Env, desc)
		}
		return tw.Flush()
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}
