package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"billsheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  billsheet config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file loaded, using built-in defaults.")
		}
		fmt.Fprintln(out, "Configuration:")
		printConfig(out, *cfg)
		return nil
	},
}

func printConfig(out io.Writer, cfg config.Config) {
	fmt.Fprintf(out, "input.sheet: %s\n", cfg.Input.Sheet)
	fmt.Fprintf(out, "input.billable_columns: %s\n", strings.Join(cfg.Input.BillableColumns, ", "))
	for i, rule := range cfg.Rules.ActivityExclusions {
		fmt.Fprintf(out, "rules.activity_exclusions[%d]: %s contains %q (case sensitive: %t)\n", i, rule.Field, rule.Contains, rule.CaseSensitive)
	}
	for i, code := range cfg.Rules.ProjectCodes {
		fmt.Fprintf(out, "rules.project_codes[%d]: %q -> %s\n", i, code.Match, code.Code)
	}
	fmt.Fprintf(out, "rules.non_billable_clients: %s\n", strings.Join(cfg.Rules.NonBillableClients, ", "))
	fmt.Fprintf(out, "rules.non_billable_activities: %s\n", strings.Join(cfg.Rules.NonBillableActivities, ", "))
	fmt.Fprintf(out, "selection.excluded_prefixes: %s\n", strings.Join(cfg.Selection.ExcludedPrefixes, ", "))
	fmt.Fprintf(out, "selection.excluded_ids: %s\n", strings.Join(cfg.Selection.ExcludedIDs, ", "))
	fmt.Fprintf(out, "selection.included_ids: %s\n", strings.Join(cfg.Selection.IncludedIDs, ", "))
	fmt.Fprintf(out, "export.filename: %s\n", cfg.Export.Filename)
	fmt.Fprintf(out, "export.sheet: %s\n", cfg.Export.Sheet)
	fmt.Fprintf(out, "export.preview_rows: %d\n", cfg.Export.PreviewRows)
	fmt.Fprintf(out, "server.port: %d\n", cfg.Server.Port)
	fmt.Fprintf(out, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "log.format: %s\n", cfg.Log.Format)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
