package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage billsheet configuration file values.",
	Long: `Create, edit, display, and delete the billsheet configuration file.

The configuration holds the business rule tables and a few runtime settings:
- input.sheet / input.billable_columns
- rules.activity_exclusions / rules.project_codes
- rules.non_billable_clients / rules.non_billable_activities
- selection.excluded_prefixes / selection.excluded_ids / selection.included_ids
- export.filename / export.sheet / export.preview_rows
- server.port, log.level, log.format

Every key can also be set through the environment, e.g. BILLSHEET_SERVER_PORT=9090.
A .env file in the working directory is loaded first.`,
	Example: `
  # Create default config in $HOME/.billsheet.yaml
  billsheet config create

  # Show active config and source file
  billsheet config show

  # Open active config in editor (creates example if missing)
  billsheet config edit

  # Delete active config file
  billsheet config delete

  # Never bill client 1003
  billsheet config rule add --client 1003
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
