package cmd

import "github.com/spf13/cobra"

var configRuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage billability rules in config.",
	Long: `Manage the classifier rules stored under config key rules.

Project codes remap matching project names to a fixed non-billable id.
Non-billable clients and activities suppress billability by id.`,
}

func init() {
	configCmd.AddCommand(configRuleCmd)
}
