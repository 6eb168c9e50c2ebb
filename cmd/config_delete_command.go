package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"billsheet/config"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by billsheet.

Custom rules and selection entries held only by that file are listed before
it is removed; afterwards the built-in defaults apply again.

If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  billsheet config delete

  # Delete config at a custom path
  billsheet --configFile ./custom-billsheet.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if content, err := os.ReadFile(configPath); err == nil {
			if cfg, err := config.ValidateYAMLContent(content); err == nil {
				if custom := customEntries(*cfg); len(custom) > 0 {
					fmt.Fprintln(out, "Custom entries removed with this file:")
					for _, entry := range custom {
						fmt.Fprintf(out, "  %s\n", entry)
					}
				}
			}
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Fprintf(out, "Configuration file successfully deleted: %s\n", configPath)
		fmt.Fprintln(out, "Built-in rule tables and selection sets apply again.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
