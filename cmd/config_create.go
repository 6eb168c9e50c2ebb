package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"billsheet/config"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

The template spells out the built-in rule tables and person selection sets,
so editing it is the easiest way to change them. If the file already exists
it is left untouched and its rules are compared against the defaults.`,
	Example: `
  # Create default config at $HOME/.billsheet.yaml
  billsheet config create

  # Create config at a custom path
  billsheet --configFile ./billsheet.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd.OutOrStdout())
	},
}

func saveDefaultConfig(out io.Writer) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "New config file created at: %s\n", configPath)
		writeRuleReport(out, config.Default())
		return nil
	}

	fmt.Fprintf(out, "Config file already exists at: %s\n", configPath)
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		fmt.Fprintf(out, "Warning: existing config is invalid: %v\n", err)
		return nil
	}
	writeRuleReport(out, *cfg)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
