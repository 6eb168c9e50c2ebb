package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"billsheet/config"
)

var (
	configRuleAddMatch    string
	configRuleAddCode     string
	configRuleAddClient   string
	configRuleAddActivity string
)

var configRuleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one billability rule to the config file.",
	Long: `Add a project code remap, a non-billable client id or a non-billable
activity code to the config file. When a list is not yet present in the file
it is seeded with the built-in defaults before the new entry is appended.

Without flags the project code rule is prompted for on stdin.`,
	Example: `
  # Remap "Internal tooling" projects to 7100 (always non-billable)
  billsheet config rule add --match "Internal tooling" --code 7100

  # Never bill client 1003
  billsheet config rule add --client 1003

  # Never bill activity code 45
  billsheet config rule add --activity 45
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if _, err := ensureConfigFileWithTemplate(configPath); err != nil {
			return err
		}

		addition := ruleAddition{
			Match:    configRuleAddMatch,
			Code:     configRuleAddCode,
			Client:   configRuleAddClient,
			Activity: configRuleAddActivity,
		}
		if addition.empty() {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if addition.Match, err = promptRequiredString(reader, out, "Project name contains"); err != nil {
				return err
			}
			if addition.Code, err = promptRequiredString(reader, out, "Project code"); err != nil {
				return err
			}
		}

		current, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		updated, err := appendRuleToConfigYAML(current, addition)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, updated, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Rule added successfully.")
		fmt.Fprintf(out, "Config:   %s\n", configPath)
		if addition.Match != "" {
			fmt.Fprintf(out, "Project:  %q -> %s\n", addition.Match, addition.Code)
		}
		if addition.Client != "" {
			fmt.Fprintf(out, "Client:   %s (non-billable)\n", addition.Client)
		}
		if addition.Activity != "" {
			fmt.Fprintf(out, "Activity: %s (non-billable)\n", addition.Activity)
		}
		return nil
	},
}

type ruleAddition struct {
	Match    string
	Code     string
	Client   string
	Activity string
}

func (a ruleAddition) empty() bool {
	return strings.TrimSpace(a.Match+a.Code+a.Client+a.Activity) == ""
}

func promptRequiredString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", strings.TrimSpace(label))
		input, err := reader.ReadString('\n')
		value := strings.TrimSpace(input)
		if value != "" {
			return value, nil
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.ToLower(label)), err)
		}
		fmt.Fprintln(out, "Value must not be empty.")
	}
}

func appendRuleToConfigYAML(content []byte, addition ruleAddition) ([]byte, error) {
	addition.Match = strings.TrimSpace(addition.Match)
	addition.Code = strings.TrimSpace(addition.Code)
	addition.Client = strings.TrimSpace(addition.Client)
	addition.Activity = strings.TrimSpace(addition.Activity)
	if (addition.Match == "") != (addition.Code == "") {
		return nil, fmt.Errorf("project code rules need both match and code")
	}
	if addition.empty() {
		return nil, fmt.Errorf("nothing to add")
	}

	doc := map[string]any{}
	if strings.TrimSpace(string(content)) != "" {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	rules, err := ensureMapAny(doc, "rules")
	if err != nil {
		return nil, err
	}
	defaults := config.Default().Rules

	if addition.Match != "" {
		seed := make([]any, 0, len(defaults.ProjectCodes))
		for _, code := range defaults.ProjectCodes {
			seed = append(seed, map[string]any{"match": code.Match, "code": code.Code})
		}
		codes, err := ensureSliceAny(rules, "project_codes", seed)
		if err != nil {
			return nil, err
		}
		for _, existing := range codes {
			entry, ok := existing.(map[string]any)
			if !ok {
				continue
			}
			match, _ := entry["match"].(string)
			if strings.EqualFold(strings.TrimSpace(match), addition.Match) {
				return nil, fmt.Errorf("project code rule for %q already exists", addition.Match)
			}
		}
		rules["project_codes"] = append(codes, map[string]any{"match": addition.Match, "code": addition.Code})
	}
	if addition.Client != "" {
		if err := appendID(rules, "non_billable_clients", defaults.NonBillableClients, addition.Client); err != nil {
			return nil, err
		}
	}
	if addition.Activity != "" {
		if err := appendID(rules, "non_billable_activities", defaults.NonBillableActivities, addition.Activity); err != nil {
			return nil, err
		}
	}

	updated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal updated config yaml: %w", err)
	}
	if _, err := config.ValidateYAMLContent(updated); err != nil {
		return nil, fmt.Errorf("updated config is invalid: %w", err)
	}
	return updated, nil
}

func appendID(rules map[string]any, key string, defaults []string, id string) error {
	seed := make([]any, 0, len(defaults))
	for _, value := range defaults {
		seed = append(seed, value)
	}
	list, err := ensureSliceAny(rules, key, seed)
	if err != nil {
		return err
	}
	for _, existing := range list {
		if strings.TrimSpace(fmt.Sprint(existing)) == id {
			return fmt.Errorf("%s already contains %s", key, id)
		}
	}
	rules[key] = append(list, id)
	return nil
}

func ensureMapAny(doc map[string]any, key string) (map[string]any, error) {
	raw, exists := doc[key]
	if !exists || raw == nil {
		result := map[string]any{}
		doc[key] = result
		return result, nil
	}
	result, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config key %q must be a mapping", key)
	}
	return result, nil
}

func ensureSliceAny(doc map[string]any, key string, seed []any) ([]any, error) {
	raw, exists := doc[key]
	if !exists || raw == nil {
		doc[key] = seed
		return seed, nil
	}
	result, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config key %q must be a list", key)
	}
	return result, nil
}

func init() {
	configRuleCmd.AddCommand(configRuleAddCmd)

	configRuleAddCmd.Flags().StringVar(&configRuleAddMatch, "match", "", "Project name substring to remap (case-insensitive)")
	configRuleAddCmd.Flags().StringVar(&configRuleAddCode, "code", "", "Project id assigned to matching projects")
	configRuleAddCmd.Flags().StringVar(&configRuleAddClient, "client", "", "Client id to add to the non-billable clients")
	configRuleAddCmd.Flags().StringVar(&configRuleAddActivity, "activity", "", "Activity code to add to the non-billable activities")
}
