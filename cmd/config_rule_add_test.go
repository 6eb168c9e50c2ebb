package cmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsheet/config"
)

func TestAppendRuleToConfigYAML_SeedsDefaultsThenAppends(t *testing.T) {
	t.Parallel()

	updated, err := appendRuleToConfigYAML([]byte("export:\n  sheet: \"Filtered Data\"\n"), ruleAddition{
		Match: "Internal tooling",
		Code:  "7100",
	})
	require.NoError(t, err)

	cfg, err := config.ValidateYAMLContent(updated)
	require.NoError(t, err)

	defaults := config.Default().Rules.ProjectCodes
	require.Len(t, cfg.Rules.ProjectCodes, len(defaults)+1)
	assert.Equal(t, defaults, cfg.Rules.ProjectCodes[:len(defaults)])
	assert.Equal(t, config.ProjectCode{Match: "Internal tooling", Code: "7100"}, cfg.Rules.ProjectCodes[len(defaults)])
	assert.Equal(t, "Filtered Data", cfg.Export.Sheet)
}

func TestAppendRuleToConfigYAML_AppendsToExistingLists(t *testing.T) {
	t.Parallel()

	input := []byte(`rules:
  non_billable_clients: ["1002"]
  non_billable_activities: ["44"]
`)

	updated, err := appendRuleToConfigYAML(input, ruleAddition{Client: "1003", Activity: "45"})
	require.NoError(t, err)

	cfg, err := config.ValidateYAMLContent(updated)
	require.NoError(t, err)
	assert.Equal(t, []string{"1002", "1003"}, cfg.Rules.NonBillableClients)
	assert.Equal(t, []string{"44", "45"}, cfg.Rules.NonBillableActivities)
	assert.Equal(t, config.Default().Rules.ProjectCodes, cfg.Rules.ProjectCodes, "untouched lists keep defaults")
}

func TestAppendRuleToConfigYAML_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		addition ruleAddition
		want     string
	}{
		{name: "duplicate match", addition: ruleAddition{Match: "knowledge TRANSFER", Code: "4401"}, want: "already exists"},
		{name: "match without code", addition: ruleAddition{Match: "Internal tooling"}, want: "both match and code"},
		{name: "duplicate client", addition: ruleAddition{Client: "1001"}, want: "already contains"},
		{name: "non numeric activity", addition: ruleAddition{Activity: "abc"}, want: "invalid"},
		{name: "empty", addition: ruleAddition{}, want: "nothing to add"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := appendRuleToConfigYAML(nil, tc.addition)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestPromptRequiredString_RetriesOnEmptyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	value, err := promptRequiredString(bufio.NewReader(strings.NewReader("\n  \nInternal tooling\n")), &out, "Project name contains")
	require.NoError(t, err)
	assert.Equal(t, "Internal tooling", value)
	assert.Equal(t, 2, strings.Count(out.String(), "Value must not be empty."))
}

func TestConfigRuleAddCommand_WritesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(configPath, nil, 0o600))

	out, err := runCommand(t, "--configFile", configPath, "config", "rule", "add", "--client", "1003")
	require.NoError(t, err)
	assert.Contains(t, out, "Client:   1003 (non-billable)")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	cfg, err := config.ValidateYAMLContent(content)
	require.NoError(t, err)
	assert.Equal(t, append(config.Default().Rules.NonBillableClients, "1003"), cfg.Rules.NonBillableClients)
}
