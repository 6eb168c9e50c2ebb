package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigEditPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		flag string
		used string
		want string
	}{
		{name: "flag wins", flag: "./custom.yaml", used: "/tmp/active.yaml", want: "./custom.yaml"},
		{name: "active config", used: "/tmp/active.yaml", want: "/tmp/active.yaml"},
		{name: "home fallback", want: filepath.Join(home, ".billsheet.yaml")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveConfigEditPath(tc.flag, tc.used)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEnsureConfigFileWithTemplate_CreatesOnce(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "nested", "billsheet.yaml")

	created, err := ensureConfigFileWithTemplate(configPath)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	created, err = ensureConfigFileWithTemplate(configPath)
	require.NoError(t, err)
	assert.False(t, created, "existing file must not be recreated")
}

func TestEditorCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "code --wait", resolveEditorValue("code --wait", "nano"))
	assert.Equal(t, "nano", resolveEditorValue("", "nano"))
	assert.Equal(t, "vi", resolveEditorValue(" ", ""))

	cmd, err := buildEditorCommand("code --wait", "/tmp/billsheet.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/billsheet.yaml"}, cmd.Args)

	_, err = buildEditorCommand("   ", "/tmp/billsheet.yaml")
	require.Error(t, err)
}

func TestReportEditedConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
		wantErr string
	}{
		{
			name:    "template matches defaults",
			content: "",
			want:    []string{"Configuration saved and validated", "All lists match the built-in defaults."},
		},
		{
			name: "project codes replace the defaults",
			content: `rules:
  project_codes:
    - match: "Knowledge transfer"
      code: "4400"
    - match: "Internal tooling"
      code: "7100"
`,
			want: []string{
				"Rules: 4 activity exclusions, 2 project codes",
				`Warning: rules.project_codes replaces the built-in list; defaults no longer applied: "Sales existing customer" -> 4100, "Customer specific emission factors" -> 5100, "Customer Success Management" -> 6800`,
				`rules.project_codes adds: "Internal tooling" -> 7100`,
			},
		},
		{
			name:    "ids compare in canonical form",
			content: "selection:\n  included_ids: [\"01008\", \"1145\"]\n",
			want:    []string{"All lists match the built-in defaults."},
		},
		{
			name:    "case sensitivity changes an exclusion",
			content: "rules:\n  activity_exclusions:\n    - field: activity_code\n      contains: \"Lunch\"\n",
			want: []string{
				"Rules: 1 activity exclusions",
				`defaults no longer applied: activity_code contains "Lunch" (case sensitive), activity_name contains "Break"`,
				`rules.activity_exclusions adds: activity_code contains "Lunch"`,
			},
		},
		{
			name:    "duplicate match is rejected",
			content: "rules:\n  project_codes:\n    - match: \"A\"\n      code: \"1\"\n    - match: \"a\"\n      code: \"2\"\n",
			wantErr: "duplicate project code match",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "billsheet.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.content), 0o600))

			var out bytes.Buffer
			err := reportEditedConfig(&out, configPath)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestConfigEditCommand_ReportsAfterEditorExits(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "edit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("selection:\n  excluded_prefixes: [\"9\"]\n"), 0o600))
	t.Setenv("VISUAL", "true")

	out, err := runCommand(t, "--configFile", configPath, "config", "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "Selection: excluded prefixes [9]")
	assert.Contains(t, out, "Warning: selection.excluded_prefixes replaces the built-in list; defaults no longer applied: 1")
}
