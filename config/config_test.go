package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLContent_EmptyContentUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestValidateYAMLContent_ExampleMatchesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestValidateYAMLContent_OverridesProjectCodes(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  project_codes:
    - match: "Internal tooling"
      code: "7100"
`)

	cfg, err := ValidateYAMLContent(content)
	require.NoError(t, err)
	require.Len(t, cfg.Rules.ProjectCodes, 1)
	assert.Equal(t, ProjectCode{Match: "Internal tooling", Code: "7100"}, cfg.Rules.ProjectCodes[0])
	assert.Equal(t, Default().Rules.NonBillableClients, cfg.Rules.NonBillableClients, "untouched keys keep defaults")
}

func TestValidateYAMLContent_RejectsUnknownExclusionField(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  activity_exclusions:
    - field: employee_name
      contains: "Bob"
`)

	_, err := ValidateYAMLContent(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateYAMLContent_RejectsNonNumericActivityCode(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  non_billable_activities: ["44", "abc"]
`)

	_, err := ValidateYAMLContent(content)
	require.Error(t, err)
}

func TestValidateYAMLContent_RejectsDuplicateProjectMatch(t *testing.T) {
	t.Parallel()

	content := []byte(`rules:
  project_codes:
    - match: "Knowledge transfer"
      code: "4400"
    - match: "knowledge TRANSFER"
      code: "4401"
`)

	_, err := ValidateYAMLContent(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate project code match")
}

func TestValidateYAMLContent_RejectsLongSheetName(t *testing.T) {
	t.Parallel()

	content := []byte(`export:
  sheet: "This sheet name is far too long for Excel"
`)

	_, err := ValidateYAMLContent(content)
	require.Error(t, err)
}

func TestValidateYAMLContent_RejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	_, err := ValidateYAMLContent([]byte("log:\n  level: verbose\n"))
	require.Error(t, err)
}
