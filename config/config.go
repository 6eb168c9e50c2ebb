package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyInputSheet            = "input.sheet"
	KeyInputBillableColumns  = "input.billable_columns"
	KeyActivityExclusions    = "rules.activity_exclusions"
	KeyProjectCodes          = "rules.project_codes"
	KeyNonBillableClients    = "rules.non_billable_clients"
	KeyNonBillableActivities = "rules.non_billable_activities"
	KeyExcludedPrefixes      = "selection.excluded_prefixes"
	KeyExcludedIDs           = "selection.excluded_ids"
	KeyIncludedIDs           = "selection.included_ids"
	KeyExportFilename        = "export.filename"
	KeyExportSheet           = "export.sheet"
	KeyExportPreviewRows     = "export.preview_rows"
	KeyServerPort            = "server.port"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
)

const (
	FieldActivityCode = "activity_code"
	FieldActivityName = "activity_name"
)

type Config struct {
	Input     InputConfig  `mapstructure:"input"`
	Rules     Rules        `mapstructure:"rules"`
	Selection Selection    `mapstructure:"selection"`
	Export    ExportConfig `mapstructure:"export" validate:"required"`
	Server    ServerConfig `mapstructure:"server"`
	Log       LogConfig    `mapstructure:"log"`
}

type InputConfig struct {
	// Sheet selects the worksheet to read; empty means the first sheet.
	Sheet string `mapstructure:"sheet"`
	// BillableColumns lists candidate billable columns in priority order.
	BillableColumns []string `mapstructure:"billable_columns" validate:"dive,required"`
}

// Rules holds the business rule tables applied by the row filter and the
// billability classifier.
type Rules struct {
	ActivityExclusions    []ExclusionRule `mapstructure:"activity_exclusions" validate:"dive"`
	ProjectCodes          []ProjectCode   `mapstructure:"project_codes" validate:"dive"`
	NonBillableClients    []string        `mapstructure:"non_billable_clients" validate:"dive,required"`
	NonBillableActivities []string        `mapstructure:"non_billable_activities" validate:"dive,required,numeric"`
}

// ExclusionRule drops a row when Field contains the Contains text.
type ExclusionRule struct {
	Field         string `mapstructure:"field" validate:"required,oneof=activity_code activity_name"`
	Contains      string `mapstructure:"contains" validate:"required"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
}

// ProjectCode maps a project name substring to a fixed project id. Matched
// projects are always non-billable.
type ProjectCode struct {
	Match string `mapstructure:"match" validate:"required"`
	Code  string `mapstructure:"code" validate:"required"`
}

// Selection holds the default person inclusion policy.
type Selection struct {
	ExcludedPrefixes []string `mapstructure:"excluded_prefixes" validate:"dive,required"`
	ExcludedIDs      []string `mapstructure:"excluded_ids" validate:"dive,required"`
	IncludedIDs      []string `mapstructure:"included_ids" validate:"dive,required"`
}

type ExportConfig struct {
	Filename    string `mapstructure:"filename" validate:"required"`
	Sheet       string `mapstructure:"sheet" validate:"required,max=31"`
	PreviewRows int    `mapstructure:"preview_rows" validate:"gte=0"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// Default returns the built-in configuration. It matches what SetDefaults
// registers on viper.
func Default() Config {
	return Config{
		Input: InputConfig{
			BillableColumns: []string{"Billable", "Bill.", "Invoiceable", "Inv."},
		},
		Rules: Rules{
			ActivityExclusions: []ExclusionRule{
				{Field: FieldActivityCode, Contains: "Lunch", CaseSensitive: true},
				{Field: FieldActivityName, Contains: "Break"},
				{Field: FieldActivityName, Contains: "Work across border"},
				{Field: FieldActivityName, Contains: "Overtime"},
			},
			ProjectCodes: []ProjectCode{
				{Match: "Sales existing customer", Code: "4100"},
				{Match: "Customer specific emission factors", Code: "5100"},
				{Match: "Knowledge transfer", Code: "4400"},
				{Match: "Customer Success Management", Code: "6800"},
			},
			NonBillableClients:    []string{"1002", "1001", "4"},
			NonBillableActivities: []string{"44", "14", "15", "16", "17", "41"},
		},
		Selection: Selection{
			ExcludedPrefixes: []string{"1", "9"},
			ExcludedIDs:      []string{"2112", "4014", "5009", "2102", "2100", "2107", "4131", "4013", "1007", "1020"},
			IncludedIDs:      []string{"1008", "1145"},
		},
		Export: ExportConfig{
			Filename:    "filtered_data.xlsx",
			Sheet:       "Filtered Data",
			PreviewRows: 100,
		},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# billsheet configuration
input:
  sheet: ""
  billable_columns: ["Billable", "Bill.", "Invoiceable", "Inv."]

rules:
  activity_exclusions:
    - field: activity_code
      contains: "Lunch"
      case_sensitive: true
    - field: activity_name
      contains: "Break"
    - field: activity_name
      contains: "Work across border"
    - field: activity_name
      contains: "Overtime"
  project_codes:
    - match: "Sales existing customer"
      code: "4100"
    - match: "Customer specific emission factors"
      code: "5100"
    - match: "Knowledge transfer"
      code: "4400"
    - match: "Customer Success Management"
      code: "6800"
  non_billable_clients: ["1002", "1001", "4"]
  non_billable_activities: ["44", "14", "15", "16", "17", "41"]

selection:
  excluded_prefixes: ["1", "9"]
  excluded_ids: ["2112", "4014", "5009", "2102", "2100", "2107", "4131", "4013", "1007", "1020"]
  included_ids: ["1008", "1145"]

export:
  filename: "filtered_data.xlsx"
  sheet: "Filtered Data"
  preview_rows: 100

server:
  port: 8080

log:
  level: info
  format: text
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateProjectCodes(cfg.Rules.ProjectCodes); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault(KeyInputSheet, defaults.Input.Sheet)
	v.SetDefault(KeyInputBillableColumns, defaults.Input.BillableColumns)

	exclusions := make([]map[string]any, 0, len(defaults.Rules.ActivityExclusions))
	for _, rule := range defaults.Rules.ActivityExclusions {
		exclusions = append(exclusions, map[string]any{
			"field":          rule.Field,
			"contains":       rule.Contains,
			"case_sensitive": rule.CaseSensitive,
		})
	}
	v.SetDefault(KeyActivityExclusions, exclusions)

	codes := make([]map[string]any, 0, len(defaults.Rules.ProjectCodes))
	for _, code := range defaults.Rules.ProjectCodes {
		codes = append(codes, map[string]any{
			"match": code.Match,
			"code":  code.Code,
		})
	}
	v.SetDefault(KeyProjectCodes, codes)

	v.SetDefault(KeyNonBillableClients, defaults.Rules.NonBillableClients)
	v.SetDefault(KeyNonBillableActivities, defaults.Rules.NonBillableActivities)
	v.SetDefault(KeyExcludedPrefixes, defaults.Selection.ExcludedPrefixes)
	v.SetDefault(KeyExcludedIDs, defaults.Selection.ExcludedIDs)
	v.SetDefault(KeyIncludedIDs, defaults.Selection.IncludedIDs)
	v.SetDefault(KeyExportFilename, defaults.Export.Filename)
	v.SetDefault(KeyExportSheet, defaults.Export.Sheet)
	v.SetDefault(KeyExportPreviewRows, defaults.Export.PreviewRows)
	v.SetDefault(KeyServerPort, defaults.Server.Port)
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
	v.SetDefault(KeyLogFormat, defaults.Log.Format)
}

func validateProjectCodes(codes []ProjectCode) error {
	seen := make(map[string]struct{}, len(codes))
	for i, code := range codes {
		key := strings.ToLower(strings.TrimSpace(code.Match))
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate project code match %q (rules.project_codes[%d])", code.Match, i)
		}
		seen[key] = struct{}{}
	}
	return nil
}
