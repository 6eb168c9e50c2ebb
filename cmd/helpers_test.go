package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"billsheet/config"
)

const timesheetCSV = `Activity #,Activity Name,Hours,Employee Name,Employee #,Project #,Project Name,Date,Billable
22,Consulting,8,Alice,2001,3005,ClientB,2024-01-05,1
41X,Sales existing customer,8,A,3001,9,ClientA,2024-01-05,1
22,Lunch Break,1,Alice,2001,3005,ClientB,2024-01-05,1
22,Consulting,0,Alice,2001,3005,ClientB,2024-01-05,1
22,Consulting,4,Erin,2112,3005,ClientB,2024-01-06,1
22,Consulting,2,Dave,1008,1001,Internal,2024-01-06,1
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timesheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCommand executes the root command with an empty config file so the
// user's own configuration never leaks into tests.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	emptyConfig := filepath.Join(t.TempDir(), "billsheet.yaml")
	require.NoError(t, os.WriteFile(emptyConfig, nil, 0o600))

	t.Cleanup(func() {
		cfgFile = ""
		processInput, processFormat, processSheet, processOutput = "", "", "", ""
		processInteractive, processExplain, processPreview = false, false, -1
		processSelection.reset()
		personsInput, personsFormat, personsOutput = "", "", ""
		personsSelection.reset()
		configRuleAddMatch, configRuleAddCode, configRuleAddClient, configRuleAddActivity = "", "", "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		viper.Reset()
		config.SetDefaults()
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--configFile", emptyConfig}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func nonEmptyLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
