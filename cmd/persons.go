package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"billsheet/config"
	"billsheet/output"
	"billsheet/pipeline"
)

var (
	personsInput     string
	personsFormat    string
	personsOutput    string
	personsSelection selectionFlags
)

var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "List the people in a timesheet with their hours and default selection",
	Long: `Run the filter and classification steps and print one line per person:
record count, total hours, billable and non-billable hours, whether the person
is selected by default and whether they would be exported with the given
selection flags.

The summary can also be written to CSV or Excel with --output.`,
	Example: `
  # Show people and their default selection
  billsheet persons -i timesheet.xlsx

  # Check a selection before exporting
  billsheet persons -i timesheet.xlsx --include 2112

  # Write the summary to Excel
  billsheet persons -i timesheet.xlsx -o ./persons.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := pipeline.ProcessFile(personsInput, personsFormat, *cfg)
		if err != nil {
			return err
		}

		selected := result.Select(personsSelection.overrides(result.Candidates))
		summaries := result.Summaries(selected)

		if strings.TrimSpace(personsOutput) != "" {
			format := output.FormatForPath(personsOutput)
			if err := output.WritePersonSummaries(personsOutput, format, summaries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Person summary written. People: %d, Format: %s, File: %s\n", len(summaries), format, personsOutput)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), output.RenderPersonSummaries(summaries))
		fmt.Fprintf(cmd.OutOrStdout(), "People: %d, Selected: %d\n", len(summaries), len(selected))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personsCmd)

	personsCmd.Flags().StringVarP(&personsInput, "input", "i", "", "Input timesheet path (.xlsx, .xlsm or .csv)")
	personsCmd.Flags().StringVarP(&personsFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	personsCmd.Flags().StringVarP(&personsOutput, "output", "o", "", "Write the summary to this path (.csv or .xlsx) instead of printing it")
	personsCmd.Flags().AddFlagSet(personsSelection.flagSet())

	_ = personsCmd.MarkFlagRequired("input")
}
