package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"billsheet/config"
	"billsheet/output"
	"billsheet/pipeline"
	"billsheet/timesheet"
)

var (
	processInput       string
	processFormat      string
	processSheet       string
	processOutput      string
	processInteractive bool
	processPreview     int
	processExplain     bool
	processSelection   selectionFlags
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Filter and classify a timesheet and export the selected people",
	Long: `Read a timesheet export, drop rows without billable work, classify every
remaining record and write the records of the selected people.

Rows are dropped when Hours is empty, not a number or zero, when the activity
code contains "Lunch", or when the activity name contains Break, Work across
border or Overtime. Billable is decided by the billable column, then forced to
FALSE for mapped internal projects, non-billable clients and non-billable
activity codes.

People are selected by default unless their id starts with 1 or 9 or is on the
exclusion list; the forced inclusion list always wins. Use --select, --include
and --exclude or --interactive to change the selection.

The output file is only written when the whole run succeeded.`,
	Example: `
  # Default selection, writes ./filtered_data.xlsx
  billsheet process -i timesheet.xlsx

  # Read a named sheet and write CSV
  billsheet process -i timesheet.xlsx --sheet Export -o ./filtered.csv

  # Add an excluded person and drop another one
  billsheet process -i timesheet.xlsx --include 2112 --exclude 3001

  # Show the first 20 rows with the deciding rule
  billsheet process -i timesheet.xlsx --preview 20 --explain
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := pipeline.ProcessFile(processInput, processFormat, *cfg)
		if err != nil {
			return err
		}

		selected := result.Select(processSelection.overrides(result.Candidates))
		if processInteractive {
			if !isInteractiveTerminal() {
				return fmt.Errorf("--interactive needs a terminal; use --select, --include or --exclude instead")
			}
			selected, err = promptSelection(result.Candidates, selected)
			if err != nil {
				return err
			}
		}

		outputPath := processOutput
		if strings.TrimSpace(outputPath) == "" {
			outputPath = cfg.Export.Filename
		}
		writer, err := output.WriterForFormat(output.FormatForPath(outputPath), cfg.Export.Sheet)
		if err != nil {
			return err
		}
		content, err := pipeline.Export(result, selected, writer)
		if err != nil {
			return err
		}

		limit := processPreview
		if limit < 0 {
			limit = cfg.Export.PreviewRows
		}
		if limit > 0 {
			fmt.Fprint(cmd.OutOrStdout(), output.RenderPreview(result.Preview(selected, 0), limit, processExplain))
		}

		if err := output.WriteFile(outputPath, content); err != nil {
			return err
		}

		exported := result.Selected(selected)
		fmt.Fprintf(cmd.OutOrStdout(),
			"Export completed. Rows read: %d, Rows kept: %d, Records: %d, Billable: %d, People: %d/%d, File: %s\n",
			result.Filter.RowsRead,
			result.Filter.RowsKept,
			len(exported),
			countBillable(exported),
			len(selected),
			len(result.Candidates),
			outputPath,
		)
		return nil
	},
}

func countBillable(records []timesheet.Record) int {
	count := 0
	for _, record := range records {
		if record.Billable.Bool() {
			count++
		}
	}
	return count
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "Input timesheet path (.xlsx, .xlsm or .csv)")
	processCmd.Flags().StringVarP(&processFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	processCmd.Flags().StringVar(&processSheet, "sheet", "", "Worksheet to read (default: input.sheet, else the first sheet)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output path; .csv writes CSV, anything else xlsx (default: export.filename)")
	processCmd.Flags().BoolVar(&processInteractive, "interactive", false, "Choose people in an interactive checklist")
	processCmd.Flags().IntVar(&processPreview, "preview", -1, "Preview rows printed to stdout (default: export.preview_rows, 0 disables)")
	processCmd.Flags().BoolVar(&processExplain, "explain", false, "Add the rule that decided Billable to the preview")
	processCmd.Flags().AddFlagSet(processSelection.flagSet())

	_ = viper.BindPFlag(config.KeyInputSheet, processCmd.Flags().Lookup("sheet"))
	_ = processCmd.MarkFlagRequired("input")
}
