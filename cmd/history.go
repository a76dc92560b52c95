package cmd

import (
	"fmt"

	"github.com/rpgo/dreamcalc/internal/output"
	"github.com/rpgo/dreamcalc/internal/recordlog"
	"github.com/spf13/cobra"
)

var (
	flagHistoryPath  string
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs from the record log",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPath, "path", "", "Record log file (default from settings)")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of most recent records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path := flagHistoryPath
	if path == "" {
		path = appSettings.RecordLog.Path
	}
	records, err := recordlog.ReadAll(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "\n  No records in %s.\n", path)
		return nil
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[len(records)-flagHistoryLimit:]
	}

	currency := appSettings.Output.Currency
	t := output.Table{
		Title:   "Recorded runs",
		Headers: []string{"When", "Scenario", "Years", "Capacity", "Allocated", "Target"},
	}
	for _, r := range records {
		if !r.Feasible {
			t.Rows = append(t.Rows, []string{r.RecordedAt.Local().Format("2006-01-02 15:04"), r.Scenario, "", r.Reason, "", ""})
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.RecordedAt.Local().Format("2006-01-02 15:04"),
			r.Scenario,
			fmt.Sprintf("%d", r.HorizonYears),
			output.FormatCurrency(r.Capacity, currency),
			output.FormatCurrency(r.TotalAllocated, currency),
			output.FormatCurrency(r.TotalTarget, currency),
		})
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderTable(t))
	return nil
}
