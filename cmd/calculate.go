package cmd

import (
	"errors"
	"fmt"

	"github.com/rpgo/dreamcalc/internal/config"
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/rpgo/dreamcalc/internal/output"
	"github.com/rpgo/dreamcalc/internal/recordlog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagPlan      string
	flagFormat    string
	flagOutputDir string
	flagRecord    bool
)

var errNoFeasibleScenario = errors.New("no scenario is feasible")

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate capacity and goal allocation for every scenario in a plan",
	Example: `  dreamcalc calculate -c plan.yaml
  dreamcalc calculate -c plan.yaml -f pdf -o reports`,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&flagPlan, "config", "c", "", "Plan file (YAML)")
	calculateCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format (see `dreamcalc formats`)")
	calculateCmd.Flags().StringVarP(&flagOutputDir, "output", "o", "", "Directory for file reports")
	calculateCmd.Flags().BoolVar(&flagRecord, "record", false, "Append the results to the record log")
	_ = calculateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(calculateCmd)
}

func loadPlan(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded plan",
		zap.String("path", path),
		zap.Int("goals", len(cfg.Goals)),
		zap.Int("scenarios", len(cfg.Scenarios)),
	)
	return cfg, nil
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPlan(flagPlan)
	if err != nil {
		return err
	}
	results, err := newEngine().RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	format := flagFormat
	if format == "" {
		format = appSettings.Output.Format
	}
	dir := flagOutputDir
	if dir == "" {
		dir = appSettings.Output.Directory
	}
	if err := emit(cmd, results, format, dir); err != nil {
		return err
	}

	if flagRecord || appSettings.RecordLog.Enabled {
		if err := record(results, appSettings.RecordLog.Path); err != nil {
			return err
		}
	}

	for _, sc := range results.Scenarios {
		if sc.Feasible {
			return nil
		}
	}
	return errNoFeasibleScenario
}

// emit prints terminal formats and writes the rest to dir.
func emit(cmd *cobra.Command, results *domain.PlanComparison, format, dir string) error {
	f, err := output.NewFormatter(format, appSettings.Output.Currency)
	if err != nil {
		return err
	}
	if output.IsTerminalFormat(format) {
		data, err := f.Format(results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	path, err := output.WriteFormatted(f, results, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

func record(results *domain.PlanComparison, path string) error {
	w, err := recordlog.NewWriter(path)
	if err != nil {
		return err
	}
	recs, err := w.AppendComparison(results)
	if err != nil {
		return err
	}
	logger.Info("recorded plan run", zap.String("path", w.Path()), zap.Int("records", len(recs)))
	return nil
}
