package cmd

import (
	"fmt"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/rpgo/dreamcalc/internal/output"
	"github.com/spf13/cobra"
)

var (
	flagSweepScenario string
	flagSweepFrom     int
	flagSweepTo       int
	flagSweepStep     int
)

var horizonsCmd = &cobra.Command{
	Use:   "horizons",
	Short: "Show how capacity and shortfall change with the planning horizon",
	RunE:  runHorizons,
}

func init() {
	horizonsCmd.Flags().StringVarP(&flagPlan, "config", "c", "", "Plan file (YAML)")
	horizonsCmd.Flags().StringVarP(&flagSweepScenario, "scenario", "s", "", "Scenario name (default: first scenario)")
	horizonsCmd.Flags().IntVar(&flagSweepFrom, "from", domain.MinHorizonYears, "First horizon in years")
	horizonsCmd.Flags().IntVar(&flagSweepTo, "to", domain.MaxHorizonYears, "Last horizon in years")
	horizonsCmd.Flags().IntVar(&flagSweepStep, "step", 5, "Step in years")
	_ = horizonsCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(horizonsCmd)
}

func findScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		return &cfg.Scenarios[0], nil
	}
	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name == name {
			return &cfg.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found in plan", name)
}

func runHorizons(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPlan(flagPlan)
	if err != nil {
		return err
	}
	sc, err := findScenario(cfg, flagSweepScenario)
	if err != nil {
		return err
	}
	points, err := newEngine().SweepHorizons(cmd.Context(), cfg, sc, flagSweepFrom, flagSweepTo, flagSweepStep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderHorizons(sc.Name, points, appSettings.Output.Currency))
	if years, ok := output.FirstFullyFunded(points); ok {
		fmt.Fprintf(out, "\n  All goals are fully funded from %d years.\n", years)
	} else {
		fmt.Fprintln(out, "\n  No horizon in this range funds every goal.")
	}
	return nil
}
