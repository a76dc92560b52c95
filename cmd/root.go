package cmd

import (
	"fmt"
	"os"

	"github.com/rpgo/dreamcalc/internal/calculation"
	"github.com/rpgo/dreamcalc/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagSettings string
	flagLogLevel string
	flagCurrency string
)

// Populated by the root command before any subcommand runs.
var (
	appSettings *config.Settings
	logger      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dreamcalc",
	Short: "Goal-based financial planning calculator",
	Long: `dreamcalc turns monthly income, unavoidable expenses and lifestyle choices
into a savings capacity over a planning horizon, then splits that capacity
across your life goals: every goal gets a minimum share first, and the rest
goes to goals in order of importance.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file (default: ./dreamcalc.yaml or the user config directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Currency symbol for reports")
}

func setup(_ *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return err
	}
	if flagCurrency != "" {
		s.Output.Currency = flagCurrency
	}
	l, err := initializeLogger(s.Logging, flagLogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	appSettings = s
	logger = l
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	_ = logger.Sync()
	return nil
}

// newEngine returns a calculation engine that logs through zap.
func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.NewZapLogger(logger))
	return engine
}
