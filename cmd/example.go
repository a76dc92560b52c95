package cmd

import (
	"fmt"

	"github.com/rpgo/dreamcalc/internal/config"
	"github.com/rpgo/dreamcalc/internal/output"
	"github.com/spf13/cobra"
)

var flagExampleOut string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example plan file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.NewInputParser().CreateExampleConfiguration()
		if flagExampleOut != "" {
			if err := output.SaveConfiguration(cfg, flagExampleOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", flagExampleOut)
			return nil
		}
		data, err := output.MarshalConfiguration(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a plan file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadPlan(flagPlan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan is valid: %d goals, %d scenarios\n", len(cfg.Goals), len(cfg.Scenarios))
		return nil
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats and their aliases",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Formats:")
		for _, name := range output.AvailableFormatterNames() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "Aliases:")
		for _, alias := range output.AvailableFormatAliases() {
			fmt.Fprintf(out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
		}
	},
}

func init() {
	exampleCmd.Flags().StringVarP(&flagExampleOut, "output", "o", "", "Write the example to a file instead of stdout")
	validateCmd.Flags().StringVarP(&flagPlan, "config", "c", "", "Plan file (YAML)")
	_ = validateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(exampleCmd, validateCmd, formatsCmd)
}
