package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/dreamcalc/internal/calculation"
	"github.com/rpgo/dreamcalc/internal/config"
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/rpgo/dreamcalc/internal/output"
	money "github.com/rpgo/dreamcalc/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	goalAsset     = "Asset creation"
	goalEmergency = "Emergency fund"
	goalEducation = "Education or loan repayment"
	goalMarriage  = "Marriage and family setup"
	goalSocial    = "Social contribution"
)

var interactiveGoals = []string{goalAsset, goalEmergency, goalEducation, goalMarriage, goalSocial}

// assumed inflation used to turn nominal salary growth into real growth
var interactiveInflation = decimal.NewFromInt(4)

var flagSavePlan string

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Answer a few questions and see your plan",
	RunE:  runInteractive,
}

func init() {
	interactiveCmd.Flags().StringVar(&flagSavePlan, "save", "", "Save the answers as a plan file")
	rootCmd.AddCommand(interactiveCmd)
}

// answers holds raw form input. Lifestyle is aligned with domain.Categories().
type answers struct {
	Horizon         string
	Income          string
	Expenses        string
	NominalGrowth   string
	CapacityProfile string
	Lifestyle       []string

	House     string
	Land      string
	Vehicle   string
	Emergency string
	Education string
	Marriage  string
	Social    string

	Importance map[string]*string
}

func newAnswers() *answers {
	a := &answers{
		Horizon:         strconv.Itoa(domain.DefaultHorizonYears),
		NominalGrowth:   "8",
		CapacityProfile: string(domain.CapacityFlat),
		Importance:      make(map[string]*string, len(interactiveGoals)),
	}
	for _, cat := range domain.Categories() {
		a.Lifestyle = append(a.Lifestyle, domain.Options(cat)[0].Value)
	}
	for _, g := range interactiveGoals {
		v := "3"
		a.Importance[g] = &v
	}
	return a
}

func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	m, err := money.NewMoneyFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not an amount", s)
	}
	if m.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}
	return m.Decimal, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateHorizon(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < domain.MinHorizonYears || n > domain.MaxHorizonYears {
		return fmt.Errorf("enter a whole number of years from %d to %d", domain.MinHorizonYears, domain.MaxHorizonYears)
	}
	return nil
}

func validateGrowth(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 15 {
		return fmt.Errorf("enter a whole percentage from 0 to 15")
	}
	return nil
}

// plan turns the answers into a single-scenario plan.
func (a *answers) plan() (*domain.Configuration, error) {
	if err := validateHorizon(a.Horizon); err != nil {
		return nil, err
	}
	horizon, _ := strconv.Atoi(strings.TrimSpace(a.Horizon))
	if err := validateGrowth(a.NominalGrowth); err != nil {
		return nil, err
	}
	nominal, _ := strconv.Atoi(strings.TrimSpace(a.NominalGrowth))
	growth := calculation.RealGrowthRate(decimal.NewFromInt(int64(nominal)), interactiveInflation).Div(decimal.NewFromInt(100))

	profile, err := domain.ParseCapacityFormula(a.CapacityProfile)
	if err != nil {
		return nil, err
	}

	parse := func(label, s string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var v decimal.Decimal
		if v, err = parseAmount(s); err != nil {
			err = fmt.Errorf("%s: %w", label, err)
		}
		return v
	}
	income := parse("income", a.Income)
	expenses := parse("expenses", a.Expenses)
	asset := parse("house", a.House).Add(parse("land", a.Land)).Add(parse("vehicle", a.Vehicle))
	targets := map[string]decimal.Decimal{
		goalAsset:     asset,
		goalEmergency: parse(goalEmergency, a.Emergency),
		goalEducation: parse(goalEducation, a.Education),
		goalMarriage:  parse(goalMarriage, a.Marriage),
		goalSocial:    parse(goalSocial, a.Social),
	}
	if err != nil {
		return nil, err
	}

	importance := make(map[string]decimal.Decimal, len(a.Importance))
	for name, v := range a.Importance {
		w, err := decimal.NewFromString(*v)
		if err != nil {
			return nil, fmt.Errorf("importance for %s: %w", name, err)
		}
		importance[name] = w
	}
	goals, err := calculation.BuildGoals(interactiveGoals, targets, importance)
	if err != nil {
		return nil, err
	}

	var lifestyle domain.Lifestyle
	for i, cat := range domain.Categories() {
		if i >= len(a.Lifestyle) {
			break
		}
		if err := lifestyle.Set(cat, a.Lifestyle[i]); err != nil {
			return nil, err
		}
	}

	cfg := &domain.Configuration{
		Household: domain.Household{MonthlyIncome: income, MonthlyExpenses: expenses},
		Assumptions: domain.Assumptions{
			GrowthRate:      &growth,
			CapacityFormula: profile,
			ImportanceScale: domain.ScaleFive,
		},
		Goals: goals,
		Scenarios: []domain.Scenario{{
			Name:         fmt.Sprintf("My plan (%d years)", horizon),
			HorizonYears: horizon,
			Lifestyle:    lifestyle,
		}},
	}
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func selectOptions(opts []domain.Option) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func (a *answers) form(currency string) *huh.Form {
	amount := func(title string, v *string) *huh.Input {
		return huh.NewInput().Title(title + " (" + currency + ")").Placeholder("0").Value(v).Validate(validateAmount)
	}

	lifestyle := make([]huh.Field, 0, len(a.Lifestyle))
	for i, cat := range domain.Categories() {
		lifestyle = append(lifestyle, huh.NewSelect[string]().
			Title(cat.Title()).
			Options(selectOptions(domain.Options(cat))...).
			Value(&a.Lifestyle[i]))
	}

	levels := make([]huh.Option[string], 0, 5)
	for i := 1; i <= 5; i++ {
		levels = append(levels, huh.NewOption(strconv.Itoa(i), strconv.Itoa(i)))
	}
	importance := make([]huh.Field, 0, len(interactiveGoals))
	for _, g := range interactiveGoals {
		importance = append(importance, huh.NewSelect[string]().Title(g).Options(levels...).Value(a.Importance[g]).Inline(true))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("For how many years are you planning your life goals?").Value(&a.Horizon).Validate(validateHorizon),
			amount("Your current monthly income", &a.Income),
			huh.NewInput().Title("Expected annual salary growth % (before inflation)").Value(&a.NominalGrowth).Validate(validateGrowth),
			amount("Your unavoidable monthly living expenses", &a.Expenses),
		).Title("Income details"),
		huh.NewGroup(lifestyle...).Title("Life and lifestyle assumptions"),
		huh.NewGroup(
			amount("House or flat purchase", &a.House),
			amount("Land purchase", &a.Land),
			amount("Vehicle purchase", &a.Vehicle),
			amount("Emergency fund target", &a.Emergency),
			amount("Education or loan repayment target", &a.Education),
			amount("Marriage and family setup target", &a.Marriage),
			amount("Social contribution target", &a.Social),
		).Title("Life goals"),
		huh.NewGroup(importance...).Title("If delayed, how stressful would each goal be? (1-5)"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should savings capacity be projected?").
				Options(
					huh.NewOption("Flat: today's surplus every year", string(domain.CapacityFlat)),
					huh.NewOption("Growth: salary grows above inflation", string(domain.CapacityGrowth)),
				).
				Value(&a.CapacityProfile),
		),
	)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	a := newAnswers()
	if err := a.form(appSettings.Output.Currency).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	cfg, err := a.plan()
	if err != nil {
		return err
	}
	results, err := newEngine().RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := emit(cmd, results, "console", ""); err != nil {
		return err
	}
	if flagSavePlan != "" {
		if err := output.SaveConfiguration(cfg, flagSavePlan); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan saved to %s\n", flagSavePlan)
	}
	if appSettings.RecordLog.Enabled {
		return record(results, appSettings.RecordLog.Path)
	}
	return nil
}
