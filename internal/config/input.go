package config

import (
	"fmt"
	"os"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan from YAML bytes.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Income and
// expense feasibility is left to the calculator so it can be reported per
// scenario.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Household.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if config.Household.MonthlyExpenses.IsNegative() {
		return fmt.Errorf("monthly expenses cannot be negative")
	}

	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	names := make(map[string]bool, len(config.Goals))
	for i, goal := range config.Goals {
		if err := ip.validateGoal(config.Assumptions.ImportanceScale, &goal); err != nil {
			return fmt.Errorf("goal %d validation failed: %w", i, err)
		}
		if names[goal.Name] {
			return fmt.Errorf("goal %d validation failed: %w: %q", i, domain.ErrDuplicateGoal, goal.Name)
		}
		names[goal.Name] = true
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	scenarioNames := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(config.Assumptions.ImportanceScale, names, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if scenarioNames[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		scenarioNames[scenario.Name] = true
	}

	return nil
}

// validateAssumptions validates the formula profile
func (ip *InputParser) validateAssumptions(assumptions *domain.Assumptions) error {
	if mp := assumptions.MinPercent; mp != nil && (mp.IsNegative() || mp.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("min percent must be between 0 and 1")
	}
	if gr := assumptions.GrowthRate; gr != nil && (gr.LessThan(decimal.NewFromFloat(-0.5)) || gr.GreaterThan(decimal.NewFromFloat(0.5))) {
		return fmt.Errorf("growth rate must be between -50%% and 50%%")
	}
	if _, err := domain.ParsePenaltyFormula(string(assumptions.PenaltyFormula)); err != nil {
		return err
	}
	if _, err := domain.ParseCapacityFormula(string(assumptions.CapacityFormula)); err != nil {
		return err
	}
	if _, _, err := assumptions.ImportanceScale.Bounds(); err != nil {
		return err
	}
	return nil
}

// validateImportance accepts zero (no preference) or a weight on the scale.
func validateImportance(scale domain.ImportanceScale, w decimal.Decimal) error {
	if w.IsZero() {
		return nil
	}
	lo, hi, err := scale.Bounds()
	if err != nil {
		return err
	}
	if w.LessThan(lo) || w.GreaterThan(hi) {
		return fmt.Errorf("importance %s outside scale %s..%s", w.String(), lo.String(), hi.String())
	}
	return nil
}

// validateGoal validates a single goal
func (ip *InputParser) validateGoal(scale domain.ImportanceScale, goal *domain.Goal) error {
	if goal.Name == "" {
		return fmt.Errorf("goal name is required")
	}
	if goal.Target.IsNegative() {
		return fmt.Errorf("%w: %q", domain.ErrNegativeTarget, goal.Name)
	}
	if err := validateImportance(scale, goal.Importance); err != nil {
		return fmt.Errorf("goal %q: %w", goal.Name, err)
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scale domain.ImportanceScale, goals map[string]bool, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if scenario.HorizonYears < domain.MinHorizonYears || scenario.HorizonYears > domain.MaxHorizonYears {
		return fmt.Errorf("horizon years must be between %d and %d", domain.MinHorizonYears, domain.MaxHorizonYears)
	}
	for name, w := range scenario.Importance {
		if !goals[name] {
			return fmt.Errorf("%w: %q", domain.ErrUnknownGoal, name)
		}
		if err := validateImportance(scale, w); err != nil {
			return fmt.Errorf("importance override %q: %w", name, err)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example plan
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{
			MonthlyIncome:   decimal.NewFromInt(100000),
			MonthlyExpenses: decimal.NewFromInt(40000),
		},
		Assumptions: domain.Assumptions{
			PenaltyFormula:  domain.PenaltySubtractive,
			CapacityFormula: domain.CapacityFlat,
			ImportanceScale: domain.ScaleFive,
		},
		Goals: []domain.Goal{
			{Name: "Asset creation", Target: decimal.NewFromInt(4000000), Importance: decimal.NewFromInt(4)},
			{Name: "Emergency fund", Target: decimal.NewFromInt(600000), Importance: decimal.NewFromInt(5)},
			{Name: "Education or loan repayment", Target: decimal.NewFromInt(1500000), Importance: decimal.NewFromInt(3)},
			{Name: "Marriage and family setup", Target: decimal.NewFromInt(2000000), Importance: decimal.NewFromInt(3)},
			{Name: "Social contribution", Target: decimal.NewFromInt(300000), Importance: decimal.NewFromInt(2)},
		},
		Scenarios: []domain.Scenario{
			{
				Name:         "Steady 10 years",
				HorizonYears: 10,
				Lifestyle: domain.Lifestyle{
					JobStability:      domain.JobStable,
					HealthRoutine:     domain.HealthRegular,
					AirQuality:        domain.AirModerate,
					LivingArrangement: domain.LivingWithFamily,
					WorkStyle:         domain.WorkBalanced,
				},
			},
			{
				Name:         "Hustle 10 years",
				HorizonYears: 10,
				Lifestyle: domain.Lifestyle{
					JobStability:      domain.JobSomewhatUnstable,
					HealthRoutine:     domain.HealthIrregular,
					AirQuality:        domain.AirPoor,
					LivingArrangement: domain.LivingAway,
					WorkStyle:         domain.WorkAggressive,
				},
				Importance: map[string]decimal.Decimal{"Asset creation": decimal.NewFromInt(5)},
			},
		},
	}
}
