package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Horizon bounds accepted from plan files.
const (
	MinHorizonYears     = 5
	MaxHorizonYears     = 30
	DefaultHorizonYears = 10
)

var (
	// DefaultMinPercent is the share of each target reserved before priority fill.
	DefaultMinPercent = decimal.NewFromFloat(0.35)
	// DefaultGrowthRate roughly offsets inflation, so real growth is near zero.
	DefaultGrowthRate = decimal.NewFromFloat(0.04)
)

// PenaltyFormula selects how lifestyle penalties turn into an adjusted surplus.
type PenaltyFormula string

const (
	// PenaltySubtractive: income*(1-ip) - expenses*(1+ep)
	PenaltySubtractive PenaltyFormula = "subtractive"
	// PenaltyMultiplicative: (income-expenses)*(1-ip)*(1-ep)
	PenaltyMultiplicative PenaltyFormula = "multiplicative"
)

// CapacityFormula selects how the adjusted surplus becomes a horizon total.
type CapacityFormula string

const (
	CapacityFlat   CapacityFormula = "flat"
	CapacityGrowth CapacityFormula = "growth"
)

func ParsePenaltyFormula(s string) (PenaltyFormula, error) {
	switch PenaltyFormula(s) {
	case "", PenaltySubtractive:
		return PenaltySubtractive, nil
	case PenaltyMultiplicative:
		return PenaltyMultiplicative, nil
	}
	return "", fmt.Errorf("%w: penalty formula %q (want subtractive or multiplicative)", ErrUnknownFormula, s)
}

func ParseCapacityFormula(s string) (CapacityFormula, error) {
	switch CapacityFormula(s) {
	case "", CapacityFlat:
		return CapacityFlat, nil
	case CapacityGrowth:
		return CapacityGrowth, nil
	}
	return "", fmt.Errorf("%w: capacity formula %q (want flat or growth)", ErrUnknownFormula, s)
}

// ImportanceScale is the range importance weights are expressed on.
type ImportanceScale string

const (
	ScaleFive    ImportanceScale = "1-5"
	ScaleTen     ImportanceScale = "1-10"
	ScaleHundred ImportanceScale = "10-100"
)

// Bounds returns the inclusive weight range for the scale.
func (s ImportanceScale) Bounds() (lo, hi decimal.Decimal, err error) {
	switch s {
	case "", ScaleFive:
		return decimal.NewFromInt(1), decimal.NewFromInt(5), nil
	case ScaleTen:
		return decimal.NewFromInt(1), decimal.NewFromInt(10), nil
	case ScaleHundred:
		return decimal.NewFromInt(10), decimal.NewFromInt(100), nil
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("unknown importance scale %q", string(s))
}

// Normalize maps a weight on this scale onto [0, 1]. Weights outside the
// scale are clamped. Ordering between weights is preserved.
func (s ImportanceScale) Normalize(w decimal.Decimal) decimal.Decimal {
	lo, hi, err := s.Bounds()
	if err != nil || !hi.GreaterThan(lo) {
		return decimal.Zero
	}
	n := w.Sub(lo).Div(hi.Sub(lo))
	if n.IsNegative() {
		return decimal.Zero
	}
	if n.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return n
}

// Household holds the monthly money flows of the planner.
type Household struct {
	MonthlyIncome   decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
}

// BaseSurplus is income minus expenses before lifestyle adjustments.
func (h Household) BaseSurplus() decimal.Decimal {
	return h.MonthlyIncome.Sub(h.MonthlyExpenses)
}

// Assumptions carries the formula profile used for every scenario.
type Assumptions struct {
	MinPercent      *decimal.Decimal `yaml:"min_percent,omitempty" json:"min_percent,omitempty"`
	GrowthRate      *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
	PenaltyFormula  PenaltyFormula   `yaml:"penalty_formula,omitempty" json:"penalty_formula,omitempty"`
	CapacityFormula CapacityFormula  `yaml:"capacity_formula,omitempty" json:"capacity_formula,omitempty"`
	ImportanceScale ImportanceScale  `yaml:"importance_scale,omitempty" json:"importance_scale,omitempty"`
}

// EffectiveMinPercent returns MinPercent or the default when unset.
func (a Assumptions) EffectiveMinPercent() decimal.Decimal {
	if a.MinPercent == nil {
		return DefaultMinPercent
	}
	return *a.MinPercent
}

// EffectiveGrowthRate returns GrowthRate or the default when unset.
func (a Assumptions) EffectiveGrowthRate() decimal.Decimal {
	if a.GrowthRate == nil {
		return DefaultGrowthRate
	}
	return *a.GrowthRate
}

// Goal is a named savings target. Importance is higher for goals that would
// be more stressful to delay.
type Goal struct {
	Name       string          `yaml:"name" json:"name"`
	Target     decimal.Decimal `yaml:"target" json:"target"`
	Importance decimal.Decimal `yaml:"importance" json:"importance"`
}

// Scenario is one set of lifestyle choices over one horizon. Importance
// overrides replace goal weights by name for this scenario only.
type Scenario struct {
	Name         string                     `yaml:"name" json:"name"`
	HorizonYears int                        `yaml:"horizon_years" json:"horizon_years"`
	Lifestyle    Lifestyle                  `yaml:"lifestyle,omitempty" json:"lifestyle,omitempty"`
	Importance   map[string]decimal.Decimal `yaml:"importance,omitempty" json:"importance,omitempty"`
}

// GoalsFor returns a copy of base with this scenario's importance overrides
// applied. An override naming a goal that does not exist is an error.
func (s Scenario) GoalsFor(base []Goal) ([]Goal, error) {
	out := make([]Goal, len(base))
	copy(out, base)
	if len(s.Importance) == 0 {
		return out, nil
	}
	idx := make(map[string]int, len(out))
	for i, g := range out {
		idx[g.Name] = i
	}
	for name, w := range s.Importance {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("scenario %q: %w: %q", s.Name, ErrUnknownGoal, name)
		}
		out[i].Importance = w
	}
	return out, nil
}

// Configuration is a complete plan file.
type Configuration struct {
	Household   Household   `yaml:"household" json:"household"`
	Assumptions Assumptions `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
	Goals       []Goal      `yaml:"goals" json:"goals"`
	Scenarios   []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// TotalTarget sums every goal target.
func TotalTarget(goals []Goal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		total = total.Add(g.Target)
	}
	return total
}
