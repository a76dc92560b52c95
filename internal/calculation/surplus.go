package calculation

import (
	"fmt"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
)

// SurplusInput is everything the surplus calculator needs for one run.
type SurplusInput struct {
	Household       domain.Household
	Lifestyle       domain.Lifestyle
	HorizonYears    int
	PenaltyFormula  domain.PenaltyFormula
	CapacityFormula domain.CapacityFormula
	GrowthRate      decimal.Decimal
}

// SurplusCalculator derives the feasible capacity of a household over a
// planning horizon.
type SurplusCalculator struct {
	Logger Logger
}

// NewSurplusCalculator creates a calculator with a no-op logger.
func NewSurplusCalculator() *SurplusCalculator {
	return &SurplusCalculator{Logger: NopLogger{}}
}

// Calculate validates the inputs, applies lifestyle penalties and projects
// the usable surplus over the horizon. Precondition failures are returned as
// errors wrapping domain.ErrInfeasible; no partial result is produced.
func (sc *SurplusCalculator) Calculate(in SurplusInput) (*domain.SurplusResult, error) {
	penaltyFormula, err := domain.ParsePenaltyFormula(string(in.PenaltyFormula))
	if err != nil {
		return nil, err
	}
	capacityFormula, err := domain.ParseCapacityFormula(string(in.CapacityFormula))
	if err != nil {
		return nil, err
	}
	if in.HorizonYears <= 0 {
		return nil, fmt.Errorf("%w: got %d years", domain.ErrInvalidHorizon, in.HorizonYears)
	}

	income := in.Household.MonthlyIncome
	expenses := in.Household.MonthlyExpenses
	if !income.IsPositive() {
		return nil, domain.ErrIncomeRequired
	}
	base := income.Sub(expenses)
	if !base.IsPositive() {
		return nil, fmt.Errorf("%w: income %s, expenses %s", domain.ErrExpensesExceedIncome, income.StringFixed(2), expenses.StringFixed(2))
	}

	penalties := in.Lifestyle.Penalties()
	res := &domain.SurplusResult{
		BaseSurplus:     base,
		IncomePenalty:   penalties.Income,
		ExpensePenalty:  penalties.Expense,
		HorizonYears:    in.HorizonYears,
		PenaltyFormula:  penaltyFormula,
		CapacityFormula: capacityFormula,
	}

	res.AdjustedIncome = income.Mul(decimalOne.Sub(penalties.Income))
	switch penaltyFormula {
	case domain.PenaltyMultiplicative:
		res.AdjustedSurplus = base.Mul(decimalOne.Sub(penalties.Income)).Mul(decimalOne.Sub(penalties.Expense))
		// Expenses implied by the multiplied surplus, so the growth
		// profile starts from the same first-year figure.
		res.AdjustedExpenses = res.AdjustedIncome.Sub(res.AdjustedSurplus)
	default:
		res.AdjustedExpenses = expenses.Mul(decimalOne.Add(penalties.Expense))
		res.AdjustedSurplus = res.AdjustedIncome.Sub(res.AdjustedExpenses)
	}

	sc.logger().Debugf("surplus: base=%s income_penalty=%s expense_penalty=%s adjusted=%s",
		base.StringFixed(2), penalties.Income.String(), penalties.Expense.String(), res.AdjustedSurplus.StringFixed(2))

	if !res.AdjustedSurplus.IsPositive() {
		return nil, fmt.Errorf("%w: adjusted monthly surplus %s", domain.ErrNoUsableSurplus, res.AdjustedSurplus.StringFixed(2))
	}

	switch capacityFormula {
	case domain.CapacityGrowth:
		res.Schedule = growthSchedule(res.AdjustedIncome, res.AdjustedExpenses, in.GrowthRate, in.HorizonYears)
	default:
		res.Schedule = flatSchedule(res.AdjustedIncome, res.AdjustedSurplus, in.HorizonYears)
	}
	res.FeasibleCapacity = decimal.Zero
	if n := len(res.Schedule); n > 0 {
		res.FeasibleCapacity = res.Schedule[n-1].Cumulative
	}

	sc.logger().Infof("feasible capacity over %d years (%s): %s", in.HorizonYears, capacityFormula, res.FeasibleCapacity.StringFixed(2))
	return res, nil
}

func (sc *SurplusCalculator) logger() Logger {
	if sc.Logger == nil {
		return NopLogger{}
	}
	return sc.Logger
}

// flatSchedule repeats the adjusted surplus every year.
func flatSchedule(monthlyIncome, monthlySurplus decimal.Decimal, years int) []domain.YearSurplus {
	annual := decimal.Max(monthlySurplus.Mul(decimalTwelve), decimal.Zero)
	out := make([]domain.YearSurplus, 0, years)
	cumulative := decimal.Zero
	for y := 1; y <= years; y++ {
		cumulative = cumulative.Add(annual)
		out = append(out, domain.YearSurplus{Year: y, MonthlyIncome: monthlyIncome, AnnualSurplus: annual, Cumulative: cumulative})
	}
	return out
}

// growthSchedule grows income each year while holding expenses flat. A
// negative year contributes zero rather than reducing the total.
func growthSchedule(monthlyIncome, monthlyExpenses, growthRate decimal.Decimal, years int) []domain.YearSurplus {
	out := make([]domain.YearSurplus, 0, years)
	salary := monthlyIncome
	factor := decimalOne.Add(growthRate)
	cumulative := decimal.Zero
	for y := 1; y <= years; y++ {
		annual := decimal.Max(salary.Sub(monthlyExpenses).Mul(decimalTwelve), decimal.Zero)
		cumulative = cumulative.Add(annual)
		out = append(out, domain.YearSurplus{Year: y, MonthlyIncome: salary, AnnualSurplus: annual, Cumulative: cumulative})
		salary = salary.Mul(factor)
	}
	return out
}

// RealGrowthRate converts nominal salary growth into growth above
// inflation, floored at zero.
func RealGrowthRate(nominal, inflation decimal.Decimal) decimal.Decimal {
	return decimal.Max(nominal.Sub(inflation), decimal.Zero)
}
