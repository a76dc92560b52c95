package domain

import (
	"github.com/shopspring/decimal"
)

var (
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// YearSurplus is the usable surplus of one plan year.
type YearSurplus struct {
	Year          int             `json:"year"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	AnnualSurplus decimal.Decimal `json:"annual_surplus"`
	Cumulative    decimal.Decimal `json:"cumulative"`
}

// SurplusResult is the output of the surplus calculator and the required
// input of the goal allocator.
type SurplusResult struct {
	BaseSurplus      decimal.Decimal `json:"base_surplus"`
	IncomePenalty    decimal.Decimal `json:"income_penalty"`
	ExpensePenalty   decimal.Decimal `json:"expense_penalty"`
	AdjustedIncome   decimal.Decimal `json:"adjusted_income"`
	AdjustedExpenses decimal.Decimal `json:"adjusted_expenses"`
	AdjustedSurplus  decimal.Decimal `json:"adjusted_surplus"`
	FeasibleCapacity decimal.Decimal `json:"feasible_capacity"`
	HorizonYears     int             `json:"horizon_years"`
	PenaltyFormula   PenaltyFormula  `json:"penalty_formula"`
	CapacityFormula  CapacityFormula `json:"capacity_formula"`
	Schedule         []YearSurplus   `json:"schedule"`
}

// GoalAllocation is the money assigned to one goal.
type GoalAllocation struct {
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Importance decimal.Decimal `json:"importance"`
	Floor      decimal.Decimal `json:"floor"`
	Allocated  decimal.Decimal `json:"allocated"`
}

// Shortfall is the part of the target left unfunded.
func (g GoalAllocation) Shortfall() decimal.Decimal {
	return g.Target.Sub(g.Allocated)
}

// FulfillmentPercent is allocated/target*100, or 0 for a zero target.
func (g GoalAllocation) FulfillmentPercent() decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.Zero
	}
	return g.Allocated.Div(g.Target).Mul(decimalHundred)
}

// MonthlyInstallment spreads the allocation evenly over the horizon.
func (g GoalAllocation) MonthlyInstallment(horizonYears int) decimal.Decimal {
	if horizonYears <= 0 {
		return decimal.Zero
	}
	return g.Allocated.Div(decimal.NewFromInt(int64(horizonYears)).Mul(decimalTwelve))
}

// Allocation is the allocator's result. Goals keep the input order.
type Allocation struct {
	Capacity       decimal.Decimal  `json:"capacity"`
	TotalTarget    decimal.Decimal  `json:"total_target"`
	Total          decimal.Decimal  `json:"total_allocated"`
	Remaining      decimal.Decimal  `json:"remaining"`
	FullySatisfied bool             `json:"fully_satisfied"`
	Goals          []GoalAllocation `json:"goals"`
}

// Map returns goal name to allocated amount.
func (a *Allocation) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.Goals))
	for _, g := range a.Goals {
		out[g.Name] = g.Allocated
	}
	return out
}

// Get returns the allocation for a goal by name.
func (a *Allocation) Get(name string) (GoalAllocation, bool) {
	for _, g := range a.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return GoalAllocation{}, false
}

// GoalPressure describes how far a goal sits above an equal split of capacity.
type GoalPressure struct {
	Name          string          `json:"name"`
	Gap           decimal.Decimal `json:"gap"`
	Stress        decimal.Decimal `json:"stress"`
	MonthlyGap    decimal.Decimal `json:"monthly_gap"`
	ReducePercent decimal.Decimal `json:"reduce_percent"`
	ExtraYears    decimal.Decimal `json:"extra_years"`
}

// PressureReport lists pressure for every goal in input order.
type PressureReport struct {
	EqualShare decimal.Decimal `json:"equal_share"`
	Goals      []GoalPressure  `json:"goals"`
}

// Pressured returns only the goals with a positive gap.
func (p *PressureReport) Pressured() []GoalPressure {
	var out []GoalPressure
	for _, g := range p.Goals {
		if g.Gap.IsPositive() {
			out = append(out, g)
		}
	}
	return out
}

// MaxStress is the largest stress across all goals, zero when none are short.
func (p *PressureReport) MaxStress() decimal.Decimal {
	max := decimal.Zero
	for _, g := range p.Goals {
		if g.Stress.GreaterThan(max) {
			max = g.Stress
		}
	}
	return max
}

// ScenarioResult is one scenario run end to end. When Feasible is false
// Reason holds the precondition that failed and Surplus/Allocation are nil.
type ScenarioResult struct {
	Name       string          `json:"name"`
	Lifestyle  Lifestyle       `json:"lifestyle"`
	Feasible   bool            `json:"feasible"`
	Reason     string          `json:"reason,omitempty"`
	Surplus    *SurplusResult  `json:"surplus,omitempty"`
	Allocation *Allocation     `json:"allocation,omitempty"`
	Pressure   *PressureReport `json:"pressure,omitempty"`
}

// PlanComparison collects the results of every scenario in a plan.
type PlanComparison struct {
	Household   Household        `json:"household"`
	Assumptions Assumptions      `json:"assumptions"`
	Scenarios   []ScenarioResult `json:"scenarios"`
}

// HorizonPoint is one row of a horizon sweep.
type HorizonPoint struct {
	HorizonYears     int             `json:"horizon_years"`
	FeasibleCapacity decimal.Decimal `json:"feasible_capacity"`
	TotalAllocated   decimal.Decimal `json:"total_allocated"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	FullySatisfied   bool            `json:"fully_satisfied"`
}
