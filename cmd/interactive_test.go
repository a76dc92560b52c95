package cmd

import (
	"context"
	"testing"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledAnswers() *answers {
	a := newAnswers()
	a.Income = "1,00,000"
	a.Expenses = "₹40000"
	a.House = "2500000"
	a.Land = "1000000"
	a.Vehicle = "500000"
	a.Emergency = "600000"
	a.Education = ""
	a.Marriage = "2000000"
	a.Social = "300000"
	*a.Importance[goalEmergency] = "5"
	return a
}

func TestNewAnswersDefaults(t *testing.T) {
	a := newAnswers()
	assert.Equal(t, "10", a.Horizon)
	assert.Len(t, a.Lifestyle, len(domain.Categories()))
	assert.Equal(t, string(domain.JobStable), a.Lifestyle[0])
	assert.Equal(t, string(domain.LivingWithFamily), a.Lifestyle[3])
	for _, g := range interactiveGoals {
		assert.Equal(t, "3", *a.Importance[g])
	}
}

func TestAnswersPlan(t *testing.T) {
	a := filledAnswers()
	a.Lifestyle[2] = string(domain.AirPoor)
	a.CapacityProfile = string(domain.CapacityGrowth)

	cfg, err := a.plan()
	require.NoError(t, err)
	assert.True(t, cfg.Household.MonthlyIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, cfg.Household.MonthlyExpenses.Equal(decimal.NewFromInt(40000)))

	require.Len(t, cfg.Goals, 5)
	assert.Equal(t, goalAsset, cfg.Goals[0].Name)
	assert.True(t, cfg.Goals[0].Target.Equal(decimal.NewFromInt(4000000)))
	assert.True(t, cfg.Goals[1].Importance.Equal(decimal.NewFromInt(5)))
	assert.True(t, cfg.Goals[2].Target.IsZero())

	require.Len(t, cfg.Scenarios, 1)
	sc := cfg.Scenarios[0]
	assert.Equal(t, 10, sc.HorizonYears)
	assert.Equal(t, domain.AirPoor, sc.Lifestyle.AirQuality)
	assert.Equal(t, domain.CapacityGrowth, cfg.Assumptions.CapacityFormula)
	assert.Equal(t, "0.04", cfg.Assumptions.EffectiveGrowthRate().String())
}

func TestAnswersPlanRunsEndToEnd(t *testing.T) {
	cfg, err := filledAnswers().plan()
	require.NoError(t, err)
	results, err := newEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, 1)
	sc := results.Scenarios[0]
	require.True(t, sc.Feasible)
	// with_family lowers expenses by 5%: (100000 - 38000) * 12 * 10
	assert.True(t, sc.Surplus.FeasibleCapacity.Equal(decimal.NewFromInt(7440000)))
	assert.True(t, sc.Allocation.Total.LessThanOrEqual(sc.Surplus.FeasibleCapacity))
}

func TestAnswersPlanErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(a *answers)
		want   string
	}{
		{"horizon too short", func(a *answers) { a.Horizon = "3" }, "from 5 to 30"},
		{"horizon not a number", func(a *answers) { a.Horizon = "ten" }, "from 5 to 30"},
		{"growth too high", func(a *answers) { a.NominalGrowth = "20" }, "from 0 to 15"},
		{"negative income", func(a *answers) { a.Income = "-5" }, "income: amount cannot be negative"},
		{"bad target", func(a *answers) { a.Land = "lots" }, "land:"},
		{"bad lifestyle", func(a *answers) { a.Lifestyle[4] = "lazy" }, "lazy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := filledAnswers()
			tt.modify(a)
			_, err := a.plan()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, validateAmount(""))
	assert.NoError(t, validateAmount("₹ 1,50,000"))
	assert.Error(t, validateAmount("abc"))
	assert.Error(t, validateAmount("-1"))
	for _, in := range []string{"25k", "1e5", "12abc34", "5 lakh"} {
		assert.Error(t, validateAmount(in), in)
	}
}
