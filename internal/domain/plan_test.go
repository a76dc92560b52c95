package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormulas(t *testing.T) {
	pf, err := ParsePenaltyFormula("")
	require.NoError(t, err)
	assert.Equal(t, PenaltySubtractive, pf)
	pf, err = ParsePenaltyFormula("multiplicative")
	require.NoError(t, err)
	assert.Equal(t, PenaltyMultiplicative, pf)
	_, err = ParsePenaltyFormula("divisive")
	assert.ErrorIs(t, err, ErrUnknownFormula)

	cf, err := ParseCapacityFormula("")
	require.NoError(t, err)
	assert.Equal(t, CapacityFlat, cf)
	cf, err = ParseCapacityFormula("growth")
	require.NoError(t, err)
	assert.Equal(t, CapacityGrowth, cf)
	_, err = ParseCapacityFormula("compound")
	assert.ErrorIs(t, err, ErrUnknownFormula)
}

func TestImportanceScale_Normalize(t *testing.T) {
	testCases := []struct {
		scale ImportanceScale
		in    int64
		want  string
	}{
		{ScaleFive, 1, "0"},
		{ScaleFive, 3, "0.5"},
		{ScaleFive, 5, "1"},
		{"", 5, "1"},
		{ScaleTen, 10, "1"},
		{ScaleHundred, 55, "0.5"},
		{ScaleHundred, 5, "0"},
		{ScaleFive, 9, "1"},
		{"0-3", 2, "0"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d", tc.scale, tc.in), func(t *testing.T) {
			got := tc.scale.Normalize(decimal.NewFromInt(tc.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestAssumptions_Effective(t *testing.T) {
	var a Assumptions
	assert.True(t, a.EffectiveMinPercent().Equal(DefaultMinPercent))
	assert.True(t, a.EffectiveGrowthRate().Equal(DefaultGrowthRate))

	mp := decimal.NewFromFloat(0.2)
	gr := decimal.Zero
	a = Assumptions{MinPercent: &mp, GrowthRate: &gr}
	assert.True(t, a.EffectiveMinPercent().Equal(mp))
	assert.True(t, a.EffectiveGrowthRate().IsZero())
}

func TestScenario_GoalsFor(t *testing.T) {
	base := []Goal{
		{Name: "A", Target: decimal.NewFromInt(10), Importance: decimal.NewFromInt(1)},
		{Name: "B", Target: decimal.NewFromInt(20), Importance: decimal.NewFromInt(2)},
	}
	sc := Scenario{Name: "s", Importance: map[string]decimal.Decimal{"A": decimal.NewFromInt(5)}}

	goals, err := sc.GoalsFor(base)
	require.NoError(t, err)
	assert.True(t, goals[0].Importance.Equal(decimal.NewFromInt(5)))
	assert.True(t, base[0].Importance.Equal(decimal.NewFromInt(1)), "base goals must not change")

	sc.Importance = map[string]decimal.Decimal{"C": decimal.NewFromInt(5)}
	_, err = sc.GoalsFor(base)
	assert.ErrorIs(t, err, ErrUnknownGoal)

	assert.True(t, TotalTarget(base).Equal(decimal.NewFromInt(30)))
	assert.True(t, Household{MonthlyIncome: decimal.NewFromInt(9), MonthlyExpenses: decimal.NewFromInt(4)}.BaseSurplus().Equal(decimal.NewFromInt(5)))
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("scenario x: %w", ErrExpensesExceedIncome)
	assert.True(t, IsInfeasible(wrapped))
	assert.Equal(t, "expenses exceed income", Reason(wrapped))
	assert.Equal(t, "income required", Reason(ErrIncomeRequired))
	assert.Equal(t, "no usable surplus", Reason(ErrNoUsableSurplus))
	assert.Equal(t, "", Reason(nil))

	other := errors.New("boom")
	assert.False(t, IsInfeasible(other))
	assert.Equal(t, "boom", Reason(other))
	assert.False(t, IsInfeasible(ErrNegativeCapacity))
}
