package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/dreamcalc/internal/calculation"
	"github.com/rpgo/dreamcalc/internal/config"
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePlan = "../../testdata/example_plan.yaml"

func runExample(t *testing.T) *domain.PlanComparison {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlan)
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return results
}

func TestEndToEndCalculation(t *testing.T) {
	results := runExample(t)
	require.Len(t, results.Scenarios, 3)

	capacities := map[string]int64{
		"Steady 10 years": 7248000,
		"Hustle 10 years": 6336000,
		"Short runway":    2160000,
	}
	for _, sc := range results.Scenarios {
		require.True(t, sc.Feasible, sc.Name)
		want, ok := capacities[sc.Name]
		require.True(t, ok, sc.Name)
		assert.True(t, sc.Surplus.FeasibleCapacity.Equal(decimal.NewFromInt(want)), "%s: %s", sc.Name, sc.Surplus.FeasibleCapacity)

		// Nothing is over-allocated and no goal exceeds its target.
		assert.True(t, sc.Allocation.Total.LessThanOrEqual(sc.Surplus.FeasibleCapacity), sc.Name)
		for _, g := range sc.Allocation.Goals {
			assert.True(t, g.Allocated.LessThanOrEqual(g.Target), "%s/%s", sc.Name, g.Name)
			assert.False(t, g.Allocated.IsNegative())
		}
	}
}

func TestSteadyScenarioAllocation(t *testing.T) {
	results := runExample(t)
	steady := results.Scenarios[0]
	want := map[string]int64{
		"Asset creation":              4000000,
		"Emergency fund":              600000,
		"Education or loan repayment": 1500000,
		"Marriage and family setup":   1043000,
		"Social contribution":         105000,
	}
	for name, amount := range steady.Allocation.Map() {
		assert.True(t, amount.Equal(decimal.NewFromInt(want[name])), "%s: %s", name, amount)
	}
	assert.True(t, steady.Allocation.Remaining.IsZero())
	assert.False(t, steady.Allocation.FullySatisfied)

	pressured := steady.Pressure.Pressured()
	names := make([]string, 0, len(pressured))
	for _, p := range pressured {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Asset creation", "Education or loan repayment", "Marriage and family setup"}, names)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(examplePlan)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Scenarios[0].HorizonYears = 40
	assert.Error(t, parser.ValidateConfiguration(cfg))
}

func TestInfeasiblePlanIsReported(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`household:
  monthly_income: 50000
  monthly_expenses: 48000
goals:
  - name: Trip
    target: 100000
    importance: 2
scenarios:
  - name: Calm
    horizon_years: 5
  - name: Smoggy and away
    horizon_years: 5
    lifestyle:
      air_quality: poor
      living_arrangement: away_from_family
`), 0644))

	cfg, err := config.NewInputParser().LoadFromFile(plan)
	require.NoError(t, err)
	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, results.Scenarios, 2)
	assert.True(t, results.Scenarios[0].Feasible)
	assert.True(t, results.Scenarios[0].Allocation.FullySatisfied)
	assert.False(t, results.Scenarios[1].Feasible)
	assert.Equal(t, "no usable surplus", results.Scenarios[1].Reason)
}
