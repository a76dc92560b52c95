package calculation

import (
	"math/rand"
	"testing"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goal(name string, target, importance int64) domain.Goal {
	return domain.Goal{Name: name, Target: decimal.NewFromInt(target), Importance: decimal.NewFromInt(importance)}
}

func allocated(t *testing.T, a *domain.Allocation, name string) decimal.Decimal {
	t.Helper()
	g, ok := a.Get(name)
	require.True(t, ok, "goal %s missing from allocation", name)
	return g.Allocated
}

func TestAllocate_PriorityFillExample(t *testing.T) {
	goals := []domain.Goal{goal("A", 1000000, 10), goal("B", 1000000, 90)}

	a, err := Allocate(decimal.NewFromInt(1500000), goals, domain.DefaultMinPercent)
	require.NoError(t, err)

	assert.False(t, a.FullySatisfied)
	ga, _ := a.Get("A")
	gb, _ := a.Get("B")
	assertDecimal(t, "350000", ga.Floor)
	assertDecimal(t, "350000", gb.Floor)
	assertDecimal(t, "500000", ga.Allocated)
	assertDecimal(t, "1000000", gb.Allocated)
	assertDecimal(t, "50", ga.FulfillmentPercent())
	assertDecimal(t, "100", gb.FulfillmentPercent())
	assertDecimal(t, "1500000", a.Total)
	assertDecimal(t, "0", a.Remaining)

	// Input order is preserved in the result.
	assert.Equal(t, "A", a.Goals[0].Name)
	assert.Equal(t, "B", a.Goals[1].Name)
}

func TestAllocate_FullSatisfactionShortCircuits(t *testing.T) {
	goals := []domain.Goal{goal("House", 2000000, 3), goal("Emergency", 300000, 5), goal("Car", 0, 1)}

	a, err := Allocate(decimal.NewFromInt(3000000), goals, domain.DefaultMinPercent)
	require.NoError(t, err)

	assert.True(t, a.FullySatisfied)
	for _, g := range goals {
		assertDecimal(t, g.Target.String(), allocated(t, a, g.Name))
	}
	for _, g := range a.Goals {
		assert.True(t, g.Floor.IsZero(), "floor phase should be skipped")
	}
	assertDecimal(t, "700000", a.Remaining)
}

func TestAllocate_ExactCapacityIsFullySatisfied(t *testing.T) {
	goals := []domain.Goal{goal("A", 100, 1), goal("B", 200, 2)}
	a, err := Allocate(decimal.NewFromInt(300), goals, domain.DefaultMinPercent)
	require.NoError(t, err)
	assert.True(t, a.FullySatisfied)
	assertDecimal(t, "0", a.Remaining)
}

func TestAllocate_FloorsAreOrderDependent(t *testing.T) {
	goals := []domain.Goal{goal("A", 1000000, 1), goal("B", 1000000, 1), goal("C", 100000, 9)}

	a, err := Allocate(decimal.NewFromInt(500000), goals, domain.DefaultMinPercent)
	require.NoError(t, err)

	assertDecimal(t, "350000", allocated(t, a, "A"))
	assertDecimal(t, "150000", allocated(t, a, "B"))
	assertDecimal(t, "0", allocated(t, a, "C"))
	assertDecimal(t, "500000", a.Total)
}

func TestAllocate_TiesKeepGoalOrder(t *testing.T) {
	goals := []domain.Goal{goal("First", 100, 5), goal("Second", 100, 5)}

	a, err := Allocate(decimal.NewFromInt(150), goals, decimal.Zero)
	require.NoError(t, err)

	assertDecimal(t, "100", allocated(t, a, "First"))
	assertDecimal(t, "50", allocated(t, a, "Second"))
}

func TestAllocate_DegenerateInputs(t *testing.T) {
	a, err := Allocate(decimal.NewFromInt(1000), nil, domain.DefaultMinPercent)
	require.NoError(t, err)
	assert.Empty(t, a.Goals)
	assert.Empty(t, a.Map())

	// Zero weights still receive leftover capacity, in goal order.
	goals := []domain.Goal{goal("A", 100, 0), goal("B", 100, 0)}
	a, err = Allocate(decimal.NewFromInt(120), goals, domain.DefaultMinPercent)
	require.NoError(t, err)
	assertDecimal(t, "85", allocated(t, a, "A"))
	assertDecimal(t, "35", allocated(t, a, "B"))

	a, err = Allocate(decimal.Zero, goals, domain.DefaultMinPercent)
	require.NoError(t, err)
	assertDecimal(t, "0", a.Total)
}

func TestAllocate_ContractViolations(t *testing.T) {
	goals := []domain.Goal{goal("A", 100, 1)}

	_, err := Allocate(decimal.NewFromInt(-1), goals, domain.DefaultMinPercent)
	assert.ErrorIs(t, err, domain.ErrNegativeCapacity)

	_, err = Allocate(decimal.NewFromInt(10), goals, decimal.NewFromFloat(1.5))
	assert.ErrorIs(t, err, domain.ErrInvalidMinPercent)

	_, err = Allocate(decimal.NewFromInt(10), []domain.Goal{goal("A", 1, 1), goal("A", 2, 2)}, domain.DefaultMinPercent)
	assert.ErrorIs(t, err, domain.ErrDuplicateGoal)

	_, err = Allocate(decimal.NewFromInt(10), []domain.Goal{goal("A", -1, 1)}, domain.DefaultMinPercent)
	assert.ErrorIs(t, err, domain.ErrNegativeTarget)
}

func TestAllocate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := rng.Intn(6) + 1
		goals := make([]domain.Goal, n)
		for j := range goals {
			goals[j] = goal(string(rune('A'+j)), int64(rng.Intn(2000000)), int64(rng.Intn(10)+1))
		}
		total := domain.TotalTarget(goals)
		capacity := decimal.NewFromInt(int64(rng.Intn(3000000)))

		a, err := Allocate(capacity, goals, domain.DefaultMinPercent)
		require.NoError(t, err)

		assert.True(t, a.Total.LessThanOrEqual(capacity), "overspent pool")
		sum := decimal.Zero
		for _, g := range a.Goals {
			assert.False(t, g.Allocated.IsNegative())
			assert.True(t, g.Allocated.LessThanOrEqual(g.Target), "goal %s above target", g.Name)
			assert.True(t, g.Allocated.GreaterThanOrEqual(g.Floor))
			sum = sum.Add(g.Allocated)
		}
		assert.True(t, sum.Equal(a.Total))

		if capacity.GreaterThanOrEqual(total) {
			assert.True(t, a.FullySatisfied)
			for _, g := range a.Goals {
				assert.True(t, g.Allocated.Equal(g.Target))
			}
		} else {
			assert.True(t, a.Total.Equal(capacity), "money left unspent while goals are short")
		}

		again, err := Allocate(capacity, goals, domain.DefaultMinPercent)
		require.NoError(t, err)
		assert.Equal(t, a, again)
	}
}

func TestAllocate_PriorityMonotonicity(t *testing.T) {
	capacity := decimal.NewFromInt(1500000)
	prev := decimal.Zero
	for w := int64(1); w <= 10; w++ {
		goals := []domain.Goal{goal("A", 1000000, w), goal("B", 1000000, 5), goal("C", 1000000, 3)}
		a, err := Allocate(capacity, goals, domain.DefaultMinPercent)
		require.NoError(t, err)
		got := allocated(t, a, "A")
		assert.True(t, got.GreaterThanOrEqual(prev), "importance %d lowered allocation from %s to %s", w, prev, got)
		prev = got
	}
}

func TestAllocation_DerivedFigures(t *testing.T) {
	a, err := Allocate(decimal.NewFromInt(1200000), []domain.Goal{goal("A", 1200000, 1)}, domain.DefaultMinPercent)
	require.NoError(t, err)
	g, _ := a.Get("A")
	assertDecimal(t, "10000", g.MonthlyInstallment(10))
	assertDecimal(t, "0", g.MonthlyInstallment(0))
	assertDecimal(t, "0", g.Shortfall())

	zero := domain.GoalAllocation{Target: decimal.Zero, Allocated: decimal.Zero}
	assertDecimal(t, "0", zero.FulfillmentPercent())
}

func TestBuildGoals(t *testing.T) {
	targets := map[string]decimal.Decimal{"A": decimal.NewFromInt(100), "B": decimal.NewFromInt(200)}
	importance := map[string]decimal.Decimal{"B": decimal.NewFromInt(4)}

	goals, err := BuildGoals([]string{"B", "A"}, targets, importance)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "B", goals[0].Name)
	assertDecimal(t, "4", goals[0].Importance)
	assertDecimal(t, "0", goals[1].Importance)

	_, err = BuildGoals([]string{"A", "B"}, targets, map[string]decimal.Decimal{"Z": decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrUnknownGoal)

	_, err = BuildGoals([]string{"A", "C"}, targets, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownGoal)
}
