package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Allocate distributes capacity across goals.
//
// When capacity covers every target, each goal is funded in full. Otherwise
// every goal first receives a floor of minPercent of its target, taken in
// goal order from what remains, and the rest of the pool then tops up goals
// from highest to lowest importance (ties keep goal order) until the pool is
// empty. A goal never receives more than its target and the total never
// exceeds capacity.
func Allocate(capacity decimal.Decimal, goals []domain.Goal, minPercent decimal.Decimal) (*domain.Allocation, error) {
	if capacity.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNegativeCapacity, capacity.StringFixed(2))
	}
	if minPercent.IsNegative() || minPercent.GreaterThan(decimalOne) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidMinPercent, minPercent.String())
	}
	seen := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		if _, dup := seen[g.Name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateGoal, g.Name)
		}
		seen[g.Name] = struct{}{}
		if g.Target.IsNegative() {
			return nil, fmt.Errorf("%w: %q has target %s", domain.ErrNegativeTarget, g.Name, g.Target.StringFixed(2))
		}
	}

	totalTarget := domain.TotalTarget(goals)
	alloc := &domain.Allocation{
		Capacity:    capacity,
		TotalTarget: totalTarget,
		Goals:       make([]domain.GoalAllocation, len(goals)),
	}
	for i, g := range goals {
		alloc.Goals[i] = domain.GoalAllocation{
			Name:       g.Name,
			Target:     g.Target,
			Importance: g.Importance,
			Floor:      decimal.Zero,
			Allocated:  decimal.Zero,
		}
	}

	if capacity.GreaterThanOrEqual(totalTarget) {
		for i := range alloc.Goals {
			alloc.Goals[i].Allocated = alloc.Goals[i].Target
		}
		alloc.Total = totalTarget
		alloc.Remaining = capacity.Sub(totalTarget)
		alloc.FullySatisfied = true
		return alloc, nil
	}

	remaining := capacity

	// Minimum guarantee. Earlier goals can exhaust the pool before later
	// goals get their floor.
	for i := range alloc.Goals {
		ga := &alloc.Goals[i]
		floor := decimal.Min(ga.Target.Mul(minPercent), remaining)
		ga.Floor = floor
		ga.Allocated = floor
		remaining = remaining.Sub(floor)
	}

	// Priority fill with the extra over each floor.
	order := make([]int, len(alloc.Goals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return alloc.Goals[order[a]].Importance.GreaterThan(alloc.Goals[order[b]].Importance)
	})
	for _, i := range order {
		if !remaining.IsPositive() {
			break
		}
		ga := &alloc.Goals[i]
		extra := decimal.Min(ga.Target.Sub(ga.Allocated), remaining)
		ga.Allocated = ga.Allocated.Add(extra)
		remaining = remaining.Sub(extra)
	}

	alloc.Total = capacity.Sub(remaining)
	alloc.Remaining = remaining
	return alloc, nil
}

// BuildGoals assembles goals from the map-shaped inputs of a form: names in
// display order, target per name and importance per name. An importance or
// name without a target is a caller error; a goal without importance gets
// weight zero.
func BuildGoals(names []string, targets, importance map[string]decimal.Decimal) ([]domain.Goal, error) {
	if len(names) != len(targets) {
		return nil, fmt.Errorf("%w: %d names for %d targets", domain.ErrUnknownGoal, len(names), len(targets))
	}
	for name := range importance {
		if _, ok := targets[name]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGoal, name)
		}
	}
	goals := make([]domain.Goal, 0, len(names))
	for _, name := range names {
		target, ok := targets[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGoal, name)
		}
		w, ok := importance[name]
		if !ok {
			w = decimal.Zero
		}
		goals = append(goals, domain.Goal{Name: name, Target: target, Importance: w})
	}
	return goals, nil
}
