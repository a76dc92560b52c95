package output

import (
	"sort"

	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName       string
	TotalAllocated     decimal.Decimal
	Shortfall          decimal.Decimal
	FulfillmentPercent decimal.Decimal
}

// fulfillment returns total allocated as a percentage of total target.
func fulfillment(a *domain.Allocation) decimal.Decimal {
	if a == nil || !a.TotalTarget.IsPositive() {
		return decimal.Zero
	}
	return a.Total.Div(a.TotalTarget).Mul(decimalHundred)
}

// AnalyzeScenarios picks the feasible scenario that funds the largest share
// of the goal targets. Ties keep the earlier scenario.
func AnalyzeScenarios(results *domain.PlanComparison) Recommendation {
	type ranked struct {
		sc  domain.ScenarioResult
		pct decimal.Decimal
	}
	var ranks []ranked
	for _, sc := range results.Scenarios {
		if !sc.Feasible || sc.Allocation == nil {
			continue
		}
		ranks = append(ranks, ranked{sc, fulfillment(sc.Allocation)})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].pct.GreaterThan(ranks[j].pct) })
	best := ranks[0]
	return Recommendation{
		ScenarioName:       best.sc.Name,
		TotalAllocated:     best.sc.Allocation.Total,
		Shortfall:          best.sc.Allocation.TotalTarget.Sub(best.sc.Allocation.Total),
		FulfillmentPercent: best.pct,
	}
}
