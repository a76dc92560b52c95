package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// ConsoleLiteFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleLiteFormatter struct {
	Currency string
}

func (c ConsoleLiteFormatter) Name() string      { return "console-lite" }
func (c ConsoleLiteFormatter) Extension() string { return "txt" }

func (c ConsoleLiteFormatter) WithCurrency(symbol string) Formatter {
	c.Currency = symbol
	return c
}

func (c ConsoleLiteFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "GOAL PLAN SUMMARY")
	fmt.Fprintln(&buf, "=================")
	fmt.Fprintf(&buf, "Monthly income: %s  Monthly expenses: %s\n",
		FormatCurrency(results.Household.MonthlyIncome, c.Currency),
		FormatCurrency(results.Household.MonthlyExpenses, c.Currency))
	fmt.Fprintln(&buf)
	for _, sc := range results.Scenarios {
		if !sc.Feasible {
			fmt.Fprintf(&buf, "%s: not feasible (%s)\n", sc.Name, sc.Reason)
			continue
		}
		a := sc.Allocation
		fmt.Fprintf(&buf, "%s: Capacity=%s Allocated=%s Target=%s Funded=%s\n",
			sc.Name,
			FormatCurrency(sc.Surplus.FeasibleCapacity, c.Currency),
			FormatCurrency(a.Total, c.Currency),
			FormatCurrency(a.TotalTarget, c.Currency),
			FormatPercentage(fulfillment(a)),
		)
		for _, g := range a.Goals {
			fmt.Fprintf(&buf, "  %s: %s of %s (%s)\n", g.Name,
				FormatCurrency(g.Allocated, c.Currency),
				FormatCurrency(g.Target, c.Currency),
				FormatPercentage(g.FulfillmentPercent()))
		}
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (%s funded, shortfall %s)\n", rec.ScenarioName,
			FormatPercentage(rec.FulfillmentPercent), FormatCurrency(rec.Shortfall, c.Currency))
	}
	return buf.Bytes(), nil
}
