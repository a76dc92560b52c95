package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// ConsoleFormatter renders the full styled report for a terminal.
type ConsoleFormatter struct {
	Currency string
}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) WithCurrency(symbol string) Formatter {
	c.Currency = symbol
	return c
}

func (c ConsoleFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(RenderTitle("GOAL-BASED FINANCIAL PLAN"))
	buf.WriteString("\n\n")

	fmt.Fprintf(&buf, "  %s %s   %s %s   %s %s\n\n",
		dimStyle.Render("Income"), valueStyle.Render(FormatCurrency(results.Household.MonthlyIncome, c.Currency)),
		dimStyle.Render("Expenses"), valueStyle.Render(FormatCurrency(results.Household.MonthlyExpenses, c.Currency)),
		dimStyle.Render("Surplus"), valueStyle.Render(FormatCurrency(results.Household.BaseSurplus(), c.Currency)))

	for _, sc := range results.Scenarios {
		c.writeScenario(&buf, sc, results.Assumptions.ImportanceScale)
	}

	if len(results.Scenarios) > 1 {
		buf.WriteString(RenderTable(c.comparisonTable(results)))
		buf.WriteString("\n")
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "  %s %s funds %s of all goals (shortfall %s)\n\n",
			headerStyle.Render("Recommended:"), rec.ScenarioName,
			FormatPercentage(rec.FulfillmentPercent), FormatCurrency(rec.Shortfall, c.Currency))
	}

	buf.WriteString("  " + headerStyle.Render("Assumptions") + "\n")
	for _, line := range GenerateAssumptions(&results.Assumptions) {
		buf.WriteString("  " + dimStyle.Render("• "+line) + "\n")
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeScenario(buf *bytes.Buffer, sc domain.ScenarioResult, scale domain.ImportanceScale) {
	buf.WriteString("  " + headerStyle.Render(strings.ToUpper(sc.Name)) + "\n")
	if !sc.Feasible {
		buf.WriteString("  " + errorStyle.Render("Not feasible: "+sc.Reason) + "\n\n")
		return
	}
	s := sc.Surplus
	buf.WriteString(RenderTable(Table{
		Title:   "Surplus",
		Headers: []string{"Item", "Value"},
		Rows: [][]string{
			{"Base monthly surplus", FormatCurrency(s.BaseSurplus, c.Currency)},
			{"Income penalty", FormatRate(s.IncomePenalty)},
			{"Expense penalty", FormatRate(s.ExpensePenalty)},
			{"Adjusted income", FormatCurrency(s.AdjustedIncome, c.Currency)},
			{"Adjusted expenses", FormatCurrency(s.AdjustedExpenses, c.Currency)},
			{"Adjusted monthly surplus", FormatCurrency(s.AdjustedSurplus, c.Currency)},
			{"---"},
			{fmt.Sprintf("Capacity over %d years", s.HorizonYears), FormatCurrency(s.FeasibleCapacity, c.Currency)},
		},
	}))

	a := sc.Allocation
	rows := make([][]string, 0, len(a.Goals)+2)
	for _, g := range a.Goals {
		rows = append(rows, []string{
			g.Name,
			fmt.Sprintf("%s (%s)", g.Importance.String(), scale.Normalize(g.Importance).Mul(decimalHundred).StringFixed(0)+"%"),
			FormatCurrency(g.Target, c.Currency),
			FormatCurrency(g.Allocated, c.Currency),
			FormatCurrency(g.MonthlyInstallment(s.HorizonYears), c.Currency),
			RenderBar(g.FulfillmentPercent().InexactFloat64(), 20),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", FormatCurrency(a.TotalTarget, c.Currency), FormatCurrency(a.Total, c.Currency), "", RenderBar(fulfillment(a).InexactFloat64(), 20)})
	buf.WriteString(RenderTable(Table{
		Title:   "Allocation",
		Headers: []string{"Goal", "Priority", "Target", "Allocated", "Monthly", "Funded"},
		Rows:    rows,
	}))
	if a.FullySatisfied {
		buf.WriteString("  " + goodStyle.Render("Every goal is fully funded.") + "\n")
	} else if a.Remaining.IsPositive() {
		buf.WriteString("  " + dimStyle.Render("Unallocated: "+FormatCurrency(a.Remaining, c.Currency)) + "\n")
	}

	if rows := pressureRows(sc.Pressure, c.Currency); len(rows) > 0 {
		prow := make([][]string, 0, len(rows))
		for _, r := range rows {
			prow = append(prow, append(r.Cells, RenderBar(r.Share, 12)))
		}
		buf.WriteString(RenderTable(Table{
			Title:   "Pressure (equal share " + FormatCurrency(sc.Pressure.EqualShare, c.Currency) + ")",
			Headers: append(append([]string{}, pressureHeaders...), "Relative stress"),
			Rows:    prow,
		}))
	}
	buf.WriteString("\n")
}

func (c ConsoleFormatter) comparisonTable(results *domain.PlanComparison) Table {
	t := Table{Title: "Scenario comparison", Headers: []string{"Scenario", "Years", "Capacity", "Allocated", "Funded"}}
	for _, sc := range results.Scenarios {
		if !sc.Feasible {
			t.Rows = append(t.Rows, []string{sc.Name, "", warnStyle.Render(sc.Reason), "", ""})
			continue
		}
		t.Rows = append(t.Rows, []string{
			sc.Name,
			fmt.Sprintf("%d", sc.Surplus.HorizonYears),
			FormatCurrency(sc.Surplus.FeasibleCapacity, c.Currency),
			FormatCurrency(sc.Allocation.Total, c.Currency),
			FormatPercentage(fulfillment(sc.Allocation)),
		})
	}
	return t
}
