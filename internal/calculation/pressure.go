package calculation

import (
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// AnalyzePressure compares each goal with an equal split of capacity and
// reports how much of the goal sits above that split, weighted by importance,
// together with the trade-offs that would close the gap.
func AnalyzePressure(capacity, adjustedSurplus decimal.Decimal, horizonYears int, goals []domain.Goal) *domain.PressureReport {
	report := &domain.PressureReport{EqualShare: decimal.Zero}
	if len(goals) == 0 {
		return report
	}
	report.EqualShare = capacity.Div(decimal.NewFromInt(int64(len(goals))))
	months := decimal.NewFromInt(int64(horizonYears)).Mul(decimalTwelve)
	annualSurplus := adjustedSurplus.Mul(decimalTwelve)

	for _, g := range goals {
		gap := decimal.Max(g.Target.Sub(report.EqualShare), decimal.Zero)
		p := domain.GoalPressure{
			Name:          g.Name,
			Gap:           gap,
			Stress:        gap.Mul(g.Importance),
			MonthlyGap:    decimal.Zero,
			ReducePercent: decimal.Zero,
			ExtraYears:    decimal.Zero,
		}
		if months.IsPositive() {
			p.MonthlyGap = gap.Div(months)
		}
		if g.Target.IsPositive() {
			p.ReducePercent = gap.Div(g.Target).Mul(decimalHundred)
		}
		if annualSurplus.IsPositive() {
			p.ExtraYears = gap.Div(annualSurplus)
		}
		report.Goals = append(report.Goals, p)
	}
	return report
}
