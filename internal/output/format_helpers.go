package output

import (
	"github.com/rpgo/dreamcalc/internal/domain"
	money "github.com/rpgo/dreamcalc/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

func currencyOr(symbol string) string {
	if symbol == "" {
		return DefaultCurrency
	}
	return symbol
}

// FormatCurrency formats an amount rounded to whole units with grouping.
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole(currencyOr(symbol))
}

// FormatNumber formats a unitless amount rounded to whole units with grouping.
func FormatNumber(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole("")
}

// stressShare is stress as a percentage of the heaviest goal's stress.
func stressShare(stress, max decimal.Decimal) float64 {
	if !max.IsPositive() {
		return 0
	}
	return stress.Div(max).Mul(decimalHundred).InexactFloat64()
}

var pressureHeaders = []string{"Goal", "Gap", "Extra/month", "Or reduce by", "Or add years", "Stress"}

// pressureRow is one goal of a pressure table. Share is its stress relative
// to the heaviest goal, in percent.
type pressureRow struct {
	Cells []string
	Share float64
}

// pressureRows lays out the goals that sit above the equal share.
func pressureRows(r *domain.PressureReport, currency string) []pressureRow {
	if r == nil {
		return nil
	}
	maxStress := r.MaxStress()
	var rows []pressureRow
	for _, p := range r.Pressured() {
		rows = append(rows, pressureRow{
			Cells: []string{
				p.Name,
				FormatCurrency(p.Gap, currency),
				FormatCurrency(p.MonthlyGap, currency),
				FormatPercentage(p.ReducePercent),
				p.ExtraYears.StringFixed(1),
				FormatNumber(p.Stress),
			},
			Share: stressShare(p.Stress, maxStress),
		})
	}
	return rows
}

// FormatPercentage formats a value already expressed in percent with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// FormatRate formats a fraction such as 0.05 as a signed percentage.
func FormatRate(rate decimal.Decimal) string {
	p := rate.Mul(decimalHundred)
	if p.IsPositive() {
		return "+" + FormatPercentage(p)
	}
	return FormatPercentage(p)
}
