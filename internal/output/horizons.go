package output

import (
	"strconv"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// RenderHorizons renders a horizon sweep as a table.
func RenderHorizons(scenario string, points []domain.HorizonPoint, currency string) string {
	t := Table{
		Title:   "Horizon sweep: " + scenario,
		Headers: []string{"Years", "Capacity", "Allocated", "Shortfall", "All goals met"},
	}
	for _, p := range points {
		met := warnStyle.Render("no")
		if p.FullySatisfied {
			met = goodStyle.Render("yes")
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.HorizonYears),
			FormatCurrency(p.FeasibleCapacity, currency),
			FormatCurrency(p.TotalAllocated, currency),
			FormatCurrency(p.Shortfall, currency),
			met,
		})
	}
	return RenderTable(t)
}

// FirstFullyFunded returns the shortest horizon at which every goal is met.
func FirstFullyFunded(points []domain.HorizonPoint) (int, bool) {
	for _, p := range points {
		if p.FullySatisfied {
			return p.HorizonYears, true
		}
	}
	return 0, false
}
