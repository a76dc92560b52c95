package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// CSVScheduleExporter writes the year-by-year surplus schedule of every
// feasible scenario.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string      { return "detailed-csv" }
func (c CSVScheduleExporter) Extension() string { return "csv" }

func (c CSVScheduleExporter) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Year", "MonthlyIncome", "AnnualSurplus", "Cumulative"}); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		if !sc.Feasible || sc.Surplus == nil {
			continue
		}
		for _, y := range sc.Surplus.Schedule {
			row := []string{
				sc.Name,
				strconv.Itoa(y.Year),
				y.MonthlyIncome.StringFixed(2),
				y.AnnualSurplus.StringFixed(2),
				y.Cumulative.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
