package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// CSVAllocationExporter writes one row per scenario and goal. Infeasible
// scenarios produce a single row carrying the reason.
type CSVAllocationExporter struct{}

func (c CSVAllocationExporter) Name() string      { return "csv" }
func (c CSVAllocationExporter) Extension() string { return "csv" }

func (c CSVAllocationExporter) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "HorizonYears", "Feasible", "Reason", "Capacity", "Goal", "Importance", "Target", "Floor", "Allocated", "MonthlyInstallment", "FulfillmentPercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		if !sc.Feasible {
			row := []string{sc.Name, "", "false", sc.Reason, "", "", "", "", "", "", "", ""}
			if err := w.Write(row); err != nil {
				return nil, err
			}
			continue
		}
		h := sc.Surplus.HorizonYears
		for _, g := range sc.Allocation.Goals {
			row := []string{
				sc.Name,
				strconv.Itoa(h),
				"true",
				"",
				sc.Surplus.FeasibleCapacity.StringFixed(2),
				g.Name,
				g.Importance.String(),
				g.Target.StringFixed(2),
				g.Floor.StringFixed(2),
				g.Allocated.StringFixed(2),
				g.MonthlyInstallment(h).StringFixed(2),
				g.FulfillmentPercent().StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
