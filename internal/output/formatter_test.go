package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func buildTestComparison() *domain.PlanComparison {
	surplus := func(horizon int, monthly int64) *domain.SurplusResult {
		s := &domain.SurplusResult{
			BaseSurplus:      d(5000),
			IncomePenalty:    decimal.Zero,
			ExpensePenalty:   decimal.Zero,
			AdjustedIncome:   d(50000),
			AdjustedExpenses: d(50000 - monthly),
			AdjustedSurplus:  d(monthly),
			FeasibleCapacity: d(monthly * 12 * int64(horizon)),
			HorizonYears:     horizon,
		}
		for y := 1; y <= horizon; y++ {
			s.Schedule = append(s.Schedule, domain.YearSurplus{
				Year: y, MonthlyIncome: d(50000), AnnualSurplus: d(monthly * 12), Cumulative: d(monthly * 12 * int64(y)),
			})
		}
		return s
	}
	return &domain.PlanComparison{
		Household: domain.Household{MonthlyIncome: d(50000), MonthlyExpenses: d(45000)},
		Scenarios: []domain.ScenarioResult{
			{
				Name:     "A",
				Feasible: true,
				Surplus:  surplus(5, 5000),
				Allocation: &domain.Allocation{
					Capacity: d(300000), TotalTarget: d(700000), Total: d(300000),
					Goals: []domain.GoalAllocation{
						{Name: "Emergency", Target: d(200000), Importance: d(5), Floor: d(70000), Allocated: d(200000)},
						{Name: "Asset", Target: d(500000), Importance: d(4), Floor: d(175000), Allocated: d(100000)},
					},
				},
				Pressure: &domain.PressureReport{
					EqualShare: d(150000),
					Goals: []domain.GoalPressure{
						{Name: "Emergency", Gap: d(50000), Stress: d(250000), MonthlyGap: d(833), ReducePercent: d(25), ExtraYears: decimal.RequireFromString("0.8")},
						{Name: "Asset", Gap: d(350000), Stress: d(1400000), MonthlyGap: d(5833), ReducePercent: d(70), ExtraYears: decimal.RequireFromString("5.8")},
					},
				},
			},
			{
				Name:     "B",
				Feasible: true,
				Surplus:  surplus(3, 5000),
				Allocation: &domain.Allocation{
					Capacity: d(180000), TotalTarget: d(700000), Total: d(180000),
					Goals: []domain.GoalAllocation{
						{Name: "Emergency", Target: d(200000), Importance: d(5), Floor: d(70000), Allocated: d(175000)},
						{Name: "Asset", Target: d(500000), Importance: d(4), Floor: d(110000), Allocated: d(5000)},
					},
				},
			},
			{Name: "Broke", Feasible: false, Reason: "expenses exceed income"},
		},
	}
}

func TestNormalizeFormatName(t *testing.T) {
	assert.Equal(t, "console", NormalizeFormatName(" Pretty "))
	assert.Equal(t, "console-lite", NormalizeFormatName("text"))
	assert.Equal(t, "detailed-csv", NormalizeFormatName("schedule"))
	assert.Equal(t, "pdf", NormalizeFormatName("PDF"))
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
		assert.NotEmpty(t, f.Extension())
	}
	assert.Nil(t, GetFormatterByName("html"))
}

func TestNewFormatterUnknown(t *testing.T) {
	_, err := NewFormatter("xml", "")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "console-lite")
}

func TestNewFormatterCurrency(t *testing.T) {
	f, err := NewFormatter("text", "$")
	require.NoError(t, err)
	out, err := f.Format(buildTestComparison())
	require.NoError(t, err)
	assert.Contains(t, string(out), "$50,000")
	assert.NotContains(t, string(out), "₹")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Recommended: A")
	assert.Contains(t, content, "Broke: not feasible (expenses exceed income)")
	assert.Contains(t, content, "Emergency: ₹2,00,000 of ₹2,00,000 (100.0%)")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{Currency: "$"}.Format(buildTestComparison())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "GOAL-BASED FINANCIAL PLAN")
	assert.Contains(t, content, "Scenario comparison")
	assert.Contains(t, content, "Not feasible: expenses exceed income")
	assert.Contains(t, content, "Pressure")
	assert.Contains(t, content, "Stress")
	assert.Contains(t, content, "1,400,000")
	assert.Contains(t, content, "17.9%")
	assert.Contains(t, content, "Recommended:")
	assert.Contains(t, content, "Minimum guarantee per goal: 35.0% of target")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	var decoded domain.PlanComparison
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Scenarios, 3)
	assert.True(t, decoded.Scenarios[0].Allocation.Total.Equal(d(300000)))
	assert.False(t, decoded.Scenarios[2].Feasible)
}

func TestCSVAllocationExporter(t *testing.T) {
	out, err := CSVAllocationExporter{}.Format(buildTestComparison())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// header + 2 goals x 2 scenarios + 1 infeasible row
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "A,5,true,,300000.00,Emergency,5,200000.00,70000.00,200000.00,3333.33,100.00"))
	assert.Equal(t, "Broke,,false,expenses exceed income,,,,,,,,", lines[5])
}

func TestCSVScheduleExporter(t *testing.T) {
	out, err := CSVScheduleExporter{}.Format(buildTestComparison())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+5+3)
	assert.Equal(t, "A,5,50000.00,60000.00,300000.00", lines[5])
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
}

func TestPDFFormatterDrawsPressure(t *testing.T) {
	with, err := PDFFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	results := buildTestComparison()
	results.Scenarios[0].Pressure = nil
	without, err := PDFFormatter{}.Format(results)
	require.NoError(t, err)

	assert.Greater(t, len(with), len(without))
}

func TestPDFText(t *testing.T) {
	tr := fpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")
	assert.Equal(t, "Rs. 1,000", pdfText(tr, "₹1,000"))
	assert.Equal(t, "\x95 item", pdfText(tr, "• item"))
	assert.Equal(t, "Caf\xe9 \x80", pdfText(tr, "Café €"))
	assert.Equal(t, "..", pdfText(tr, "घर"))
}

func TestPressureRows(t *testing.T) {
	results := buildTestComparison()
	rows := pressureRows(results.Scenarios[0].Pressure, "$")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Emergency", "$50,000", "$833", "25.0%", "0.8", "250,000"}, rows[0].Cells)
	assert.Equal(t, []string{"Asset", "$350,000", "$5,833", "70.0%", "5.8", "1,400,000"}, rows[1].Cells)
	assert.InDelta(t, 17.857, rows[0].Share, 0.001)
	assert.InDelta(t, 100.0, rows[1].Share, 1e-9)

	assert.Empty(t, pressureRows(nil, "$"))
	assert.Empty(t, pressureRows(results.Scenarios[1].Pressure, "$"))
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := WriteFormatted(JSONFormatter{}, buildTestComparison(), dir)
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"scenarios\"")
}

func TestIsTerminalFormat(t *testing.T) {
	assert.True(t, IsTerminalFormat("pretty"))
	assert.True(t, IsTerminalFormat("console-lite"))
	assert.False(t, IsTerminalFormat("csv"))
}
