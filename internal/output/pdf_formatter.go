package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/dreamcalc/internal/domain"
)

const (
	pdfMargin       = 15.0
	pdfContentWidth = 210.0 - 2*pdfMargin
)

// PDFFormatter renders the plan comparison as an A4 report.
type PDFFormatter struct {
	Currency string
}

func (p PDFFormatter) Name() string      { return "pdf" }
func (p PDFFormatter) Extension() string { return "pdf" }

func (p PDFFormatter) WithCurrency(symbol string) Formatter {
	p.Currency = symbol
	return p
}

var pdfSymbols = strings.NewReplacer("₹", "Rs. ")

// pdfText encodes s for the cp1252 core fonts through tr. The rupee sign is
// spelled out; any other rune outside cp1252 prints as a dot, so goal and
// scenario names should stay within Western European scripts.
func pdfText(tr func(string) string, s string) string {
	return tr(pdfSymbols.Replace(s))
}

func (p PDFFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Goal-based financial plan", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Goal-Based Financial Plan", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(pdfContentWidth, 7, pdfText(tr, fmt.Sprintf("Monthly income %s, unavoidable expenses %s",
		FormatCurrency(results.Household.MonthlyIncome, p.Currency),
		FormatCurrency(results.Household.MonthlyExpenses, p.Currency))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, sc := range results.Scenarios {
		p.writeScenario(pdf, tr, sc)
	}

	if rec := AnalyzeScenarios(results); rec.ScenarioName != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 51, 102)
		pdf.MultiCell(pdfContentWidth, 6, pdfText(tr, fmt.Sprintf("Recommended: %s funds %s of all goals (shortfall %s)",
			rec.ScenarioName, FormatPercentage(rec.FulfillmentPercent), FormatCurrency(rec.Shortfall, p.Currency))), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(80, 80, 80)
	for _, line := range GenerateAssumptions(&results.Assumptions) {
		pdf.MultiCell(pdfContentWidth, 5, pdfText(tr, "- "+line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (p PDFFormatter) writeScenario(pdf *fpdf.Fpdf, tr func(string) string, sc domain.ScenarioResult) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, pdfText(tr, sc.Name), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	if !sc.Feasible {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(180, 40, 40)
		pdf.CellFormat(pdfContentWidth, 6, pdfText(tr, "Not feasible: "+sc.Reason), "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	s := sc.Surplus
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	summary := [][2]string{
		{"Adjusted monthly surplus", FormatCurrency(s.AdjustedSurplus, p.Currency)},
		{"Income / expense penalty", FormatRate(s.IncomePenalty) + " / " + FormatRate(s.ExpensePenalty)},
		{fmt.Sprintf("Capacity over %d years", s.HorizonYears), FormatCurrency(s.FeasibleCapacity, p.Currency)},
	}
	for _, kv := range summary {
		pdf.CellFormat(pdfContentWidth*0.6, 6, pdfText(tr, kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfContentWidth*0.4, 6, pdfText(tr, kv[1]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	widths := []float64{60, 30, 30, 30, 30}
	headers := []string{"Goal", "Target", "Allocated", "Monthly", "Funded"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, g := range sc.Allocation.Goals {
		cells := []string{
			g.Name,
			FormatCurrency(g.Target, p.Currency),
			FormatCurrency(g.Allocated, p.Currency),
			FormatCurrency(g.MonthlyInstallment(s.HorizonYears), p.Currency),
			FormatPercentage(g.FulfillmentPercent()),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, pdfText(tr, c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
	p.writePressure(pdf, tr, sc.Pressure)
	pdf.Ln(2)
}

// writePressure draws the trade-off table for goals above the equal share,
// ending each row with a bar of its stress relative to the heaviest goal.
func (p PDFFormatter) writePressure(pdf *fpdf.Fpdf, tr func(string) string, report *domain.PressureReport) {
	rows := pressureRows(report, p.Currency)
	if len(rows) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 6, pdfText(tr, "Pressure (equal share "+FormatCurrency(report.EqualShare, p.Currency)+")"), "", 1, "L", false, 0, "")

	widths := []float64{36, 24, 24, 22, 20, 24}
	barWidth := pdfContentWidth - 150
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFillColor(245, 247, 250)
	for i, h := range pressureHeaders {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 6, h, "1", 0, align, true, 0, "")
	}
	pdf.CellFormat(barWidth, 6, "Relative stress", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		for i, c := range r.Cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, pdfText(tr, c), "1", 0, align, false, 0, "")
		}
		x, y := pdf.GetXY()
		pdf.CellFormat(barWidth, 6, "", "1", 0, "L", false, 0, "")
		pdf.SetFillColor(204, 85, 0)
		pdf.Rect(x+1, y+1.5, (barWidth-2)*r.Share/100, 3, "F")
		pdf.SetFillColor(245, 247, 250)
		pdf.Ln(-1)
	}
}
