package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/finance"
	"github.com/DilshodbekIkromov/agrorisk-model/internal/loans"
)

// DecisionReport holds everything rendered into a loan decision PDF.
type DecisionReport struct {
	Farmer      *loans.Farmer
	Assessment  *loans.RiskAssessment
	Application *loans.LoanApplication
	Decision    *loans.CreditDecision
}

// Generator renders loan decision reports as PDF documents.
type Generator struct {
	fontFamily string
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{fontFamily: "Arial"}
}

// Render writes the decision report PDF to w.
func (g *Generator) Render(r DecisionReport, w io.Writer) error {
	if r.Application == nil || r.Decision == nil {
		return fmt.Errorf("report requires an application and a decision")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Loan Decision Report")
	g.addDate(pdf)
	pdf.Ln(6)

	if r.Farmer != nil {
		g.addSection(pdf, "Applicant", []row{
			{"Name", r.Farmer.Name},
			{"Passport ID", r.Farmer.PassportID},
			{"Phone", r.Farmer.Phone},
			{"Years farming", fmt.Sprintf("%d", r.Application.YearsFarming)},
			{"Land ownership", r.Application.LandOwnership},
		})
	}

	if r.Assessment != nil {
		g.addSection(pdf, "Agronomic Assessment", []row{
			{"Region", r.Assessment.Region},
			{"District", r.Assessment.District},
			{"Crop", r.Assessment.Crop},
			{"Risk score", fmt.Sprintf("%.1f / 100", r.Assessment.RiskScore)},
			{"Category", r.Assessment.RiskCategory},
			{"Confidence", r.Assessment.Confidence},
		})
	}

	g.addSection(pdf, "Loan Application", []row{
		{"Loan amount", formatMoney(r.Application.LoanAmount)},
		{"Term", fmt.Sprintf("%d months", r.Application.LoanTermMonths)},
		{"Annual revenue", formatMoney(r.Application.AnnualRevenue)},
		{"Net profit", formatMoney(r.Application.NetProfit)},
		{"Total assets", formatMoney(r.Application.TotalAssets)},
		{"Total debt", formatMoney(r.Application.TotalDebt)},
		{"Collateral value", formatMoney(r.Application.CollateralValue)},
		{"Previous defaults", yesNo(r.Application.PreviousDefaults)},
	})

	g.addSection(pdf, "Financial Ratios", ratioRows(r.Decision.DecisionFactors))

	g.addScoreBox(pdf, r.Decision)

	return pdf.Output(w)
}

// RenderBytes returns the decision report PDF as a byte slice.
func (g *Generator) RenderBytes(r DecisionReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Render(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type row struct {
	label string
	value string
}

func (g *Generator) addTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontFamily, "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
}

func (g *Generator) addDate(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontFamily, "", 9)
	pdf.SetTextColor(128, 128, 128)
	dateStr := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "R", false, 0, "")
}

func (g *Generator) addSection(pdf *gofpdf.Fpdf, title string, rows []row) {
	pdf.Ln(4)
	pdf.SetFont(g.fontFamily, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)

	for _, r := range rows {
		pdf.SetFont(g.fontFamily, "B", 10)
		pdf.CellFormat(60, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(g.fontFamily, "", 10)
		pdf.CellFormat(0, 6, r.value, "", 1, "L", false, 0, "")
	}
}

func (g *Generator) addScoreBox(pdf *gofpdf.Fpdf, d *loans.CreditDecision) {
	pdf.Ln(6)
	pdf.SetFont(g.fontFamily, "B", 12)
	pdf.CellFormat(0, 8, "Decision", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	rows := []row{
		{"Agronomic score", fmt.Sprintf("%.1f / 100", d.AgroScore)},
		{"Financial score", fmt.Sprintf("%.1f / 100", d.FinancialScore)},
		{"Final score", fmt.Sprintf("%d / 100", d.FinalScore)},
	}
	for _, r := range rows {
		pdf.SetFont(g.fontFamily, "B", 10)
		pdf.CellFormat(60, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(g.fontFamily, "", 10)
		pdf.CellFormat(0, 6, r.value, "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	rr, gg, bb := decisionColor(d.Decision)
	pdf.SetFillColor(rr, gg, bb)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(g.fontFamily, "B", 13)
	pdf.CellFormat(0, 12, decisionLabel(d.Decision), "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func ratioRows(factors []byte) []row {
	var ratios map[string]float64
	if err := json.Unmarshal(factors, &ratios); err != nil {
		return nil
	}
	labels := []struct {
		key   string
		label string
	}{
		{"debt_to_asset_ratio", "Debt to asset ratio"},
		{"profit_margin", "Profit margin"},
		{"collateral_coverage", "Collateral coverage"},
	}
	rows := make([]row, 0, len(labels))
	for _, l := range labels {
		if v, ok := ratios[l.key]; ok {
			rows = append(rows, row{l.label, fmt.Sprintf("%.1f%%", v)})
		}
	}
	return rows
}

func decisionColor(decision string) (int, int, int) {
	switch decision {
	case finance.DecisionApproved:
		return 46, 125, 50
	case finance.DecisionManualReview:
		return 245, 166, 35
	default:
		return 198, 40, 40
	}
}

func decisionLabel(decision string) string {
	switch decision {
	case finance.DecisionApproved:
		return "APPROVED"
	case finance.DecisionManualReview:
		return "MANUAL REVIEW"
	default:
		return "REJECTED"
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.0f UZS", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
