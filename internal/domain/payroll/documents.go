package payroll

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeaders = []string{
	"Employee",
	"Position",
	"Contract",
	"Hours",
	"Hourly rate",
	"Gross",
	"Bonus",
	"Social insurance",
	"Health insurance",
	"Income tax",
	"Net",
}

// RenderPayslipPDF builds a one page payslip and returns the PDF bytes.
func RenderPayslipPDF(company CompanyInfo, estimate Estimate) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(company.Name))
	pdf.Ln(6)
	if company.NIP != "" {
		pdf.Cell(0, 7, tr("NIP: "+company.NIP))
		pdf.Ln(6)
	}
	if company.Address != "" {
		pdf.Cell(0, 7, tr(company.Address))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s", estimate.Name)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Position: %s", estimate.Position)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Contract: %s", estimate.Profile.ContractType.Label())))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", estimate.Month))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hours: %s at %s PLN", estimate.Hours.StringFixed(2), money(estimate.HourlyRate)))
	pdf.Ln(10)

	b := estimate.Breakdown
	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Gross salary", b.GrossSalary},
		{"Bonus", b.BonusAmount},
		{"Total gross", b.TotalGross},
		{"Social insurance", b.SocialInsuranceContribution},
		{"Health insurance", b.HealthInsuranceContribution},
		{"Income tax advance", b.IncomeTaxAdvance},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, money(line.amount)+" PLN", "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 9, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 9, money(b.NetSalary)+" PLN", "T", 1, "R", false, 0, "")

	var notes []string
	if b.SocialInsuranceExempt {
		notes = append(notes, "Social insurance exemption applied (student under 26 on mandate contract).")
	}
	if b.IncomeTaxExempt {
		notes = append(notes, "Income tax exemption applied (under 26).")
	}
	if len(notes) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		for _, note := range notes {
			pdf.Cell(0, 6, note)
			pdf.Ln(5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func registerRow(estimate Estimate) []string {
	b := estimate.Breakdown
	return []string{
		estimate.Name,
		estimate.Position,
		estimate.Profile.ContractType.Label(),
		estimate.Hours.StringFixed(2),
		money(estimate.HourlyRate),
		money(b.GrossSalary),
		money(b.BonusAmount),
		money(b.SocialInsuranceContribution),
		money(b.HealthInsuranceContribution),
		money(b.IncomeTaxAdvance),
		money(b.NetSalary),
	}
}

// RegisterXLSX writes the payroll register as a workbook with a totals row.
func RegisterXLSX(company CompanyInfo, month string, estimates []Estimate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(registerSheet, "A1", fmt.Sprintf("%s payroll register %s", company.Name, month))

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(registerSheet, cell, h)
	}
	_ = f.SetCellStyle(registerSheet, "A3", "K3", bold)

	row := 4
	for _, estimate := range estimates {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(registerSheet, cell, v)
		}
		b := estimate.Breakdown
		write(1, estimate.Name)
		write(2, estimate.Position)
		write(3, estimate.Profile.ContractType.Label())
		write(4, estimate.Hours.InexactFloat64())
		write(5, estimate.HourlyRate.InexactFloat64())
		write(6, b.GrossSalary.InexactFloat64())
		write(7, b.BonusAmount.InexactFloat64())
		write(8, b.SocialInsuranceContribution.InexactFloat64())
		write(9, b.HealthInsuranceContribution.InexactFloat64())
		write(10, b.IncomeTaxAdvance.InexactFloat64())
		write(11, b.NetSalary.InexactFloat64())
		row++
	}

	totals := Totals(estimates)
	_ = f.SetCellValue(registerSheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(registerSheet, fmt.Sprintf("F%d", row), totals.TotalGross.InexactFloat64())
	_ = f.SetCellValue(registerSheet, fmt.Sprintf("K%d", row), totals.TotalNet.InexactFloat64())
	_ = f.SetCellStyle(registerSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row), bold)
	_ = f.SetCellStyle(registerSheet, "D4", fmt.Sprintf("K%d", row), amount)

	_ = f.SetColWidth(registerSheet, "A", "A", 24)
	_ = f.SetColWidth(registerSheet, "B", "C", 18)
	_ = f.SetColWidth(registerSheet, "D", "K", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterCSV writes the same rows as RegisterXLSX without the title and styling.
func RegisterCSV(w io.Writer, estimates []Estimate) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(registerHeaders); err != nil {
		return err
	}
	for _, estimate := range estimates {
		if err := writer.Write(registerRow(estimate)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(d decimal.Decimal) string {
	return RoundCents(d).StringFixed(2)
}
