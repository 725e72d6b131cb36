// Package export renders finished reports as XLSX and PDF downloads.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"finbook/internal/core"
)

const dateLayout = "2006-01-02"

// BuildTrialBalancePDF renders a trial balance as a PDF table.
func BuildTrialBalancePDF(company *core.Company, report *core.TrialBalanceReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Trial Balance")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s", company.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("As of: %s", report.AsOf.Format(dateLayout)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Ledger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, "Group", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, "Debit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Credit", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		pdf.CellFormat(60, 6, row.LedgerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, row.GroupName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row.Debit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, row.Credit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.TotalDebit.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, report.TotalCredit.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildTrialBalanceXLSX renders a trial balance as a workbook.
func BuildTrialBalanceXLSX(company *core.Company, report *core.TrialBalanceReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "trial balance"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Trial Balance")
	_ = f.SetCellValue(sheet, "A2", "Company")
	_ = f.SetCellValue(sheet, "B2", company.Name)
	_ = f.SetCellValue(sheet, "A3", "As of")
	_ = f.SetCellValue(sheet, "B3", report.AsOf.Format(dateLayout))

	header := 5
	_ = f.SetCellValue(sheet, cell("A", header), "Ledger")
	_ = f.SetCellValue(sheet, cell("B", header), "Group")
	_ = f.SetCellValue(sheet, cell("C", header), "Debit")
	_ = f.SetCellValue(sheet, cell("D", header), "Credit")
	for i, row := range report.Rows {
		r := header + 1 + i
		_ = f.SetCellValue(sheet, cell("A", r), row.LedgerName)
		_ = f.SetCellValue(sheet, cell("B", r), row.GroupName)
		_ = f.SetCellValue(sheet, cell("C", r), row.Debit.StringFixed(2))
		_ = f.SetCellValue(sheet, cell("D", r), row.Credit.StringFixed(2))
	}
	totals := header + 1 + len(report.Rows)
	_ = f.SetCellValue(sheet, cell("A", totals), "Total")
	_ = f.SetCellValue(sheet, cell("C", totals), report.TotalDebit.StringFixed(2))
	_ = f.SetCellValue(sheet, cell("D", totals), report.TotalCredit.StringFixed(2))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBalanceSheetPDF renders a balance sheet as a sectioned PDF.
func BuildBalanceSheetPDF(company *core.Company, report *core.BalanceSheetReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Balance Sheet")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s", company.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("As of: %s", report.AsOf.Format(dateLayout)))
	pdf.Ln(8)

	section := func(title string, rows []core.BalanceSheetRow) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, title)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			pdf.CellFormat(120, 6, row.LedgerName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, row.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}
	section("Assets", report.Assets)
	section("Liabilities", report.Liabilities)
	section("Capital", report.Capital)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Assets: %s", report.TotalAssets.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Liabilities + Capital: %s", report.TotalLiabilitiesCapital.StringFixed(2)))
	pdf.Ln(5)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBalanceSheetXLSX renders a balance sheet as a workbook.
func BuildBalanceSheetXLSX(company *core.Company, report *core.BalanceSheetReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "balance sheet"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Balance Sheet")
	_ = f.SetCellValue(sheet, "A2", "Company")
	_ = f.SetCellValue(sheet, "B2", company.Name)
	_ = f.SetCellValue(sheet, "A3", "As of")
	_ = f.SetCellValue(sheet, "B3", report.AsOf.Format(dateLayout))

	r := 5
	section := func(title string, rows []core.BalanceSheetRow) {
		_ = f.SetCellValue(sheet, cell("A", r), title)
		r++
		for _, row := range rows {
			_ = f.SetCellValue(sheet, cell("A", r), row.LedgerName)
			_ = f.SetCellValue(sheet, cell("B", r), row.Amount.StringFixed(2))
			r++
		}
		r++
	}
	section("Assets", report.Assets)
	section("Liabilities", report.Liabilities)
	section("Capital", report.Capital)

	_ = f.SetCellValue(sheet, cell("A", r), "Total Assets")
	_ = f.SetCellValue(sheet, cell("B", r), report.TotalAssets.StringFixed(2))
	r++
	_ = f.SetCellValue(sheet, cell("A", r), "Total Liabilities + Capital")
	_ = f.SetCellValue(sheet, cell("B", r), report.TotalLiabilitiesCapital.StringFixed(2))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildVATPDF renders a VAT computation as a PDF summary.
func BuildVATPDF(company *core.Company, report *core.VATReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "VAT Computation")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s", company.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", report.From.Format(dateLayout), report.To.Format(dateLayout)))
	pdf.Ln(8)

	line := func(label string, value string) {
		pdf.CellFormat(100, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, value, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	line("Sales (gross)", report.SalesGross.StringFixed(2))
	line("Sales VAT", report.SalesVAT.StringFixed(2))
	line("Credit Notes (gross)", report.CreditNoteGross.StringFixed(2))
	line("Credit Note VAT", report.CreditNoteVAT.StringFixed(2))
	line("Purchases (gross)", report.PurchaseGross.StringFixed(2))
	line("Purchase VAT", report.PurchaseVAT.StringFixed(2))
	line("Debit Notes (gross)", report.DebitNoteGross.StringFixed(2))
	line("Debit Note VAT", report.DebitNoteVAT.StringFixed(2))
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	line("Output VAT", report.OutputVAT.StringFixed(2))
	line("Input VAT", report.InputVAT.StringFixed(2))
	line("Net VAT", report.NetVAT.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildVATXLSX renders a VAT computation as a workbook.
func BuildVATXLSX(company *core.Company, report *core.VATReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "vat"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "VAT Computation")
	_ = f.SetCellValue(sheet, "A2", "Company")
	_ = f.SetCellValue(sheet, "B2", company.Name)
	_ = f.SetCellValue(sheet, "A3", "From")
	_ = f.SetCellValue(sheet, "B3", report.From.Format(dateLayout))
	_ = f.SetCellValue(sheet, "A4", "To")
	_ = f.SetCellValue(sheet, "B4", report.To.Format(dateLayout))

	rows := []struct {
		label string
		value string
	}{
		{"Sales (gross)", report.SalesGross.StringFixed(2)},
		{"Sales VAT", report.SalesVAT.StringFixed(2)},
		{"Credit Notes (gross)", report.CreditNoteGross.StringFixed(2)},
		{"Credit Note VAT", report.CreditNoteVAT.StringFixed(2)},
		{"Purchases (gross)", report.PurchaseGross.StringFixed(2)},
		{"Purchase VAT", report.PurchaseVAT.StringFixed(2)},
		{"Debit Notes (gross)", report.DebitNoteGross.StringFixed(2)},
		{"Debit Note VAT", report.DebitNoteVAT.StringFixed(2)},
		{"Output VAT", report.OutputVAT.StringFixed(2)},
		{"Input VAT", report.InputVAT.StringFixed(2)},
		{"Net VAT", report.NetVAT.StringFixed(2)},
	}
	for i, row := range rows {
		r := 6 + i
		_ = f.SetCellValue(sheet, cell("A", r), row.label)
		_ = f.SetCellValue(sheet, cell("B", r), row.value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementPDF renders a running ledger statement as a PDF table.
func BuildStatementPDF(company *core.Company, stmt *core.LedgerStatement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Ledger Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Company: %s", company.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Ledger: %s", stmt.LedgerName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", stmt.From.Format(dateLayout), stmt.To.Format(dateLayout)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Opening Balance: %s", stmt.OpeningBalance.StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(22, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Voucher", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Narration", "1", 0, "L", false, 0, "")
	pdf.CellFormat(27, 6, "Debit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(27, 6, "Credit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(29, 6, "Balance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, line := range stmt.Lines {
		pdf.CellFormat(22, 6, line.Date.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, line.VoucherNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, line.Narration, "1", 0, "L", false, 0, "")
		pdf.CellFormat(27, 6, line.Debit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(27, 6, line.Credit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(29, 6, line.RunningBalance.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(107, 6, "Closing Balance", "1", 0, "L", false, 0, "")
	pdf.CellFormat(27, 6, stmt.TotalDebit.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(27, 6, stmt.TotalCredit.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(29, 6, stmt.ClosingBalance.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders a running ledger statement as a workbook.
func BuildStatementXLSX(company *core.Company, stmt *core.LedgerStatement) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "statement"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Ledger Statement")
	_ = f.SetCellValue(sheet, "A2", "Company")
	_ = f.SetCellValue(sheet, "B2", company.Name)
	_ = f.SetCellValue(sheet, "A3", "Ledger")
	_ = f.SetCellValue(sheet, "B3", stmt.LedgerName)
	_ = f.SetCellValue(sheet, "A4", "From")
	_ = f.SetCellValue(sheet, "B4", stmt.From.Format(dateLayout))
	_ = f.SetCellValue(sheet, "A5", "To")
	_ = f.SetCellValue(sheet, "B5", stmt.To.Format(dateLayout))
	_ = f.SetCellValue(sheet, "A6", "Opening Balance")
	_ = f.SetCellValue(sheet, "B6", stmt.OpeningBalance.StringFixed(2))

	header := 8
	_ = f.SetCellValue(sheet, cell("A", header), "Date")
	_ = f.SetCellValue(sheet, cell("B", header), "Voucher")
	_ = f.SetCellValue(sheet, cell("C", header), "Narration")
	_ = f.SetCellValue(sheet, cell("D", header), "Debit")
	_ = f.SetCellValue(sheet, cell("E", header), "Credit")
	_ = f.SetCellValue(sheet, cell("F", header), "Balance")
	for i, line := range stmt.Lines {
		r := header + 1 + i
		_ = f.SetCellValue(sheet, cell("A", r), line.Date.Format(dateLayout))
		_ = f.SetCellValue(sheet, cell("B", r), line.VoucherNumber)
		_ = f.SetCellValue(sheet, cell("C", r), line.Narration)
		_ = f.SetCellValue(sheet, cell("D", r), line.Debit.StringFixed(2))
		_ = f.SetCellValue(sheet, cell("E", r), line.Credit.StringFixed(2))
		_ = f.SetCellValue(sheet, cell("F", r), line.RunningBalance.StringFixed(2))
	}
	totals := header + 1 + len(stmt.Lines)
	_ = f.SetCellValue(sheet, cell("A", totals), "Closing Balance")
	_ = f.SetCellValue(sheet, cell("D", totals), stmt.TotalDebit.StringFixed(2))
	_ = f.SetCellValue(sheet, cell("E", totals), stmt.TotalCredit.StringFixed(2))
	_ = f.SetCellValue(sheet, cell("F", totals), stmt.ClosingBalance.StringFixed(2))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
