package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"finbook/internal/core"
	"finbook/internal/export"
)

func sampleTrialBalance() (*core.Company, *core.TrialBalanceReport) {
	company := &core.Company{ID: 1, Name: "Test Trading Co", BaseCurrency: "EUR"}
	report := &core.TrialBalanceReport{
		AsOf: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Rows: []core.TrialBalanceRow{
			{LedgerID: 1, LedgerName: "Cash", GroupName: "Current Assets", Debit: decimal.RequireFromString("2150")},
			{LedgerID: 5, LedgerName: "Sales Revenue", GroupName: "Direct Income", Credit: decimal.RequireFromString("1000")},
		},
		TotalDebit:  decimal.RequireFromString("2150"),
		TotalCredit: decimal.RequireFromString("2150"),
		Balanced:    true,
	}
	return company, report
}

func TestBuildTrialBalancePDF(t *testing.T) {
	company, report := sampleTrialBalance()

	data, err := export.BuildTrialBalancePDF(company, report)
	if err != nil {
		t.Fatalf("BuildTrialBalancePDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestBuildTrialBalanceXLSX(t *testing.T) {
	company, report := sampleTrialBalance()

	data, err := export.BuildTrialBalanceXLSX(company, report)
	if err != nil {
		t.Fatalf("BuildTrialBalanceXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("trial balance", "A6")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Cash" {
		t.Errorf("first ledger cell = %q, want Cash", got)
	}
}
