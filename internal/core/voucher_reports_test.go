package core_test

import (
	"testing"

	"finbook/internal/core"
)

func voucherReportIndex(t *testing.T) *core.Index {
	t.Helper()
	snap := core.Snapshot{
		CompanyID: 1,
		Vouchers: []core.Voucher{
			{ID: 10, CompanyID: 1, Type: core.VoucherSales, Date: day("2024-01-05"),
				GrossAmount: dec("1000"), VATAmount: dec("150"), NetAmount: dec("1150"), Status: core.StatusConfirmed},
			{ID: 11, CompanyID: 1, Type: core.VoucherCreditNote, Date: day("2024-01-12"),
				GrossAmount: dec("200"), VATAmount: dec("30"), NetAmount: dec("230"), Status: core.StatusConfirmed},
			{ID: 12, CompanyID: 1, Type: core.VoucherPurchase, Date: day("2024-01-15"),
				GrossAmount: dec("500"), VATAmount: dec("70"), NetAmount: dec("570"), Status: core.StatusConfirmed},
			{ID: 13, CompanyID: 1, Type: core.VoucherDebitNote, Date: day("2024-01-20"),
				GrossAmount: dec("100"), VATAmount: dec("15"), NetAmount: dec("115"), Status: core.StatusConfirmed},
			{ID: 14, CompanyID: 1, Type: core.VoucherReceipt, Date: day("2024-01-22"),
				NetAmount: dec("800"), Status: core.StatusConfirmed},
			{ID: 15, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-01-25"),
				NetAmount: dec("300"), Status: core.StatusConfirmed},
			{ID: 16, CompanyID: 1, Type: core.VoucherJournal, Date: day("2024-01-26"),
				NetAmount: dec("50"), Status: core.StatusConfirmed},
			// Outside the January window.
			{ID: 17, CompanyID: 1, Type: core.VoucherSales, Date: day("2024-02-03"),
				GrossAmount: dec("9000"), VATAmount: dec("1350"), NetAmount: dec("10350"), Status: core.StatusConfirmed},
			// Draft vouchers stay out of every report.
			{ID: 18, CompanyID: 1, Type: core.VoucherSales, Date: day("2024-01-06"),
				GrossAmount: dec("777"), VATAmount: dec("117"), NetAmount: dec("894"), Status: core.StatusDraft},
		},
	}
	idx, err := core.NewIndex(snap)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestVATComputation(t *testing.T) {
	idx := voucherReportIndex(t)
	report := idx.VATComputation(day("2024-01-01"), day("2024-01-31"))

	if !report.SalesVAT.Equal(dec("150")) {
		t.Errorf("SalesVAT = %s, want 150", report.SalesVAT)
	}
	if !report.CreditNoteVAT.Equal(dec("30")) {
		t.Errorf("CreditNoteVAT = %s, want 30", report.CreditNoteVAT)
	}
	if !report.OutputVAT.Equal(dec("120")) {
		t.Errorf("OutputVAT = %s, want 120", report.OutputVAT)
	}
	if !report.InputVAT.Equal(dec("55")) {
		t.Errorf("InputVAT = %s, want 55 (purchase 70 - debit note 15)", report.InputVAT)
	}
	if !report.NetVAT.Equal(dec("65")) {
		t.Errorf("NetVAT = %s, want 65", report.NetVAT)
	}
	if !report.SalesGross.Equal(dec("1000")) {
		t.Errorf("SalesGross = %s, want 1000 (February voucher excluded)", report.SalesGross)
	}
}

func TestVATComputation_RefundablePeriod(t *testing.T) {
	snap := core.Snapshot{
		CompanyID: 1,
		Vouchers: []core.Voucher{
			{ID: 10, CompanyID: 1, Type: core.VoucherPurchase, Date: day("2024-01-10"),
				GrossAmount: dec("2000"), VATAmount: dec("300"), NetAmount: dec("2300"), Status: core.StatusConfirmed},
			{ID: 11, CompanyID: 1, Type: core.VoucherSales, Date: day("2024-01-15"),
				GrossAmount: dec("500"), VATAmount: dec("75"), NetAmount: dec("575"), Status: core.StatusConfirmed},
		},
	}
	idx, err := core.NewIndex(snap)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	report := idx.VATComputation(day("2024-01-01"), day("2024-01-31"))
	if !report.NetVAT.Equal(dec("-225")) {
		t.Errorf("NetVAT = %s, want -225 (refundable)", report.NetVAT)
	}
}

func TestCashFlow(t *testing.T) {
	idx := voucherReportIndex(t)
	report := idx.CashFlow(day("2024-01-01"), day("2024-01-31"))

	// Inflows: Receipt 800 + Sales 1150. Outflows: Payment 300 + Purchase 570.
	if !report.TotalInflow.Equal(dec("1950")) {
		t.Errorf("TotalInflow = %s, want 1950", report.TotalInflow)
	}
	if !report.TotalOutflow.Equal(dec("870")) {
		t.Errorf("TotalOutflow = %s, want 870", report.TotalOutflow)
	}
	if !report.NetCashFlow.Equal(dec("1080")) {
		t.Errorf("NetCashFlow = %s, want 1080", report.NetCashFlow)
	}

	rows := make(map[core.VoucherType]core.CashFlowRow)
	for _, row := range report.Inflows {
		rows[row.Type] = row
	}
	for _, row := range report.Outflows {
		rows[row.Type] = row
	}
	if row := rows[core.VoucherSales]; row.Count != 1 || !row.Amount.Equal(dec("1150")) {
		t.Errorf("Sales row = %+v, want count 1 amount 1150", row)
	}
	if row := rows[core.VoucherPayment]; row.Count != 1 || !row.Amount.Equal(dec("300")) {
		t.Errorf("Payment row = %+v, want count 1 amount 300", row)
	}
	if _, ok := rows[core.VoucherJournal]; ok {
		t.Error("Journal vouchers must not appear in the cash flow report")
	}
	if _, ok := rows[core.VoucherCreditNote]; ok {
		t.Error("Credit Note vouchers must not appear in the cash flow report")
	}
}

func TestCashFlow_EmptyWindow(t *testing.T) {
	idx := voucherReportIndex(t)
	report := idx.CashFlow(day("2023-01-01"), day("2023-12-31"))

	if len(report.Inflows) != 0 || len(report.Outflows) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if !report.NetCashFlow.IsZero() {
		t.Errorf("NetCashFlow = %s, want 0", report.NetCashFlow)
	}
}
