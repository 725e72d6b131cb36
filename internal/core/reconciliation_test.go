package core_test

import (
	"testing"

	"finbook/internal/core"
)

func reconciliationIndex(t *testing.T) *core.Index {
	t.Helper()
	snap := core.Snapshot{
		CompanyID: 1,
		Ledgers: []core.Ledger{
			{ID: 1, CompanyID: 1, Name: "Bank", OpeningBalance: dec("1000"), OpeningBalanceType: core.BalanceDr},
			{ID: 2, CompanyID: 1, Name: "Suspense"},
		},
		Vouchers: []core.Voucher{
			{ID: 10, CompanyID: 1, Type: core.VoucherReceipt, Date: day("2024-01-05"), Number: "RCT-2024-00001",
				NetAmount: dec("500"), Status: core.StatusConfirmed},
			{ID: 11, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-01-10"), Number: "PAY-2024-00001",
				NetAmount: dec("200"), Status: core.StatusConfirmed},
			{ID: 12, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-02-15"), Number: "PAY-2024-00002",
				NetAmount: dec("50"), Status: core.StatusConfirmed},
		},
		Entries: []core.LedgerEntry{
			{ID: 100, VoucherID: 10, LedgerID: 1, Debit: dec("500")},
			{ID: 101, VoucherID: 10, LedgerID: 2, Credit: dec("500")},
			{ID: 102, VoucherID: 11, LedgerID: 1, Credit: dec("200")},
			{ID: 103, VoucherID: 11, LedgerID: 2, Debit: dec("200")},
			{ID: 104, VoucherID: 12, LedgerID: 1, Credit: dec("50")},
			{ID: 105, VoucherID: 12, LedgerID: 2, Debit: dec("50")},
		},
	}
	idx, err := core.NewIndex(snap)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestBankReconciliation(t *testing.T) {
	idx := reconciliationIndex(t)
	statuses := map[core.ReconciliationKey]core.ReconciliationStatus{
		{VoucherID: 10, LedgerID: 1}: core.ReconciliationReconciled,
	}

	report, err := idx.BankReconciliation(1, day("2024-01-31"), statuses)
	if err != nil {
		t.Fatalf("BankReconciliation: %v", err)
	}

	if len(report.Lines) != 2 {
		t.Fatalf("lines = %d, want 2 (February posting excluded)", len(report.Lines))
	}
	if report.Lines[0].Status != core.ReconciliationReconciled {
		t.Errorf("first line status = %s, want Reconciled", report.Lines[0].Status)
	}
	if report.Lines[1].Status != core.ReconciliationPending {
		t.Errorf("second line status = %s, want Pending (no record defaults)", report.Lines[1].Status)
	}
	if report.ReconciledCount != 1 || report.PendingCount != 1 {
		t.Errorf("counts = %d reconciled / %d pending, want 1 / 1", report.ReconciledCount, report.PendingCount)
	}

	// Book balance is status-independent: 1000 + 500 - 200.
	if !report.BookBalance.Equal(dec("1300")) {
		t.Errorf("BookBalance = %s, want 1300", report.BookBalance)
	}
	// Reconciled balance counts only the receipt: 1000 + 500.
	if !report.ReconciledBalance.Equal(dec("1500")) {
		t.Errorf("ReconciledBalance = %s, want 1500", report.ReconciledBalance)
	}
}

func TestBankReconciliation_NoStatuses(t *testing.T) {
	idx := reconciliationIndex(t)

	report, err := idx.BankReconciliation(1, day("2024-03-01"), nil)
	if err != nil {
		t.Fatalf("BankReconciliation: %v", err)
	}
	if report.ReconciledCount != 0 || report.PendingCount != 3 {
		t.Errorf("counts = %d / %d, want 0 reconciled, 3 pending", report.ReconciledCount, report.PendingCount)
	}
	if !report.BookBalance.Equal(dec("1250")) {
		t.Errorf("BookBalance = %s, want 1250", report.BookBalance)
	}
	if !report.ReconciledBalance.Equal(dec("1000")) {
		t.Errorf("ReconciledBalance = %s, want opening 1000", report.ReconciledBalance)
	}
}

func TestBankReconciliation_UnknownLedger(t *testing.T) {
	idx := reconciliationIndex(t)
	if _, err := idx.BankReconciliation(99, day("2024-01-31"), nil); err == nil {
		t.Fatal("expected error for unknown ledger")
	}
}
