package core_test

import (
	"testing"

	"finbook/internal/core"
)

func statementIndex(t *testing.T) *core.Index {
	t.Helper()
	snap := core.Snapshot{
		CompanyID: 1,
		Ledgers: []core.Ledger{
			{ID: 1, CompanyID: 1, Name: "Bank", OpeningBalance: dec("1000"), OpeningBalanceType: core.BalanceDr},
			{ID: 2, CompanyID: 1, Name: "Suspense"},
		},
		Vouchers: []core.Voucher{
			// Before the reporting window; rolls into the opening balance.
			{ID: 10, CompanyID: 1, Type: core.VoucherReceipt, Date: day("2023-12-20"), Number: "RCT-2023-00007",
				NetAmount: dec("250"), Status: core.StatusConfirmed},
			{ID: 11, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-01-08"), Number: "PAY-2024-00001",
				NetAmount: dec("400"), Narration: "office rent", Status: core.StatusConfirmed},
			{ID: 12, CompanyID: 1, Type: core.VoucherReceipt, Date: day("2024-01-15"), Number: "RCT-2024-00001",
				NetAmount: dec("600"), Status: core.StatusConfirmed},
			// After the window.
			{ID: 13, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-02-02"), Number: "PAY-2024-00002",
				NetAmount: dec("100"), Status: core.StatusConfirmed},
		},
		Entries: []core.LedgerEntry{
			{ID: 100, VoucherID: 10, LedgerID: 1, Debit: dec("250")},
			{ID: 101, VoucherID: 10, LedgerID: 2, Credit: dec("250")},
			{ID: 102, VoucherID: 11, LedgerID: 1, Credit: dec("400")},
			{ID: 103, VoucherID: 11, LedgerID: 2, Debit: dec("400")},
			{ID: 104, VoucherID: 12, LedgerID: 1, Debit: dec("600")},
			{ID: 105, VoucherID: 12, LedgerID: 2, Credit: dec("600")},
			{ID: 106, VoucherID: 13, LedgerID: 1, Credit: dec("100")},
			{ID: 107, VoucherID: 13, LedgerID: 2, Debit: dec("100")},
		},
	}
	idx, err := core.NewIndex(snap)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestStatement(t *testing.T) {
	idx := statementIndex(t)

	stmt, err := idx.Statement(1, day("2024-01-01"), day("2024-01-31"))
	if err != nil {
		t.Fatalf("Statement: %v", err)
	}

	// Opening carries the December receipt: 1000 + 250.
	if !stmt.OpeningBalance.Equal(dec("1250")) {
		t.Errorf("OpeningBalance = %s, want 1250", stmt.OpeningBalance)
	}
	if len(stmt.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(stmt.Lines))
	}

	first := stmt.Lines[0]
	if first.VoucherNumber != "PAY-2024-00001" || !first.Credit.Equal(dec("400")) {
		t.Errorf("first line = %+v, want PAY-2024-00001 credit 400", first)
	}
	if !first.RunningBalance.Equal(dec("850")) {
		t.Errorf("running balance after payment = %s, want 850", first.RunningBalance)
	}
	if first.Narration != "office rent" {
		t.Errorf("narration = %q, want %q", first.Narration, "office rent")
	}

	second := stmt.Lines[1]
	if !second.RunningBalance.Equal(dec("1450")) {
		t.Errorf("running balance after receipt = %s, want 1450", second.RunningBalance)
	}

	if !stmt.TotalDebit.Equal(dec("600")) || !stmt.TotalCredit.Equal(dec("400")) {
		t.Errorf("totals = %s / %s, want 600 / 400", stmt.TotalDebit, stmt.TotalCredit)
	}
	if !stmt.ClosingBalance.Equal(dec("1450")) {
		t.Errorf("ClosingBalance = %s, want 1450", stmt.ClosingBalance)
	}

	// Closing balance must agree with the point-in-time engine.
	if asOf := idx.BalanceAsOf(1, day("2024-01-31")); !asOf.Equal(stmt.ClosingBalance) {
		t.Errorf("BalanceAsOf = %s, statement closing = %s", asOf, stmt.ClosingBalance)
	}
}

func TestStatement_EmptyWindow(t *testing.T) {
	idx := statementIndex(t)

	stmt, err := idx.Statement(1, day("2025-01-01"), day("2025-12-31"))
	if err != nil {
		t.Fatalf("Statement: %v", err)
	}
	if len(stmt.Lines) != 0 {
		t.Errorf("lines = %d, want 0", len(stmt.Lines))
	}
	// Everything rolls into the opening: 1000 + 250 - 400 + 600 - 100.
	if !stmt.OpeningBalance.Equal(dec("1350")) {
		t.Errorf("OpeningBalance = %s, want 1350", stmt.OpeningBalance)
	}
	if !stmt.ClosingBalance.Equal(stmt.OpeningBalance) {
		t.Errorf("ClosingBalance = %s, want opening %s", stmt.ClosingBalance, stmt.OpeningBalance)
	}
}

func TestStatement_UnknownLedger(t *testing.T) {
	idx := statementIndex(t)
	if _, err := idx.Statement(99, day("2024-01-01"), day("2024-01-31")); err == nil {
		t.Fatal("expected error for unknown ledger")
	}
}
