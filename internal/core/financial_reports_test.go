package core_test

import (
	"testing"

	"finbook/internal/core"
)

// reportSnapshot is a small but complete set of books: balanced openings,
// one sales voucher with VAT and one rent payment.
func reportSnapshot() core.Snapshot {
	return core.Snapshot{
		CompanyID: 1,
		Groups: []core.AccountGroup{
			{ID: 1, CompanyID: 1, Name: "Current Assets", Nature: core.NatureAssets},
			{ID: 2, CompanyID: 1, Name: "Current Liabilities", Nature: core.NatureLiabilities},
			{ID: 3, CompanyID: 1, Name: "Capital Account", Nature: core.NatureCapital},
			{ID: 4, CompanyID: 1, Name: "Direct Income", Nature: core.NatureIncome},
			{ID: 5, CompanyID: 1, Name: "Indirect Expenses", Nature: core.NatureExpenses},
		},
		Ledgers: []core.Ledger{
			{ID: 1, CompanyID: 1, Name: "Cash", GroupID: 1, OpeningBalance: dec("1000"), OpeningBalanceType: core.BalanceDr},
			{ID: 2, CompanyID: 1, Name: "Bank", GroupID: 1, OpeningBalance: dec("5000"), OpeningBalanceType: core.BalanceDr},
			{ID: 3, CompanyID: 1, Name: "VAT Payable", GroupID: 2},
			{ID: 4, CompanyID: 1, Name: "Owner Capital", GroupID: 3, OpeningBalance: dec("6000"), OpeningBalanceType: core.BalanceCr},
			{ID: 5, CompanyID: 1, Name: "Sales Revenue", GroupID: 4},
			{ID: 6, CompanyID: 1, Name: "Rent", GroupID: 5},
			{ID: 7, CompanyID: 1, Name: "Petty Cash", GroupID: 1}, // stays at zero
		},
		Vouchers: []core.Voucher{
			{ID: 10, CompanyID: 1, Type: core.VoucherSales, Date: day("2024-01-05"),
				GrossAmount: dec("1000"), VATAmount: dec("150"), NetAmount: dec("1150"), Status: core.StatusConfirmed},
			{ID: 11, CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-01-10"),
				GrossAmount: dec("400"), NetAmount: dec("400"), Status: core.StatusConfirmed},
		},
		Entries: []core.LedgerEntry{
			{ID: 100, VoucherID: 10, LedgerID: 1, Debit: dec("1150")},
			{ID: 101, VoucherID: 10, LedgerID: 5, Credit: dec("1000")},
			{ID: 102, VoucherID: 10, LedgerID: 3, Credit: dec("150")},
			{ID: 103, VoucherID: 11, LedgerID: 6, Debit: dec("400")},
			{ID: 104, VoucherID: 11, LedgerID: 2, Credit: dec("400")},
		},
	}
}

func reportIndex(t *testing.T) *core.Index {
	t.Helper()
	idx, err := core.NewIndex(reportSnapshot())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestTrialBalance(t *testing.T) {
	idx := reportIndex(t)
	report := idx.TrialBalance(day("2024-03-01"))

	if !report.TotalDebit.Equal(dec("7150")) {
		t.Errorf("TotalDebit = %s, want 7150", report.TotalDebit)
	}
	if !report.TotalCredit.Equal(dec("7150")) {
		t.Errorf("TotalCredit = %s, want 7150", report.TotalCredit)
	}
	if !report.Balanced {
		t.Error("expected Balanced to be true")
	}

	byName := make(map[string]core.TrialBalanceRow)
	for _, row := range report.Rows {
		byName[row.LedgerName] = row
	}
	if _, ok := byName["Petty Cash"]; ok {
		t.Error("zero-balance ledger must be omitted")
	}
	if row := byName["Cash"]; !row.Debit.Equal(dec("2150")) {
		t.Errorf("Cash debit = %s, want 2150", row.Debit)
	}
	if row := byName["VAT Payable"]; !row.Credit.Equal(dec("150")) {
		t.Errorf("VAT Payable credit = %s, want 150", row.Credit)
	}
	if row := byName["Sales Revenue"]; !row.Credit.Equal(dec("1000")) || !row.Debit.IsZero() {
		t.Errorf("Sales Revenue row = %+v, want credit 1000", row)
	}
	if row := byName["Rent"]; row.GroupName != "Indirect Expenses" {
		t.Errorf("Rent group = %q, want Indirect Expenses", row.GroupName)
	}
}

func TestBalanceSheet_NegatesCreditSections(t *testing.T) {
	// A liabilities ledger whose signed balance is -400 must appear in the
	// Liabilities section as a positive 400.
	snap := core.Snapshot{
		CompanyID: 1,
		Groups: []core.AccountGroup{
			{ID: 1, CompanyID: 1, Name: "Current Assets", Nature: core.NatureAssets},
			{ID: 2, CompanyID: 1, Name: "Loans", Nature: core.NatureLiabilities},
		},
		Ledgers: []core.Ledger{
			{ID: 1, CompanyID: 1, Name: "Bank", GroupID: 1, OpeningBalance: dec("400"), OpeningBalanceType: core.BalanceDr},
			{ID: 2, CompanyID: 1, Name: "Bank Loan", GroupID: 2, OpeningBalance: dec("400"), OpeningBalanceType: core.BalanceCr},
		},
	}
	idx, err := core.NewIndex(snap)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	report := idx.BalanceSheet(day("2024-03-01"))
	if len(report.Liabilities) != 1 {
		t.Fatalf("Liabilities rows = %d, want 1", len(report.Liabilities))
	}
	if !report.Liabilities[0].Amount.Equal(dec("400")) {
		t.Errorf("liability amount = %s, want 400", report.Liabilities[0].Amount)
	}
	if !report.TotalAssets.Equal(dec("400")) || !report.TotalLiabilitiesCapital.Equal(dec("400")) {
		t.Errorf("totals = %s / %s, want 400 / 400", report.TotalAssets, report.TotalLiabilitiesCapital)
	}
	if !report.Balanced {
		t.Error("expected Balanced to be true")
	}
}

func TestBalanceSheet_ExcludesIncomeExpenseLedgers(t *testing.T) {
	idx := reportIndex(t)
	report := idx.BalanceSheet(day("2024-03-01"))

	for _, rows := range [][]core.BalanceSheetRow{report.Assets, report.Liabilities, report.Capital} {
		for _, row := range rows {
			if row.LedgerName == "Sales Revenue" || row.LedgerName == "Rent" {
				t.Errorf("P&L ledger %q must not appear on the balance sheet", row.LedgerName)
			}
		}
	}

	// Assets 2150 + 4600 = 6750; liabilities + capital only reach 6150 until
	// the period's 600 profit is appropriated. The report must expose that
	// honestly rather than force the equation.
	if !report.TotalAssets.Equal(dec("6750")) {
		t.Errorf("TotalAssets = %s, want 6750", report.TotalAssets)
	}
	if !report.TotalLiabilitiesCapital.Equal(dec("6150")) {
		t.Errorf("TotalLiabilitiesCapital = %s, want 6150", report.TotalLiabilitiesCapital)
	}
	if report.Balanced {
		t.Error("expected Balanced to be false while profit is unappropriated")
	}
}

func TestProfitAndLoss(t *testing.T) {
	idx := reportIndex(t)
	report := idx.ProfitAndLoss(day("2024-01-01"), day("2024-01-31"))

	if !report.TotalIncome.Equal(dec("1000")) {
		t.Errorf("TotalIncome = %s, want 1000", report.TotalIncome)
	}
	if !report.TotalExpenses.Equal(dec("400")) {
		t.Errorf("TotalExpenses = %s, want 400", report.TotalExpenses)
	}
	if !report.NetProfit.Equal(dec("600")) {
		t.Errorf("NetProfit = %s, want 600", report.NetProfit)
	}
	if len(report.Income) != 1 || report.Income[0].LedgerName != "Sales Revenue" {
		t.Errorf("Income rows = %+v, want single Sales Revenue row", report.Income)
	}
	if len(report.Expenses) != 1 || report.Expenses[0].LedgerName != "Rent" {
		t.Errorf("Expenses rows = %+v, want single Rent row", report.Expenses)
	}
}

func TestProfitAndLoss_WindowExcludesOutOfRangeVouchers(t *testing.T) {
	idx := reportIndex(t)

	// Window before any posting: no movement, openings never leak in.
	report := idx.ProfitAndLoss(day("2023-01-01"), day("2023-12-31"))
	if len(report.Income) != 0 || len(report.Expenses) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if !report.NetProfit.IsZero() {
		t.Errorf("NetProfit = %s, want 0", report.NetProfit)
	}

	// Window covering only the payment voucher.
	report = idx.ProfitAndLoss(day("2024-01-06"), day("2024-01-31"))
	if !report.TotalIncome.IsZero() {
		t.Errorf("TotalIncome = %s, want 0", report.TotalIncome)
	}
	if !report.TotalExpenses.Equal(dec("400")) {
		t.Errorf("TotalExpenses = %s, want 400", report.TotalExpenses)
	}
	if !report.NetProfit.Equal(dec("-400")) {
		t.Errorf("NetProfit = %s, want -400 (a loss)", report.NetProfit)
	}
}
