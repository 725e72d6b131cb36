package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Trial Balance ─────────────────────────────────────────────────────────────

// TrialBalanceRow is one non-zero ledger balance, placed in the debit column
// when positive and the credit column (as a magnitude) when negative.
type TrialBalanceRow struct {
	LedgerID   int             `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	GroupName  string          `json:"group_name,omitempty"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every ledger with a non-zero balance as of a date.
// Balanced is derived, never forced: if voucher-level validation held at
// every posting it comes out true automatically, and a false value signals a
// historical unvalidated posting or a bug that must be surfaced.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"as_of"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Balanced    bool              `json:"balanced"`
}

// TrialBalance computes the trial balance as of the given date.
func (idx *Index) TrialBalance(asOf time.Time) *TrialBalanceReport {
	report := &TrialBalanceReport{AsOf: asOf}
	for _, l := range idx.orderedLedgers {
		balance := idx.BalanceAsOf(l.ID, asOf)
		if balance.Abs().LessThanOrEqual(balanceTolerance) {
			continue
		}
		row := TrialBalanceRow{LedgerID: l.ID, LedgerName: l.Name}
		if g := idx.groupFor(l); g != nil {
			row.GroupName = g.Name
		}
		if balance.IsPositive() {
			row.Debit = balance
			report.TotalDebit = report.TotalDebit.Add(balance)
		} else {
			row.Credit = balance.Neg()
			report.TotalCredit = report.TotalCredit.Add(balance.Neg())
		}
		report.Rows = append(report.Rows, row)
	}
	report.Balanced = withinTolerance(report.TotalDebit, report.TotalCredit)
	return report
}

// ── Balance Sheet ─────────────────────────────────────────────────────────────

// BalanceSheetRow is one ledger line in a balance sheet section, expressed as
// a positive magnitude in that section's natural sign.
type BalanceSheetRow struct {
	LedgerID   int             `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	Amount     decimal.Decimal `json:"amount"`
}

// BalanceSheetReport partitions ledger balances by account-group nature as of
// a date. Liability and Capital balances are negated so their normal credit
// positions read as positive magnitudes; only positive rows are listed, but
// section totals include every ledger so the equation is not distorted by
// suppressed contra balances. Balanced reports whether Total Assets equals
// Total Liabilities + Capital within tolerance. It is a property of correct data,
// never forced.
type BalanceSheetReport struct {
	AsOf                   time.Time         `json:"as_of"`
	Assets                 []BalanceSheetRow `json:"assets"`
	Liabilities            []BalanceSheetRow `json:"liabilities"`
	Capital                []BalanceSheetRow `json:"capital"`
	TotalAssets            decimal.Decimal   `json:"total_assets"`
	TotalLiabilitiesCapital decimal.Decimal  `json:"total_liabilities_capital"`
	Balanced               bool              `json:"balanced"`
}

// BalanceSheet computes the balance sheet as of the given date. Ledgers in
// Income/Expenses groups and ledgers with a dangling group are excluded.
func (idx *Index) BalanceSheet(asOf time.Time) *BalanceSheetReport {
	report := &BalanceSheetReport{AsOf: asOf}
	for _, l := range idx.orderedLedgers {
		g := idx.groupFor(l)
		if g == nil {
			continue
		}
		balance := idx.BalanceAsOf(l.ID, asOf)
		switch g.Nature {
		case NatureAssets:
			report.TotalAssets = report.TotalAssets.Add(balance)
			if balance.GreaterThan(balanceTolerance) {
				report.Assets = append(report.Assets, BalanceSheetRow{LedgerID: l.ID, LedgerName: l.Name, Amount: balance})
			}
		case NatureLiabilities:
			amount := balance.Neg()
			report.TotalLiabilitiesCapital = report.TotalLiabilitiesCapital.Add(amount)
			if amount.GreaterThan(balanceTolerance) {
				report.Liabilities = append(report.Liabilities, BalanceSheetRow{LedgerID: l.ID, LedgerName: l.Name, Amount: amount})
			}
		case NatureCapital:
			amount := balance.Neg()
			report.TotalLiabilitiesCapital = report.TotalLiabilitiesCapital.Add(amount)
			if amount.GreaterThan(balanceTolerance) {
				report.Capital = append(report.Capital, BalanceSheetRow{LedgerID: l.ID, LedgerName: l.Name, Amount: amount})
			}
		}
	}
	report.Balanced = withinTolerance(report.TotalAssets, report.TotalLiabilitiesCapital)
	return report
}

// ── Profit & Loss ─────────────────────────────────────────────────────────────

// ProfitAndLossRow is one Income or Expenses ledger with its absolute
// movement over the period.
type ProfitAndLossRow struct {
	LedgerID   int             `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	Amount     decimal.Decimal `json:"amount"`
}

// ProfitAndLossReport covers a date range, not a point in time: opening
// balances never contribute. NetProfit = Total Income − Total Expenses;
// negative means a loss.
type ProfitAndLossReport struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	Income        []ProfitAndLossRow `json:"income"`
	Expenses      []ProfitAndLossRow `json:"expenses"`
	TotalIncome   decimal.Decimal    `json:"total_income"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
	NetProfit     decimal.Decimal    `json:"net_profit"`
}

// ProfitAndLoss computes the P&L for [from, to] over ledgers in Income and
// Expenses groups, using the absolute in-range movement per ledger.
func (idx *Index) ProfitAndLoss(from, to time.Time) *ProfitAndLossReport {
	report := &ProfitAndLossReport{From: from, To: to}
	for _, l := range idx.orderedLedgers {
		g := idx.groupFor(l)
		if g == nil {
			continue
		}
		if g.Nature != NatureIncome && g.Nature != NatureExpenses {
			continue
		}
		movement := idx.BalanceBetween(l.ID, from, to)
		if movement.Abs().LessThanOrEqual(balanceTolerance) {
			continue
		}
		row := ProfitAndLossRow{LedgerID: l.ID, LedgerName: l.Name, Amount: movement.Abs()}
		if g.Nature == NatureIncome {
			report.Income = append(report.Income, row)
			report.TotalIncome = report.TotalIncome.Add(row.Amount)
		} else {
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(row.Amount)
		}
	}
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}
