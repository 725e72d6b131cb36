package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// openingSigned converts a ledger's (magnitude, Dr/Cr) opening balance into
// the engine's sign convention: positive = debit-natured.
func openingSigned(l *Ledger) decimal.Decimal {
	if l.OpeningBalanceType == BalanceCr {
		return l.OpeningBalance.Neg()
	}
	return l.OpeningBalance
}

// BalanceAsOf computes a ledger's signed point-in-time balance: the signed
// opening balance plus the sum of (debit − credit) over every entry whose
// owning voucher is dated on or before asOf. The terminal balance is
// order-independent; ordering only matters for running statements.
//
// An unknown ledger id yields zero. Entries with dangling references were
// already excluded at index construction.
func (idx *Index) BalanceAsOf(ledgerID int, asOf time.Time) decimal.Decimal {
	balance := decimal.Zero
	if l, ok := idx.ledgers[ledgerID]; ok {
		balance = openingSigned(l)
	}
	for _, e := range idx.entriesFor(ledgerID) {
		if idx.vouchers[e.VoucherID].Date.After(asOf) {
			break // entries are date-ordered
		}
		balance = balance.Add(e.Debit).Sub(e.Credit)
	}
	return balance
}

// BalanceBetween sums (debit − credit) over entries whose voucher date falls
// within [from, to]. The opening balance is deliberately excluded: period
// reports (P&L) measure movement, not position.
func (idx *Index) BalanceBetween(ledgerID int, from, to time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range idx.entriesFor(ledgerID) {
		d := idx.vouchers[e.VoucherID].Date
		if d.Before(from) {
			continue
		}
		if d.After(to) {
			break
		}
		sum = sum.Add(e.Debit).Sub(e.Credit)
	}
	return sum
}
