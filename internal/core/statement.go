package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one posting in a running ledger statement.
// RunningBalance is the signed cumulative position after this line
// (positive = net debit, negative = net credit).
type StatementLine struct {
	Date           time.Time       `json:"date"`
	VoucherID      int             `json:"voucher_id"`
	VoucherNumber  string          `json:"voucher_number"`
	VoucherType    VoucherType     `json:"voucher_type"`
	Narration      string          `json:"narration"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// LedgerStatement is the running ledger report for one account and window.
// OpeningBalance is the signed balance at the window start; ClosingBalance
// equals OpeningBalance + TotalDebit − TotalCredit.
type LedgerStatement struct {
	LedgerID       int             `json:"ledger_id"`
	LedgerName     string          `json:"ledger_name"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Lines          []StatementLine `json:"lines"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// Statement produces the ordered (entry, running balance) sequence for one
// ledger within [from, to], seeded at the balance carried into the window.
func (idx *Index) Statement(ledgerID int, from, to time.Time) (*LedgerStatement, error) {
	l, ok := idx.ledgers[ledgerID]
	if !ok {
		return nil, fmt.Errorf("ledger %d not found", ledgerID)
	}

	// Balance carried into the window: signed opening plus all entries
	// strictly before from.
	opening := openingSigned(l)
	for _, e := range idx.entriesFor(ledgerID) {
		if !idx.vouchers[e.VoucherID].Date.Before(from) {
			break
		}
		opening = opening.Add(e.Debit).Sub(e.Credit)
	}

	stmt := &LedgerStatement{
		LedgerID:       ledgerID,
		LedgerName:     l.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
	}

	running := opening
	for _, e := range idx.entriesFor(ledgerID) {
		v := idx.vouchers[e.VoucherID]
		if v.Date.Before(from) {
			continue
		}
		if v.Date.After(to) {
			break
		}
		running = running.Add(e.Debit).Sub(e.Credit)
		stmt.Lines = append(stmt.Lines, StatementLine{
			Date:           v.Date,
			VoucherID:      v.ID,
			VoucherNumber:  v.Number,
			VoucherType:    v.Type,
			Narration:      v.Narration,
			Debit:          e.Debit,
			Credit:         e.Credit,
			RunningBalance: running,
		})
		stmt.TotalDebit = stmt.TotalDebit.Add(e.Debit)
		stmt.TotalCredit = stmt.TotalCredit.Add(e.Credit)
	}
	stmt.ClosingBalance = running
	return stmt, nil
}
