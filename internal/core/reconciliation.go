package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ReconciliationStatus string

const (
	ReconciliationPending    ReconciliationStatus = "Pending"
	ReconciliationReconciled ReconciliationStatus = "Reconciled"
)

// ReconciliationKey identifies one posting in the external reconciliation
// status record: the (voucher, ledger) pair.
type ReconciliationKey struct {
	VoucherID int
	LedgerID  int
}

// ReconciliationLine is one bank-account posting with its reconciliation
// classification. Postings without a status record default to Pending.
type ReconciliationLine struct {
	Date          time.Time            `json:"date"`
	VoucherID     int                  `json:"voucher_id"`
	VoucherNumber string               `json:"voucher_number"`
	Narration     string               `json:"narration"`
	Debit         decimal.Decimal      `json:"debit"`
	Credit        decimal.Decimal      `json:"credit"`
	Status        ReconciliationStatus `json:"status"`
}

// BankReconciliationReport joins a bank ledger's postings to their
// reconciliation statuses. BookBalance is opening + Σdebit − Σcredit over all
// postings up to the as-of date, independent of reconciliation status;
// ReconciledBalance counts only reconciled postings.
type BankReconciliationReport struct {
	LedgerID          int                  `json:"ledger_id"`
	LedgerName        string               `json:"ledger_name"`
	AsOf              time.Time            `json:"as_of"`
	Lines             []ReconciliationLine `json:"lines"`
	BookBalance       decimal.Decimal      `json:"book_balance"`
	ReconciledBalance decimal.Decimal      `json:"reconciled_balance"`
	ReconciledCount   int                  `json:"reconciled_count"`
	PendingCount      int                  `json:"pending_count"`
}

// BankReconciliation classifies every posting of the designated bank ledger
// dated on or before asOf against the supplied status map.
func (idx *Index) BankReconciliation(ledgerID int, asOf time.Time, statuses map[ReconciliationKey]ReconciliationStatus) (*BankReconciliationReport, error) {
	l, ok := idx.ledgers[ledgerID]
	if !ok {
		return nil, fmt.Errorf("ledger %d not found", ledgerID)
	}

	report := &BankReconciliationReport{
		LedgerID:          ledgerID,
		LedgerName:        l.Name,
		AsOf:              asOf,
		BookBalance:       openingSigned(l),
		ReconciledBalance: openingSigned(l),
	}

	for _, e := range idx.entriesFor(ledgerID) {
		v := idx.vouchers[e.VoucherID]
		if v.Date.After(asOf) {
			break
		}
		status := statuses[ReconciliationKey{VoucherID: e.VoucherID, LedgerID: ledgerID}]
		if status == "" {
			status = ReconciliationPending
		}

		report.BookBalance = report.BookBalance.Add(e.Debit).Sub(e.Credit)
		if status == ReconciliationReconciled {
			report.ReconciledBalance = report.ReconciledBalance.Add(e.Debit).Sub(e.Credit)
			report.ReconciledCount++
		} else {
			report.PendingCount++
		}

		report.Lines = append(report.Lines, ReconciliationLine{
			Date:          v.Date,
			VoucherID:     v.ID,
			VoucherNumber: v.Number,
			Narration:     v.Narration,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Status:        status,
		})
	}
	return report, nil
}
