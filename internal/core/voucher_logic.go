package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// balanceTolerance absorbs floating-point drift from repeated debit/credit
// arithmetic. It applies uniformly to every balance and equality comparison
// in the engine.
var balanceTolerance = decimal.New(1, -2) // 0.01

// withinTolerance reports whether a and b are equal within balanceTolerance.
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(balanceTolerance)
}

// ValidateEntries enforces the fundamental double-entry invariant on the
// entries about to be posted for one voucher. It is the single gate
// protecting the ledger: it must run before any persistence call, and a
// failure means nothing gets written.
//
// Pure check, no side effects. Reordering entries does not change the result.
func ValidateEntries(entries []LedgerEntry) error {
	if len(entries) < 2 {
		return errors.New("voucher must have at least 2 entries")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry amounts cannot be negative for ledger %d", e.LedgerID)
		}
		if e.Debit.IsZero() && e.Credit.IsZero() {
			return fmt.Errorf("entry for ledger %d has no amount", e.LedgerID)
		}
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	diff := totalDebit.Sub(totalCredit)
	if diff.Abs().GreaterThan(balanceTolerance) {
		return &UnbalancedVoucherError{
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
			Difference:  diff,
		}
	}
	return nil
}

// ValidateVoucher checks a voucher header together with its entries.
// Posting voucher types must carry balanced entries whose debit total matches
// the header's authoritative net amount; order and note documents must not
// carry entries at all.
func ValidateVoucher(v Voucher, entries []LedgerEntry) error {
	if !v.Type.Valid() {
		return fmt.Errorf("unknown voucher type %q", v.Type)
	}
	if v.Date.IsZero() {
		return errors.New("voucher must have a date")
	}
	if v.NetAmount.IsNegative() {
		return errors.New("net amount cannot be negative")
	}

	if !v.Type.Posts() {
		if len(entries) > 0 {
			return fmt.Errorf("%s vouchers do not post to the ledger and cannot carry entries", v.Type)
		}
		return nil
	}

	if err := ValidateEntries(entries); err != nil {
		return err
	}

	totalDebit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
	}
	if !withinTolerance(v.NetAmount, totalDebit) {
		return fmt.Errorf("net amount %s does not match the posted debit total %s",
			v.NetAmount.StringFixed(2), totalDebit.StringFixed(2))
	}
	return nil
}
