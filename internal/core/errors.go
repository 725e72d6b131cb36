package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnbalancedVoucherError is returned when a voucher's debit and credit totals
// differ beyond tolerance. It carries both totals so the caller can surface
// the exact discrepancy to the user. Persistence must not proceed.
type UnbalancedVoucherError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

func (e *UnbalancedVoucherError) Error() string {
	return fmt.Sprintf("voucher is not balanced: debits %s != credits %s (difference %s)",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference.StringFixed(2))
}

// TenantScopeError signals that a record inside a supposedly company-scoped
// snapshot belongs to a different company. This is a bug in the scoping
// layer, not missing data, and is never silently filtered.
type TenantScopeError struct {
	Entity          string // "voucher", "ledger", "account group"
	EntityID        int
	EntityCompanyID int
	WantCompanyID   int
}

func (e *TenantScopeError) Error() string {
	return fmt.Sprintf("%s %d belongs to company %d but the snapshot is scoped to company %d",
		e.Entity, e.EntityID, e.EntityCompanyID, e.WantCompanyID)
}
