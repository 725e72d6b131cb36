package core_test

import (
	"errors"
	"testing"

	"finbook/internal/core"
)

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name      string
		entries   []core.LedgerEntry
		expectErr bool
	}{
		{
			name: "balanced pair",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("200.00")},
				{LedgerID: 2, Credit: dec("200.00")},
			},
			expectErr: false,
		},
		{
			name: "balanced three-way split",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("1150.00")},
				{LedgerID: 2, Credit: dec("1000.00")},
				{LedgerID: 3, Credit: dec("150.00")},
			},
			expectErr: false,
		},
		{
			name: "within rounding tolerance",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("100.00")},
				{LedgerID: 2, Credit: dec("99.99")},
			},
			expectErr: false,
		},
		{
			name: "just beyond tolerance",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("100.00")},
				{LedgerID: 2, Credit: dec("99.98")},
			},
			expectErr: true,
		},
		{
			name: "imbalanced",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("100.00")},
				{LedgerID: 2, Credit: dec("90.00")},
			},
			expectErr: true,
		},
		{
			name: "negative amount",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("-100.00")},
				{LedgerID: 2, Credit: dec("-100.00")},
			},
			expectErr: true,
		},
		{
			name: "zero-amount line",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("100.00")},
				{LedgerID: 2},
				{LedgerID: 3, Credit: dec("100.00")},
			},
			expectErr: true,
		},
		{
			name: "single line",
			entries: []core.LedgerEntry{
				{LedgerID: 1, Debit: dec("100.00")},
			},
			expectErr: true,
		},
		{
			name:      "no lines",
			entries:   nil,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateEntries(tt.entries)
			if tt.expectErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEntries_UnbalancedCarriesTotals(t *testing.T) {
	entries := []core.LedgerEntry{
		{LedgerID: 1, Debit: dec("100")},
		{LedgerID: 2, Credit: dec("90")},
	}

	err := core.ValidateEntries(entries)
	var unbalanced *core.UnbalancedVoucherError
	if !errors.As(err, &unbalanced) {
		t.Fatalf("expected UnbalancedVoucherError, got %v", err)
	}
	if !unbalanced.TotalDebit.Equal(dec("100")) {
		t.Errorf("TotalDebit = %s, want 100", unbalanced.TotalDebit)
	}
	if !unbalanced.TotalCredit.Equal(dec("90")) {
		t.Errorf("TotalCredit = %s, want 90", unbalanced.TotalCredit)
	}
	if !unbalanced.Difference.Equal(dec("10")) {
		t.Errorf("Difference = %s, want 10", unbalanced.Difference)
	}
}

func TestValidateEntries_OrderIndependent(t *testing.T) {
	forward := []core.LedgerEntry{
		{LedgerID: 1, Debit: dec("70.00")},
		{LedgerID: 2, Debit: dec("30.00")},
		{LedgerID: 3, Credit: dec("100.00")},
	}
	reversed := []core.LedgerEntry{forward[2], forward[1], forward[0]}

	if err := core.ValidateEntries(forward); err != nil {
		t.Fatalf("forward order: unexpected error %v", err)
	}
	if err := core.ValidateEntries(reversed); err != nil {
		t.Fatalf("reversed order: unexpected error %v", err)
	}

	// Same for a rejected set: reordering must not change the outcome.
	badForward := []core.LedgerEntry{
		{LedgerID: 1, Debit: dec("70.00")},
		{LedgerID: 2, Credit: dec("100.00")},
	}
	badReversed := []core.LedgerEntry{badForward[1], badForward[0]}
	if err := core.ValidateEntries(badForward); err == nil {
		t.Fatal("expected error for imbalanced forward set")
	}
	if err := core.ValidateEntries(badReversed); err == nil {
		t.Fatal("expected error for imbalanced reversed set")
	}
}

func TestValidateVoucher(t *testing.T) {
	balanced := []core.LedgerEntry{
		{LedgerID: 1, Debit: dec("1150.00")},
		{LedgerID: 2, Credit: dec("1000.00")},
		{LedgerID: 3, Credit: dec("150.00")},
	}

	tests := []struct {
		name      string
		voucher   core.Voucher
		entries   []core.LedgerEntry
		expectErr bool
	}{
		{
			name:    "sales voucher with matching net",
			voucher: core.Voucher{Type: core.VoucherSales, Date: day("2024-03-01"), NetAmount: dec("1150.00")},
			entries: balanced,
		},
		{
			name:      "net amount mismatch",
			voucher:   core.Voucher{Type: core.VoucherSales, Date: day("2024-03-01"), NetAmount: dec("1000.00")},
			entries:   balanced,
			expectErr: true,
		},
		{
			name:      "unknown voucher type",
			voucher:   core.Voucher{Type: "Refund", Date: day("2024-03-01"), NetAmount: dec("1150.00")},
			entries:   balanced,
			expectErr: true,
		},
		{
			name:      "missing date",
			voucher:   core.Voucher{Type: core.VoucherSales, NetAmount: dec("1150.00")},
			entries:   balanced,
			expectErr: true,
		},
		{
			name:    "sales order carries no entries",
			voucher: core.Voucher{Type: core.VoucherSalesOrder, Date: day("2024-03-01"), NetAmount: dec("500.00")},
		},
		{
			name:      "sales order with entries rejected",
			voucher:   core.Voucher{Type: core.VoucherSalesOrder, Date: day("2024-03-01"), NetAmount: dec("1150.00")},
			entries:   balanced,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateVoucher(tt.voucher, tt.entries)
			if tt.expectErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
