package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// voucherPrefixes maps each voucher type to its number prefix.
var voucherPrefixes = map[VoucherType]string{
	VoucherSales:         "SAL",
	VoucherPurchase:      "PUR",
	VoucherReceipt:       "RCT",
	VoucherPayment:       "PAY",
	VoucherContra:        "CON",
	VoucherJournal:       "JRN",
	VoucherCreditNote:    "CRN",
	VoucherDebitNote:     "DBN",
	VoucherSalesOrder:    "SOR",
	VoucherPurchaseOrder: "POR",
	VoucherDeliveryNote:  "DLV",
	VoucherReceiptNote:   "RNT",
}

// nextVoucherNumber reserves the next sequence number for
// (company, voucher type, year) inside the caller's transaction, so a failed
// confirmation rolls the reservation back with everything else. The upsert is
// concurrency-safe: competing confirmations serialize on the sequence row.
func nextVoucherNumber(ctx context.Context, tx pgx.Tx, companyID int, vtype VoucherType, year int) (string, error) {
	var lastNumber int64
	err := tx.QueryRow(ctx, `
		INSERT INTO voucher_sequences (company_id, voucher_type, year, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, voucher_type, year)
		DO UPDATE SET last_number = voucher_sequences.last_number + 1
		RETURNING last_number
	`, companyID, string(vtype), year).Scan(&lastNumber)
	if err != nil {
		return "", fmt.Errorf("failed to reserve voucher sequence number: %w", err)
	}

	prefix, ok := voucherPrefixes[vtype]
	if !ok {
		return "", fmt.Errorf("no number prefix for voucher type %q", vtype)
	}
	return fmt.Sprintf("%s-%d-%05d", prefix, year, lastNumber), nil
}
