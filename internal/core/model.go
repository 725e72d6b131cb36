package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies a business transaction. The first eight types post
// to the general ledger; order and note types are commercial documents that
// carry no journal entries.
type VoucherType string

const (
	VoucherSales         VoucherType = "Sales"
	VoucherPurchase      VoucherType = "Purchase"
	VoucherReceipt       VoucherType = "Receipt"
	VoucherPayment       VoucherType = "Payment"
	VoucherContra        VoucherType = "Contra"
	VoucherJournal       VoucherType = "Journal"
	VoucherCreditNote    VoucherType = "Credit Note"
	VoucherDebitNote     VoucherType = "Debit Note"
	VoucherSalesOrder    VoucherType = "Sales Order"
	VoucherPurchaseOrder VoucherType = "Purchase Order"
	VoucherDeliveryNote  VoucherType = "Delivery Note"
	VoucherReceiptNote   VoucherType = "Receipt Note"
)

var voucherTypes = map[VoucherType]bool{
	VoucherSales: true, VoucherPurchase: true, VoucherReceipt: true,
	VoucherPayment: true, VoucherContra: true, VoucherJournal: true,
	VoucherCreditNote: true, VoucherDebitNote: true, VoucherSalesOrder: true,
	VoucherPurchaseOrder: true, VoucherDeliveryNote: true, VoucherReceiptNote: true,
}

// Valid reports whether t is one of the known voucher types.
func (t VoucherType) Valid() bool {
	return voucherTypes[t]
}

// Posts reports whether vouchers of this type carry ledger entries.
// Order and note documents never touch the general ledger.
func (t VoucherType) Posts() bool {
	switch t {
	case VoucherSalesOrder, VoucherPurchaseOrder, VoucherDeliveryNote, VoucherReceiptNote:
		return false
	}
	return t.Valid()
}

type VoucherStatus string

const (
	StatusDraft     VoucherStatus = "Draft"
	StatusConfirmed VoucherStatus = "Confirmed"
	StatusCancelled VoucherStatus = "Cancelled"
)

// BalanceType is the side an opening balance sits on. Dr is positive and Cr
// negative in the engine's internal sign convention.
type BalanceType string

const (
	BalanceDr BalanceType = "Dr"
	BalanceCr BalanceType = "Cr"
)

// GroupNature classifies an account group and decides which statement its
// ledgers contribute to.
type GroupNature string

const (
	NatureAssets      GroupNature = "Assets"
	NatureLiabilities GroupNature = "Liabilities"
	NatureCapital     GroupNature = "Capital"
	NatureIncome      GroupNature = "Income"
	NatureExpenses    GroupNature = "Expenses"
)

type Company struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}

type AccountGroup struct {
	ID        int         `json:"id"`
	CompanyID int         `json:"company_id"`
	Name      string      `json:"name"`
	Nature    GroupNature `json:"nature"`
}

// Ledger is a chart-of-accounts leaf account. OpeningBalance is a magnitude;
// OpeningBalanceType gives it a sign.
type Ledger struct {
	ID                 int             `json:"id"`
	CompanyID          int             `json:"company_id"`
	Name               string          `json:"name"`
	GroupID            int             `json:"group_id"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	OpeningBalanceType BalanceType     `json:"opening_balance_type"`
}

// Voucher is a transaction header. NetAmount is authoritative: for posting
// voucher types it must equal the debit-side total of the voucher's entries.
type Voucher struct {
	ID             int             `json:"id"`
	CompanyID      int             `json:"company_id"`
	Type           VoucherType     `json:"voucher_type"`
	Date           time.Time       `json:"date"`
	Number         string          `json:"voucher_number"`
	PartyLedgerID  *int            `json:"party_ledger_id,omitempty"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Status         VoucherStatus   `json:"status"`
	Narration      string          `json:"narration"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerEntry is one debit-or-credit posting line owned by a Voucher.
// A well-formed row has exactly one non-zero side; the engine tolerates both
// sides being present but never relies on it.
type LedgerEntry struct {
	ID        int             `json:"id"`
	VoucherID int             `json:"voucher_id"`
	LedgerID  int             `json:"ledger_id"`
	Debit     decimal.Decimal `json:"debit_amount"`
	Credit    decimal.Decimal `json:"credit_amount"`
}
