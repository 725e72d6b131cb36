package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Cash Flow ─────────────────────────────────────────────────────────────────

// CashFlowRow aggregates the vouchers of one type within the period.
type CashFlowRow struct {
	Type   VoucherType     `json:"voucher_type"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowReport is the voucher-type-classified cash view: Receipt and Sales
// vouchers count as inflows, Payment and Purchase as outflows, summing net
// amounts. It is intentionally independent of the ledger-balance-based
// statements and the two views are not reconciled: a voucher whose postings
// diverge from its declared type semantics will make them differ.
type CashFlowReport struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Inflows      []CashFlowRow   `json:"inflows"`
	Outflows     []CashFlowRow   `json:"outflows"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetCashFlow  decimal.Decimal `json:"net_cash_flow"`
}

var (
	cashInflowTypes  = []VoucherType{VoucherReceipt, VoucherSales}
	cashOutflowTypes = []VoucherType{VoucherPayment, VoucherPurchase}
)

// CashFlow buckets vouchers dated within [from, to] by type.
func (idx *Index) CashFlow(from, to time.Time) *CashFlowReport {
	report := &CashFlowReport{From: from, To: to}

	totals := make(map[VoucherType]*CashFlowRow)
	for _, v := range idx.vouchersBetween(from, to) {
		row, ok := totals[v.Type]
		if !ok {
			row = &CashFlowRow{Type: v.Type}
			totals[v.Type] = row
		}
		row.Count++
		row.Amount = row.Amount.Add(v.NetAmount)
	}

	for _, t := range cashInflowTypes {
		if row := totals[t]; row != nil {
			report.Inflows = append(report.Inflows, *row)
			report.TotalInflow = report.TotalInflow.Add(row.Amount)
		}
	}
	for _, t := range cashOutflowTypes {
		if row := totals[t]; row != nil {
			report.Outflows = append(report.Outflows, *row)
			report.TotalOutflow = report.TotalOutflow.Add(row.Amount)
		}
	}
	report.NetCashFlow = report.TotalInflow.Sub(report.TotalOutflow)
	return report
}

// ── VAT Computation ───────────────────────────────────────────────────────────

// VATReport aggregates voucher gross and VAT amounts for a tax period.
// Output VAT = Sales − Credit Notes, Input VAT = Purchases − Debit Notes,
// Net VAT = Output − Input (positive = payable, negative = refundable).
type VATReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	SalesGross      decimal.Decimal `json:"sales_gross"`
	SalesVAT        decimal.Decimal `json:"sales_vat"`
	CreditNoteGross decimal.Decimal `json:"credit_note_gross"`
	CreditNoteVAT   decimal.Decimal `json:"credit_note_vat"`

	PurchaseGross  decimal.Decimal `json:"purchase_gross"`
	PurchaseVAT    decimal.Decimal `json:"purchase_vat"`
	DebitNoteGross decimal.Decimal `json:"debit_note_gross"`
	DebitNoteVAT   decimal.Decimal `json:"debit_note_vat"`

	OutputVAT decimal.Decimal `json:"output_vat"`
	InputVAT  decimal.Decimal `json:"input_vat"`
	NetVAT    decimal.Decimal `json:"net_vat"`
}

// VATComputation aggregates vouchers dated within the tax period [from, to].
func (idx *Index) VATComputation(from, to time.Time) *VATReport {
	report := &VATReport{From: from, To: to}
	for _, v := range idx.vouchersBetween(from, to) {
		switch v.Type {
		case VoucherSales:
			report.SalesGross = report.SalesGross.Add(v.GrossAmount)
			report.SalesVAT = report.SalesVAT.Add(v.VATAmount)
		case VoucherCreditNote:
			report.CreditNoteGross = report.CreditNoteGross.Add(v.GrossAmount)
			report.CreditNoteVAT = report.CreditNoteVAT.Add(v.VATAmount)
		case VoucherPurchase:
			report.PurchaseGross = report.PurchaseGross.Add(v.GrossAmount)
			report.PurchaseVAT = report.PurchaseVAT.Add(v.VATAmount)
		case VoucherDebitNote:
			report.DebitNoteGross = report.DebitNoteGross.Add(v.GrossAmount)
			report.DebitNoteVAT = report.DebitNoteVAT.Add(v.VATAmount)
		}
	}
	report.OutputVAT = report.SalesVAT.Sub(report.CreditNoteVAT)
	report.InputVAT = report.PurchaseVAT.Sub(report.DebitNoteVAT)
	report.NetVAT = report.OutputVAT.Sub(report.InputVAT)
	return report
}
