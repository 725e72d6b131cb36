package app

import (
	"time"

	"finbook/internal/core"
)

// VoucherResult is one voucher with its posting lines.
type VoucherResult struct {
	Voucher *core.Voucher      `json:"voucher"`
	Entries []core.LedgerEntry `json:"entries"`
}

// TrialBalanceResult wraps the report with company identification so adapters
// never query masters themselves.
type TrialBalanceResult struct {
	CompanyName string                   `json:"company_name"`
	Currency    string                   `json:"currency"`
	Report      *core.TrialBalanceReport `json:"report"`
}

type BalanceSheetResult struct {
	CompanyName string                   `json:"company_name"`
	Currency    string                   `json:"currency"`
	Report      *core.BalanceSheetReport `json:"report"`
}

type ProfitAndLossResult struct {
	CompanyName string                    `json:"company_name"`
	Currency    string                    `json:"currency"`
	Report      *core.ProfitAndLossReport `json:"report"`
}

type CashFlowResult struct {
	CompanyName string               `json:"company_name"`
	Currency    string               `json:"currency"`
	Report      *core.CashFlowReport `json:"report"`
}

type VATResult struct {
	CompanyName string          `json:"company_name"`
	Currency    string          `json:"currency"`
	Report      *core.VATReport `json:"report"`
}

type StatementResult struct {
	CompanyName string                `json:"company_name"`
	Currency    string                `json:"currency"`
	Statement   *core.LedgerStatement `json:"statement"`
}

type ReconciliationResult struct {
	CompanyName string                         `json:"company_name"`
	Currency    string                         `json:"currency"`
	Report      *core.BankReconciliationReport `json:"report"`
}

// ExportRequest selects one report, a format, and the report's parameters.
// LedgerID is only used for statement exports; From is ignored by the
// point-in-time reports (trial-balance, balance-sheet), which read To as the
// as-of date.
type ExportRequest struct {
	CompanyID int
	Report    string // trial-balance, balance-sheet, vat, statement
	Format    string // pdf, xlsx
	LedgerID  int
	From      time.Time
	To        time.Time
}

// ExportResult carries the rendered bytes plus the metadata adapters need to
// serve or save the file.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
