package app

import (
	"context"
	"time"

	"finbook/internal/core"
)

// ApplicationService is the single interface all UI adapters (Web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// LoadDefaultCompany loads the active company. Uses COMPANY_ID env var if
	// set; otherwise expects exactly one company in the database.
	LoadDefaultCompany(ctx context.Context) (*core.Company, error)

	// GetCompany returns one company by id.
	GetCompany(ctx context.Context, companyID int) (*core.Company, error)

	// CreateAccountGroup creates a new account group in the company's chart.
	CreateAccountGroup(ctx context.Context, g core.AccountGroup) (*core.AccountGroup, error)

	// ListAccountGroups returns the company's account groups.
	ListAccountGroups(ctx context.Context, companyID int) ([]core.AccountGroup, error)

	// CreateLedger creates a new ledger account.
	CreateLedger(ctx context.Context, l core.Ledger) (*core.Ledger, error)

	// UpdateLedger updates a ledger's name, group and opening balance.
	UpdateLedger(ctx context.Context, l core.Ledger) (*core.Ledger, error)

	// DeleteLedger removes a ledger; it refuses while postings reference it.
	DeleteLedger(ctx context.Context, companyID, ledgerID int) error

	// ListLedgers returns the company's ledgers.
	ListLedgers(ctx context.Context, companyID int) ([]core.Ledger, error)

	// CreateVoucher validates and stores a new Draft voucher with its entries.
	CreateVoucher(ctx context.Context, input core.VoucherInput) (*core.Voucher, error)

	// UpdateVoucher fully replaces a voucher's header and entries.
	UpdateVoucher(ctx context.Context, voucherID int, input core.VoucherInput) (*core.Voucher, error)

	// ConfirmVoucher transitions a Draft voucher to Confirmed and assigns its
	// sequence number.
	ConfirmVoucher(ctx context.Context, companyID, voucherID int) (*core.Voucher, error)

	// CancelVoucher transitions a voucher to Cancelled (terminal).
	CancelVoucher(ctx context.Context, companyID, voucherID int) (*core.Voucher, error)

	// DeleteVoucher removes a voucher and its entries.
	DeleteVoucher(ctx context.Context, companyID, voucherID int) error

	// GetVoucher returns one voucher with its entries.
	GetVoucher(ctx context.Context, companyID, voucherID int) (*VoucherResult, error)

	// ListVouchers returns vouchers matching the filter.
	ListVouchers(ctx context.Context, companyID int, filter core.VoucherFilter) ([]core.Voucher, error)

	// GetTrialBalance returns the trial balance as of a date.
	GetTrialBalance(ctx context.Context, companyID int, asOf time.Time) (*TrialBalanceResult, error)

	// GetBalanceSheet returns the balance sheet as of a date.
	GetBalanceSheet(ctx context.Context, companyID int, asOf time.Time) (*BalanceSheetResult, error)

	// GetProfitAndLoss returns the P&L for a period.
	GetProfitAndLoss(ctx context.Context, companyID int, from, to time.Time) (*ProfitAndLossResult, error)

	// GetCashFlow returns the voucher-classified cash flow for a period.
	GetCashFlow(ctx context.Context, companyID int, from, to time.Time) (*CashFlowResult, error)

	// GetVATComputation returns the VAT computation for a tax period.
	GetVATComputation(ctx context.Context, companyID int, from, to time.Time) (*VATResult, error)

	// GetStatement returns the running ledger statement for a period.
	GetStatement(ctx context.Context, companyID, ledgerID int, from, to time.Time) (*StatementResult, error)

	// GetBankReconciliation returns the reconciliation report for a bank ledger.
	GetBankReconciliation(ctx context.Context, companyID, ledgerID int, asOf time.Time) (*ReconciliationResult, error)

	// MarkReconciled flags one posting as matched against the bank statement.
	MarkReconciled(ctx context.Context, companyID, voucherID, ledgerID int, reconciledOn time.Time) error

	// MarkPending reverts a posting to the pending state.
	MarkPending(ctx context.Context, companyID, voucherID, ledgerID int) error

	// ExportReport renders a report as a downloadable file. Supported reports:
	// trial-balance, balance-sheet, vat, statement. Supported formats: pdf, xlsx.
	ExportReport(ctx context.Context, req ExportRequest) (*ExportResult, error)
}
