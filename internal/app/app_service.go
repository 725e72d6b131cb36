package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"finbook/internal/core"
	"finbook/internal/export"
	"finbook/internal/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appService struct {
	pool     *pgxpool.Pool
	vouchers core.VoucherService
	masters  core.MastersService
	reports  core.ReportingService
	recon    core.ReconciliationService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	vouchers core.VoucherService,
	masters core.MastersService,
	reports core.ReportingService,
	recon core.ReconciliationService,
) ApplicationService {
	return &appService{
		pool:     pool,
		vouchers: vouchers,
		masters:  masters,
		reports:  reports,
		recon:    recon,
	}
}

// LoadDefaultCompany loads the active company. Uses COMPANY_ID env var if set;
// otherwise expects exactly one company in the database.
func (s *appService) LoadDefaultCompany(ctx context.Context) (*core.Company, error) {
	if raw := os.Getenv("COMPANY_ID"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COMPANY_ID %q: %w", raw, err)
		}
		return s.masters.GetCompany(ctx, id)
	}

	var c core.Company
	rows, err := s.pool.Query(ctx, "SELECT id, name, base_currency FROM companies ORDER BY id LIMIT 2")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
		if count > 1 {
			return nil, errors.New("multiple companies exist; set COMPANY_ID to choose one")
		}
		if err := rows.Scan(&c.ID, &c.Name, &c.BaseCurrency); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("no companies exist; create one first")
	}
	return &c, nil
}

func (s *appService) GetCompany(ctx context.Context, companyID int) (*core.Company, error) {
	return s.masters.GetCompany(ctx, companyID)
}

func (s *appService) CreateAccountGroup(ctx context.Context, g core.AccountGroup) (*core.AccountGroup, error) {
	return s.masters.CreateAccountGroup(ctx, g)
}

func (s *appService) ListAccountGroups(ctx context.Context, companyID int) ([]core.AccountGroup, error) {
	return s.masters.ListAccountGroups(ctx, companyID)
}

func (s *appService) CreateLedger(ctx context.Context, l core.Ledger) (*core.Ledger, error) {
	return s.masters.CreateLedger(ctx, l)
}

func (s *appService) UpdateLedger(ctx context.Context, l core.Ledger) (*core.Ledger, error) {
	return s.masters.UpdateLedger(ctx, l)
}

func (s *appService) DeleteLedger(ctx context.Context, companyID, ledgerID int) error {
	return s.masters.DeleteLedger(ctx, companyID, ledgerID)
}

func (s *appService) ListLedgers(ctx context.Context, companyID int) ([]core.Ledger, error) {
	return s.masters.ListLedgers(ctx, companyID)
}

func (s *appService) CreateVoucher(ctx context.Context, input core.VoucherInput) (*core.Voucher, error) {
	return s.vouchers.Create(ctx, input)
}

func (s *appService) UpdateVoucher(ctx context.Context, voucherID int, input core.VoucherInput) (*core.Voucher, error) {
	return s.vouchers.Update(ctx, voucherID, input)
}

func (s *appService) ConfirmVoucher(ctx context.Context, companyID, voucherID int) (*core.Voucher, error) {
	return s.vouchers.Confirm(ctx, companyID, voucherID)
}

func (s *appService) CancelVoucher(ctx context.Context, companyID, voucherID int) (*core.Voucher, error) {
	return s.vouchers.Cancel(ctx, companyID, voucherID)
}

func (s *appService) DeleteVoucher(ctx context.Context, companyID, voucherID int) error {
	return s.vouchers.Delete(ctx, companyID, voucherID)
}

func (s *appService) GetVoucher(ctx context.Context, companyID, voucherID int) (*VoucherResult, error) {
	v, entries, err := s.vouchers.Get(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	return &VoucherResult{Voucher: v, Entries: entries}, nil
}

func (s *appService) ListVouchers(ctx context.Context, companyID int, filter core.VoucherFilter) ([]core.Voucher, error) {
	return s.vouchers.List(ctx, companyID, filter)
}

func (s *appService) GetTrialBalance(ctx context.Context, companyID int, asOf time.Time) (*TrialBalanceResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.TrialBalance(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("trial_balance")
	return &TrialBalanceResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) GetBalanceSheet(ctx context.Context, companyID int, asOf time.Time) (*BalanceSheetResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.BalanceSheet(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("balance_sheet")
	return &BalanceSheetResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) GetProfitAndLoss(ctx context.Context, companyID int, from, to time.Time) (*ProfitAndLossResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.ProfitAndLoss(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("profit_and_loss")
	return &ProfitAndLossResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) GetCashFlow(ctx context.Context, companyID int, from, to time.Time) (*CashFlowResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.CashFlow(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("cash_flow")
	return &CashFlowResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) GetVATComputation(ctx context.Context, companyID int, from, to time.Time) (*VATResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.VATComputation(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("vat")
	return &VATResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) GetStatement(ctx context.Context, companyID, ledgerID int, from, to time.Time) (*StatementResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stmt, err := s.reports.Statement(ctx, companyID, ledgerID, from, to)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("statement")
	return &StatementResult{CompanyName: company.Name, Currency: company.BaseCurrency, Statement: stmt}, nil
}

func (s *appService) GetBankReconciliation(ctx context.Context, companyID, ledgerID int, asOf time.Time) (*ReconciliationResult, error) {
	company, err := s.masters.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.BankReconciliation(ctx, companyID, ledgerID, asOf)
	if err != nil {
		return nil, err
	}
	metrics.CountReport("bank_reconciliation")
	return &ReconciliationResult{CompanyName: company.Name, Currency: company.BaseCurrency, Report: report}, nil
}

func (s *appService) MarkReconciled(ctx context.Context, companyID, voucherID, ledgerID int, reconciledOn time.Time) error {
	return s.recon.MarkReconciled(ctx, companyID, voucherID, ledgerID, reconciledOn)
}

func (s *appService) MarkPending(ctx context.Context, companyID, voucherID, ledgerID int) error {
	return s.recon.MarkPending(ctx, companyID, voucherID, ledgerID)
}

// ExportReport renders one report to PDF or XLSX bytes.
func (s *appService) ExportReport(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	company, err := s.masters.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch req.Report {
	case "trial-balance":
		report, err := s.reports.TrialBalance(ctx, req.CompanyID, req.To)
		if err != nil {
			return nil, err
		}
		data, err = renderFormat(req.Format,
			func() ([]byte, error) { return export.BuildTrialBalancePDF(company, report) },
			func() ([]byte, error) { return export.BuildTrialBalanceXLSX(company, report) })
		if err != nil {
			return nil, err
		}
	case "balance-sheet":
		report, err := s.reports.BalanceSheet(ctx, req.CompanyID, req.To)
		if err != nil {
			return nil, err
		}
		data, err = renderFormat(req.Format,
			func() ([]byte, error) { return export.BuildBalanceSheetPDF(company, report) },
			func() ([]byte, error) { return export.BuildBalanceSheetXLSX(company, report) })
		if err != nil {
			return nil, err
		}
	case "vat":
		report, err := s.reports.VATComputation(ctx, req.CompanyID, req.From, req.To)
		if err != nil {
			return nil, err
		}
		data, err = renderFormat(req.Format,
			func() ([]byte, error) { return export.BuildVATPDF(company, report) },
			func() ([]byte, error) { return export.BuildVATXLSX(company, report) })
		if err != nil {
			return nil, err
		}
	case "statement":
		stmt, err := s.reports.Statement(ctx, req.CompanyID, req.LedgerID, req.From, req.To)
		if err != nil {
			return nil, err
		}
		data, err = renderFormat(req.Format,
			func() ([]byte, error) { return export.BuildStatementPDF(company, stmt) },
			func() ([]byte, error) { return export.BuildStatementXLSX(company, stmt) })
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown report %q", req.Report)
	}

	metrics.CountReport("export_" + req.Report)
	contentType := "application/pdf"
	if req.Format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", req.Report, req.To.Format("2006-01-02"), req.Format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func renderFormat(format string, pdf, xlsx func() ([]byte, error)) ([]byte, error) {
	switch format {
	case "pdf":
		return pdf()
	case "xlsx":
		return xlsx()
	default:
		return nil, fmt.Errorf("unknown export format %q (use pdf or xlsx)", format)
	}
}
