package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReportingService provides the read-only report surface. Each call loads a
// fresh company snapshot, builds the join index once, and delegates to the
// pure generators, so the report pages share one index instead of re-deriving
// the voucher/entry/ledger joins independently.
type ReportingService interface {
	TrialBalance(ctx context.Context, companyID int, asOf time.Time) (*TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, companyID int, asOf time.Time) (*BalanceSheetReport, error)
	ProfitAndLoss(ctx context.Context, companyID int, from, to time.Time) (*ProfitAndLossReport, error)
	CashFlow(ctx context.Context, companyID int, from, to time.Time) (*CashFlowReport, error)
	VATComputation(ctx context.Context, companyID int, from, to time.Time) (*VATReport, error)
	Statement(ctx context.Context, companyID, ledgerID int, from, to time.Time) (*LedgerStatement, error)
	BankReconciliation(ctx context.Context, companyID, ledgerID int, asOf time.Time) (*BankReconciliationReport, error)
}

type reportingService struct {
	masters MastersService
	recon   ReconciliationService
	log     zerolog.Logger
}

// NewReportingService constructs a ReportingService over the masters loader
// and the reconciliation status store.
func NewReportingService(masters MastersService, recon ReconciliationService, log zerolog.Logger) ReportingService {
	return &reportingService{masters: masters, recon: recon, log: log}
}

// index loads the company snapshot and builds the shared join index.
// Excluded dangling entries are surfaced as a diagnostic, never an error.
func (s *reportingService) index(ctx context.Context, companyID int) (*Index, error) {
	snap, err := s.masters.LoadSnapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	idx, err := NewIndex(*snap)
	if err != nil {
		return nil, err
	}
	if n := idx.Skipped(); n > 0 {
		s.log.Warn().Int("company_id", companyID).Int("skipped_entries", n).
			Msg("excluded entries with dangling voucher or ledger references")
	}
	return idx, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, companyID int, asOf time.Time) (*TrialBalanceReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.TrialBalance(asOf), nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, companyID int, asOf time.Time) (*BalanceSheetReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.BalanceSheet(asOf), nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID int, from, to time.Time) (*ProfitAndLossReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.ProfitAndLoss(from, to), nil
}

func (s *reportingService) CashFlow(ctx context.Context, companyID int, from, to time.Time) (*CashFlowReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.CashFlow(from, to), nil
}

func (s *reportingService) VATComputation(ctx context.Context, companyID int, from, to time.Time) (*VATReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.VATComputation(from, to), nil
}

func (s *reportingService) Statement(ctx context.Context, companyID, ledgerID int, from, to time.Time) (*LedgerStatement, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return idx.Statement(ledgerID, from, to)
}

func (s *reportingService) BankReconciliation(ctx context.Context, companyID, ledgerID int, asOf time.Time) (*BankReconciliationReport, error) {
	idx, err := s.index(ctx, companyID)
	if err != nil {
		return nil, err
	}
	statuses, err := s.recon.LoadStatuses(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return idx.BankReconciliation(ledgerID, asOf, statuses)
}
