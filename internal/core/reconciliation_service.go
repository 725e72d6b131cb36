package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReconciliationService persists the external reconciliation-status record,
// keyed by (voucher, ledger). Postings without a record are Pending.
type ReconciliationService interface {
	MarkReconciled(ctx context.Context, companyID, voucherID, ledgerID int, reconciledOn time.Time) error
	MarkPending(ctx context.Context, companyID, voucherID, ledgerID int) error
	LoadStatuses(ctx context.Context, ledgerID int) (map[ReconciliationKey]ReconciliationStatus, error)
}

type reconciliationService struct {
	pool *pgxpool.Pool
}

func NewReconciliationService(pool *pgxpool.Pool) ReconciliationService {
	return &reconciliationService{pool: pool}
}

// MarkReconciled upserts a Reconciled status for the posting. The voucher is
// checked against the company so one tenant cannot flag another's postings.
func (s *reconciliationService) MarkReconciled(ctx context.Context, companyID, voucherID, ledgerID int, reconciledOn time.Time) error {
	return s.mark(ctx, companyID, voucherID, ledgerID, ReconciliationReconciled, &reconciledOn)
}

func (s *reconciliationService) MarkPending(ctx context.Context, companyID, voucherID, ledgerID int) error {
	return s.mark(ctx, companyID, voucherID, ledgerID, ReconciliationPending, nil)
}

func (s *reconciliationService) mark(ctx context.Context, companyID, voucherID, ledgerID int, status ReconciliationStatus, reconciledOn *time.Time) error {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM voucher_entries e
			JOIN vouchers v ON v.id = e.voucher_id
			WHERE e.voucher_id = $1 AND e.ledger_id = $2 AND v.company_id = $3
		)
	`, voucherID, ledgerID, companyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check posting (voucher %d, ledger %d): %w", voucherID, ledgerID, err)
	}
	if !exists {
		return fmt.Errorf("no posting found for voucher %d on ledger %d", voucherID, ledgerID)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO bank_reconciliations (voucher_id, ledger_id, status, reconciled_on)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (voucher_id, ledger_id)
		DO UPDATE SET status = EXCLUDED.status, reconciled_on = EXCLUDED.reconciled_on
	`, voucherID, ledgerID, string(status), reconciledOn)
	if err != nil {
		return fmt.Errorf("failed to upsert reconciliation status: %w", err)
	}
	return nil
}

func (s *reconciliationService) LoadStatuses(ctx context.Context, ledgerID int) (map[ReconciliationKey]ReconciliationStatus, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT voucher_id, ledger_id, status FROM bank_reconciliations WHERE ledger_id = $1
	`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[ReconciliationKey]ReconciliationStatus)
	for rows.Next() {
		var key ReconciliationKey
		var status string
		if err := rows.Scan(&key.VoucherID, &key.LedgerID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation status: %w", err)
		}
		statuses[key] = ReconciliationStatus(status)
	}
	return statuses, rows.Err()
}
