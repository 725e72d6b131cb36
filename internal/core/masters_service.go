package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MastersService manages the chart of accounts (account groups and ledgers)
// and loads the tenant-scoped snapshot the reporting engine consumes.
type MastersService interface {
	GetCompany(ctx context.Context, companyID int) (*Company, error)

	CreateAccountGroup(ctx context.Context, g AccountGroup) (*AccountGroup, error)
	ListAccountGroups(ctx context.Context, companyID int) ([]AccountGroup, error)

	CreateLedger(ctx context.Context, l Ledger) (*Ledger, error)
	UpdateLedger(ctx context.Context, l Ledger) (*Ledger, error)
	// DeleteLedger refuses while postings reference the ledger.
	DeleteLedger(ctx context.Context, companyID, ledgerID int) error
	ListLedgers(ctx context.Context, companyID int) ([]Ledger, error)

	// LoadSnapshot fetches the four company-scoped collections in one shot.
	LoadSnapshot(ctx context.Context, companyID int) (*Snapshot, error)
}

type mastersService struct {
	pool *pgxpool.Pool
}

func NewMastersService(pool *pgxpool.Pool) MastersService {
	return &mastersService{pool: pool}
}

func (s *mastersService) GetCompany(ctx context.Context, companyID int) (*Company, error) {
	var c Company
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, base_currency FROM companies WHERE id = $1", companyID,
	).Scan(&c.ID, &c.Name, &c.BaseCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company %d not found", companyID)
		}
		return nil, fmt.Errorf("failed to fetch company %d: %w", companyID, err)
	}
	return &c, nil
}

func (s *mastersService) CreateAccountGroup(ctx context.Context, g AccountGroup) (*AccountGroup, error) {
	switch g.Nature {
	case NatureAssets, NatureLiabilities, NatureCapital, NatureIncome, NatureExpenses:
	default:
		return nil, fmt.Errorf("unknown group nature %q", g.Nature)
	}
	if g.Name == "" {
		return nil, errors.New("account group must have a name")
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO account_groups (company_id, name, nature)
		VALUES ($1, $2, $3)
		RETURNING id
	`, g.CompanyID, g.Name, string(g.Nature)).Scan(&g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create account group: %w", err)
	}
	return &g, nil
}

func (s *mastersService) ListAccountGroups(ctx context.Context, companyID int) ([]AccountGroup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, name, nature FROM account_groups
		WHERE company_id = $1 ORDER BY name, id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account groups: %w", err)
	}
	defer rows.Close()

	var groups []AccountGroup
	for rows.Next() {
		var g AccountGroup
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Name, &g.Nature); err != nil {
			return nil, fmt.Errorf("failed to scan account group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *mastersService) CreateLedger(ctx context.Context, l Ledger) (*Ledger, error) {
	if err := s.validateLedger(ctx, &l); err != nil {
		return nil, err
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO ledgers (company_id, name, group_id, opening_balance, opening_balance_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, l.CompanyID, l.Name, l.GroupID, l.OpeningBalance, string(l.OpeningBalanceType)).Scan(&l.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}
	return &l, nil
}

func (s *mastersService) UpdateLedger(ctx context.Context, l Ledger) (*Ledger, error) {
	if err := s.validateLedger(ctx, &l); err != nil {
		return nil, err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE ledgers
		SET name = $1, group_id = $2, opening_balance = $3, opening_balance_type = $4
		WHERE id = $5 AND company_id = $6
	`, l.Name, l.GroupID, l.OpeningBalance, string(l.OpeningBalanceType), l.ID, l.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to update ledger %d: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("ledger %d not found", l.ID)
	}
	return &l, nil
}

// validateLedger checks ledger fields and that the referenced group belongs
// to the same company.
func (s *mastersService) validateLedger(ctx context.Context, l *Ledger) error {
	if l.Name == "" {
		return errors.New("ledger must have a name")
	}
	if l.OpeningBalance.IsNegative() {
		return errors.New("opening balance is a magnitude and cannot be negative")
	}
	if l.OpeningBalanceType == "" {
		l.OpeningBalanceType = BalanceDr
	}
	if l.OpeningBalanceType != BalanceDr && l.OpeningBalanceType != BalanceCr {
		return fmt.Errorf("opening balance type must be Dr or Cr, got %q", l.OpeningBalanceType)
	}

	var groupCompanyID int
	err := s.pool.QueryRow(ctx, "SELECT company_id FROM account_groups WHERE id = $1", l.GroupID).Scan(&groupCompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("account group %d not found", l.GroupID)
		}
		return fmt.Errorf("failed to check account group %d: %w", l.GroupID, err)
	}
	if groupCompanyID != l.CompanyID {
		return &TenantScopeError{Entity: "account group", EntityID: l.GroupID, EntityCompanyID: groupCompanyID, WantCompanyID: l.CompanyID}
	}
	return nil
}

func (s *mastersService) DeleteLedger(ctx context.Context, companyID, ledgerID int) error {
	var count int
	err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM voucher_entries WHERE ledger_id = $1", ledgerID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count postings for ledger %d: %w", ledgerID, err)
	}
	if count > 0 {
		return fmt.Errorf("ledger %d has %d postings and cannot be deleted", ledgerID, count)
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM ledgers WHERE id = $1 AND company_id = $2", ledgerID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger %d: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger %d not found", ledgerID)
	}
	return nil
}

func (s *mastersService) ListLedgers(ctx context.Context, companyID int) ([]Ledger, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, name, group_id, opening_balance, opening_balance_type
		FROM ledgers WHERE company_id = $1 ORDER BY name, id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []Ledger
	for rows.Next() {
		var l Ledger
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.GroupID, &l.OpeningBalance, &l.OpeningBalanceType); err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, rows.Err()
}

// LoadSnapshot pulls the company's vouchers, entries, ledgers and groups.
// Entries are joined through their voucher so the result stays tenant-scoped
// even if an orphan row exists in voucher_entries.
func (s *mastersService) LoadSnapshot(ctx context.Context, companyID int) (*Snapshot, error) {
	snap := &Snapshot{CompanyID: companyID}

	var err error
	if snap.Groups, err = s.ListAccountGroups(ctx, companyID); err != nil {
		return nil, err
	}
	if snap.Ledgers, err = s.ListLedgers(ctx, companyID); err != nil {
		return nil, err
	}

	vrows, err := s.pool.Query(ctx, `
		SELECT id, company_id, voucher_type, voucher_date, voucher_number, party_ledger_id,
		       gross_amount, discount_amount, vat_amount, net_amount, status, narration, created_at
		FROM vouchers WHERE company_id = $1 ORDER BY voucher_date, id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vouchers: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var v Voucher
		if err := vrows.Scan(
			&v.ID, &v.CompanyID, &v.Type, &v.Date, &v.Number, &v.PartyLedgerID,
			&v.GrossAmount, &v.DiscountAmount, &v.VATAmount, &v.NetAmount, &v.Status, &v.Narration, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		snap.Vouchers = append(snap.Vouchers, v)
	}
	if err := vrows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	erows, err := s.pool.Query(ctx, `
		SELECT e.id, e.voucher_id, e.ledger_id, e.debit_amount, e.credit_amount
		FROM voucher_entries e
		JOIN vouchers v ON v.id = e.voucher_id
		WHERE v.company_id = $1
		ORDER BY e.id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer erows.Close()
	for erows.Next() {
		var e LedgerEntry
		if err := erows.Scan(&e.ID, &e.VoucherID, &e.LedgerID, &e.Debit, &e.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := erows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return snap, nil
}
