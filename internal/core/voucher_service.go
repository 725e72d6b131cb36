package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// EntryInput is one posting line of a voucher being created or replaced.
type EntryInput struct {
	LedgerID int
	Debit    decimal.Decimal
	Credit   decimal.Decimal
}

// VoucherInput carries everything needed to create or fully replace a voucher.
type VoucherInput struct {
	CompanyID      int
	Type           VoucherType
	Date           time.Time
	PartyLedgerID  *int
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	VATAmount      decimal.Decimal
	NetAmount      decimal.Decimal
	Narration      string
	Entries        []EntryInput
}

// VoucherFilter narrows List results. Zero values mean "no bound".
type VoucherFilter struct {
	Type   VoucherType
	Status VoucherStatus
	From   time.Time
	To     time.Time
}

// VoucherService owns the voucher lifecycle: Draft → Confirmed → Cancelled.
// Update is a full replace: the voucher's entries are deleted and recreated
// in one transaction, so callers never diff entry lists. The persistence layer
// guarantees a voucher and its entries are written atomically.
type VoucherService interface {
	Create(ctx context.Context, input VoucherInput) (*Voucher, error)
	Update(ctx context.Context, voucherID int, input VoucherInput) (*Voucher, error)
	Confirm(ctx context.Context, companyID, voucherID int) (*Voucher, error)
	Cancel(ctx context.Context, companyID, voucherID int) (*Voucher, error)
	Delete(ctx context.Context, companyID, voucherID int) error
	Get(ctx context.Context, companyID, voucherID int) (*Voucher, []LedgerEntry, error)
	List(ctx context.Context, companyID int, filter VoucherFilter) ([]Voucher, error)
}

type voucherService struct {
	pool *pgxpool.Pool
}

func NewVoucherService(pool *pgxpool.Pool) VoucherService {
	return &voucherService{pool: pool}
}

// Create validates and persists a new Draft voucher with its entries.
// The validator gate runs before anything touches the database.
func (s *voucherService) Create(ctx context.Context, input VoucherInput) (*Voucher, error) {
	header := voucherFromInput(input)
	if err := ValidateVoucher(header, entriesFromInput(input)); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkLedgerScope(ctx, tx, input.CompanyID, input.Entries, input.PartyLedgerID); err != nil {
		return nil, err
	}

	var v Voucher
	err = tx.QueryRow(ctx, `
		INSERT INTO vouchers (company_id, voucher_type, voucher_date, voucher_number, party_ledger_id,
		                      gross_amount, discount_amount, vat_amount, net_amount, status, narration, created_at)
		VALUES ($1, $2, $3, '', $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`, input.CompanyID, string(input.Type), input.Date, input.PartyLedgerID,
		input.GrossAmount, input.DiscountAmount, input.VATAmount, input.NetAmount,
		string(StatusDraft), input.Narration).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert voucher: %w", err)
	}

	if err := insertEntries(ctx, tx, v.ID, input.Entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit voucher: %w", err)
	}

	header.ID = v.ID
	header.CreatedAt = v.CreatedAt
	return &header, nil
}

// Update fully replaces a voucher: the header is rewritten and every entry is
// deleted and recreated inside one transaction. Cancelled vouchers are
// immutable.
func (s *voucherService) Update(ctx context.Context, voucherID int, input VoucherInput) (*Voucher, error) {
	header := voucherFromInput(input)
	if err := ValidateVoucher(header, entriesFromInput(input)); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status, number string
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT status, voucher_number, created_at FROM vouchers
		WHERE id = $1 AND company_id = $2
		FOR UPDATE
	`, voucherID, input.CompanyID).Scan(&status, &number, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("voucher %d not found", voucherID)
		}
		return nil, fmt.Errorf("failed to lock voucher %d: %w", voucherID, err)
	}
	if VoucherStatus(status) == StatusCancelled {
		return nil, fmt.Errorf("voucher %d is cancelled and cannot be edited", voucherID)
	}

	if err := s.checkLedgerScope(ctx, tx, input.CompanyID, input.Entries, input.PartyLedgerID); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE vouchers
		SET voucher_type = $1, voucher_date = $2, party_ledger_id = $3,
		    gross_amount = $4, discount_amount = $5, vat_amount = $6, net_amount = $7, narration = $8
		WHERE id = $9
	`, string(input.Type), input.Date, input.PartyLedgerID,
		input.GrossAmount, input.DiscountAmount, input.VATAmount, input.NetAmount,
		input.Narration, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to update voucher %d: %w", voucherID, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM voucher_entries WHERE voucher_id = $1", voucherID); err != nil {
		return nil, fmt.Errorf("failed to delete entries for voucher %d: %w", voucherID, err)
	}
	if err := insertEntries(ctx, tx, voucherID, input.Entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit voucher update: %w", err)
	}

	header.ID = voucherID
	header.Number = number
	header.Status = VoucherStatus(status)
	header.CreatedAt = createdAt
	return &header, nil
}

// Confirm transitions a Draft voucher to Confirmed, revalidating its stored
// entries and assigning a sequence number in the same transaction.
func (s *voucherService) Confirm(ctx context.Context, companyID, voucherID int) (*Voucher, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	v, err := lockVoucher(ctx, tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if v.Status != StatusDraft {
		return nil, fmt.Errorf("voucher %d must be Draft to confirm, current status: %s", voucherID, v.Status)
	}

	entries, err := fetchEntries(ctx, tx, voucherID)
	if err != nil {
		return nil, err
	}
	if err := ValidateVoucher(*v, entries); err != nil {
		return nil, err
	}

	number, err := nextVoucherNumber(ctx, tx, companyID, v.Type, v.Date.Year())
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE vouchers SET status = $1, voucher_number = $2 WHERE id = $3
	`, string(StatusConfirmed), number, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm voucher %d: %w", voucherID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	v.Status = StatusConfirmed
	v.Number = number
	return v, nil
}

// Cancel transitions a Draft or Confirmed voucher to Cancelled (terminal).
// Cancelled vouchers keep their entries but drop out of reporting.
func (s *voucherService) Cancel(ctx context.Context, companyID, voucherID int) (*Voucher, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	v, err := lockVoucher(ctx, tx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if v.Status == StatusCancelled {
		return nil, fmt.Errorf("voucher %d is already cancelled", voucherID)
	}

	if _, err := tx.Exec(ctx, "UPDATE vouchers SET status = $1 WHERE id = $2", string(StatusCancelled), voucherID); err != nil {
		return nil, fmt.Errorf("failed to cancel voucher %d: %w", voucherID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	v.Status = StatusCancelled
	return v, nil
}

// Delete removes a voucher and, via the schema's cascade, all of its entries.
func (s *voucherService) Delete(ctx context.Context, companyID, voucherID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM vouchers WHERE id = $1 AND company_id = $2", voucherID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete voucher %d: %w", voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %d not found", voucherID)
	}
	return nil
}

func (s *voucherService) Get(ctx context.Context, companyID, voucherID int) (*Voucher, []LedgerEntry, error) {
	var v Voucher
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_id, voucher_type, voucher_date, voucher_number, party_ledger_id,
		       gross_amount, discount_amount, vat_amount, net_amount, status, narration, created_at
		FROM vouchers
		WHERE id = $1 AND company_id = $2
	`, voucherID, companyID).Scan(
		&v.ID, &v.CompanyID, &v.Type, &v.Date, &v.Number, &v.PartyLedgerID,
		&v.GrossAmount, &v.DiscountAmount, &v.VATAmount, &v.NetAmount, &v.Status, &v.Narration, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("voucher %d not found", voucherID)
		}
		return nil, nil, fmt.Errorf("failed to fetch voucher %d: %w", voucherID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, voucher_id, ledger_id, debit_amount, credit_amount
		FROM voucher_entries WHERE voucher_id = $1 ORDER BY id
	`, voucherID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch entries for voucher %d: %w", voucherID, err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.VoucherID, &e.LedgerID, &e.Debit, &e.Credit); err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return &v, entries, nil
}

func (s *voucherService) List(ctx context.Context, companyID int, filter VoucherFilter) ([]Voucher, error) {
	q := `
		SELECT id, company_id, voucher_type, voucher_date, voucher_number, party_ledger_id,
		       gross_amount, discount_amount, vat_amount, net_amount, status, narration, created_at
		FROM vouchers
		WHERE company_id = $1`
	args := []any{companyID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		q += fmt.Sprintf(" AND voucher_type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		q += fmt.Sprintf(" AND voucher_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		q += fmt.Sprintf(" AND voucher_date <= $%d", len(args))
	}
	q += " ORDER BY voucher_date ASC, id ASC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []Voucher
	for rows.Next() {
		var v Voucher
		if err := rows.Scan(
			&v.ID, &v.CompanyID, &v.Type, &v.Date, &v.Number, &v.PartyLedgerID,
			&v.GrossAmount, &v.DiscountAmount, &v.VATAmount, &v.NetAmount, &v.Status, &v.Narration, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}
	return vouchers, nil
}

// checkLedgerScope verifies that every referenced ledger exists and belongs
// to the voucher's company. Cross-company references are rejected before any
// write happens.
func (s *voucherService) checkLedgerScope(ctx context.Context, tx pgx.Tx, companyID int, entries []EntryInput, partyLedgerID *int) error {
	ids := make([]int, 0, len(entries)+1)
	for _, e := range entries {
		ids = append(ids, e.LedgerID)
	}
	if partyLedgerID != nil {
		ids = append(ids, *partyLedgerID)
	}
	for _, id := range ids {
		var ledgerCompanyID int
		err := tx.QueryRow(ctx, "SELECT company_id FROM ledgers WHERE id = $1", id).Scan(&ledgerCompanyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("ledger %d not found", id)
			}
			return fmt.Errorf("failed to check ledger %d: %w", id, err)
		}
		if ledgerCompanyID != companyID {
			return &TenantScopeError{Entity: "ledger", EntityID: id, EntityCompanyID: ledgerCompanyID, WantCompanyID: companyID}
		}
	}
	return nil
}

func insertEntries(ctx context.Context, tx pgx.Tx, voucherID int, entries []EntryInput) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO voucher_entries (voucher_id, ledger_id, debit_amount, credit_amount)
			VALUES ($1, $2, $3, $4)
		`, voucherID, e.LedgerID, e.Debit, e.Credit)
		if err != nil {
			return fmt.Errorf("failed to insert entry for ledger %d: %w", e.LedgerID, err)
		}
	}
	return nil
}

func lockVoucher(ctx context.Context, tx pgx.Tx, companyID, voucherID int) (*Voucher, error) {
	var v Voucher
	err := tx.QueryRow(ctx, `
		SELECT id, company_id, voucher_type, voucher_date, voucher_number, party_ledger_id,
		       gross_amount, discount_amount, vat_amount, net_amount, status, narration, created_at
		FROM vouchers
		WHERE id = $1 AND company_id = $2
		FOR UPDATE
	`, voucherID, companyID).Scan(
		&v.ID, &v.CompanyID, &v.Type, &v.Date, &v.Number, &v.PartyLedgerID,
		&v.GrossAmount, &v.DiscountAmount, &v.VATAmount, &v.NetAmount, &v.Status, &v.Narration, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("voucher %d not found", voucherID)
		}
		return nil, fmt.Errorf("failed to lock voucher %d: %w", voucherID, err)
	}
	return &v, nil
}

func fetchEntries(ctx context.Context, tx pgx.Tx, voucherID int) ([]LedgerEntry, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, voucher_id, ledger_id, debit_amount, credit_amount
		FROM voucher_entries WHERE voucher_id = $1 ORDER BY id
	`, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for voucher %d: %w", voucherID, err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.VoucherID, &e.LedgerID, &e.Debit, &e.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

func voucherFromInput(input VoucherInput) Voucher {
	return Voucher{
		CompanyID:      input.CompanyID,
		Type:           input.Type,
		Date:           input.Date,
		PartyLedgerID:  input.PartyLedgerID,
		GrossAmount:    input.GrossAmount,
		DiscountAmount: input.DiscountAmount,
		VATAmount:      input.VATAmount,
		NetAmount:      input.NetAmount,
		Status:         StatusDraft,
		Narration:      input.Narration,
	}
}

func entriesFromInput(input VoucherInput) []LedgerEntry {
	entries := make([]LedgerEntry, len(input.Entries))
	for i, e := range input.Entries {
		entries[i] = LedgerEntry{LedgerID: e.LedgerID, Debit: e.Debit, Credit: e.Credit}
	}
	return entries
}
