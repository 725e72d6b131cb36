package core_test

import (
	"context"
	"os"
	"testing"

	"finbook/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB. Company 2 exists only to prove tenant isolation.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE bank_reconciliations, voucher_entries, vouchers, voucher_sequences, ledgers, account_groups, companies CASCADE;

		INSERT INTO companies (id, name, base_currency) VALUES
		(1, 'Test Trading Co', 'EUR'),
		(2, 'Other Co', 'EUR');

		INSERT INTO account_groups (id, company_id, name, nature) VALUES
		(1, 1, 'Current Assets', 'Assets'),
		(2, 1, 'Current Liabilities', 'Liabilities'),
		(3, 1, 'Capital Account', 'Capital'),
		(4, 1, 'Direct Income', 'Income'),
		(5, 1, 'Indirect Expenses', 'Expenses'),
		(6, 2, 'Current Assets', 'Assets');

		INSERT INTO ledgers (id, company_id, name, group_id, opening_balance, opening_balance_type) VALUES
		(1, 1, 'Cash', 1, 1000, 'Dr'),
		(2, 1, 'Bank', 1, 5000, 'Dr'),
		(3, 1, 'VAT Payable', 2, 0, 'Dr'),
		(4, 1, 'Owner Capital', 3, 6000, 'Cr'),
		(5, 1, 'Sales Revenue', 4, 0, 'Dr'),
		(6, 1, 'Rent', 5, 0, 'Dr'),
		(7, 2, 'Foreign Cash', 6, 0, 'Dr');

		SELECT setval('ledgers_id_seq', 100);
		SELECT setval('account_groups_id_seq', 100);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func salesInput() core.VoucherInput {
	return core.VoucherInput{
		CompanyID:   1,
		Type:        core.VoucherSales,
		Date:        day("2024-01-05"),
		GrossAmount: dec("1000"),
		VATAmount:   dec("150"),
		NetAmount:   dec("1150"),
		Narration:   "invoice 42",
		Entries: []core.EntryInput{
			{LedgerID: 1, Debit: dec("1150")},
			{LedgerID: 5, Credit: dec("1000")},
			{LedgerID: 3, Credit: dec("150")},
		},
	}
}

func TestVoucherService_Lifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	v, err := svc.Create(ctx, salesInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if v.Status != core.StatusDraft {
		t.Errorf("new voucher status = %s, want Draft", v.Status)
	}
	if v.Number != "" {
		t.Errorf("draft voucher number = %q, want empty (numbers assigned at confirmation)", v.Number)
	}

	confirmed, err := svc.Confirm(ctx, 1, v.ID)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if confirmed.Status != core.StatusConfirmed {
		t.Errorf("status = %s, want Confirmed", confirmed.Status)
	}
	if confirmed.Number != "SAL-2024-00001" {
		t.Errorf("voucher number = %q, want SAL-2024-00001", confirmed.Number)
	}

	// Confirming twice must fail.
	if _, err := svc.Confirm(ctx, 1, v.ID); err == nil {
		t.Error("expected second Confirm to fail")
	}

	cancelled, err := svc.Cancel(ctx, 1, v.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != core.StatusCancelled {
		t.Errorf("status = %s, want Cancelled", cancelled.Status)
	}

	// Cancelled vouchers are immutable.
	if _, err := svc.Update(ctx, v.ID, salesInput()); err == nil {
		t.Error("expected Update of cancelled voucher to fail")
	}
	if _, err := svc.Cancel(ctx, 1, v.ID); err == nil {
		t.Error("expected second Cancel to fail")
	}
}

func TestVoucherService_CreateRejectsImbalance(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	input := salesInput()
	input.NetAmount = dec("100")
	input.Entries = []core.EntryInput{
		{LedgerID: 1, Debit: dec("100")},
		{LedgerID: 5, Credit: dec("90")},
	}

	if _, err := svc.Create(ctx, input); err == nil {
		t.Fatal("expected imbalanced voucher to be rejected")
	}

	// Nothing may have been written.
	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM vouchers").Scan(&count); err != nil {
		t.Fatalf("count vouchers: %v", err)
	}
	if count != 0 {
		t.Errorf("voucher count = %d, want 0", count)
	}
}

func TestVoucherService_CreateRejectsCrossCompanyLedger(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	input := salesInput()
	input.Entries[1].LedgerID = 7 // belongs to company 2

	if _, err := svc.Create(ctx, input); err == nil {
		t.Fatal("expected cross-company ledger reference to be rejected")
	}
}

func TestVoucherService_UpdateReplacesEntries(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	v, err := svc.Create(ctx, salesInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := core.VoucherInput{
		CompanyID:   1,
		Type:        core.VoucherSales,
		Date:        day("2024-01-06"),
		GrossAmount: dec("500"),
		VATAmount:   dec("75"),
		NetAmount:   dec("575"),
		Narration:   "invoice 42 corrected",
		Entries: []core.EntryInput{
			{LedgerID: 2, Debit: dec("575")},
			{LedgerID: 5, Credit: dec("500")},
			{LedgerID: 3, Credit: dec("75")},
		},
	}
	if _, err := svc.Update(ctx, v.ID, replacement); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, entries, err := svc.Get(ctx, 1, v.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Narration != "invoice 42 corrected" {
		t.Errorf("narration = %q, want replacement narration", got.Narration)
	}
	if !got.NetAmount.Equal(dec("575")) {
		t.Errorf("net amount = %s, want 575", got.NetAmount)
	}
	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3 (old set fully replaced)", len(entries))
	}
	for _, e := range entries {
		if e.LedgerID == 1 {
			t.Error("old Cash entry survived the replace")
		}
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit).Sub(e.Credit)
	}
	if !total.IsZero() {
		t.Errorf("replaced entries are imbalanced by %s", total)
	}
}

func TestVoucherService_NumberingSequences(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	confirm := func(input core.VoucherInput) string {
		t.Helper()
		v, err := svc.Create(ctx, input)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		confirmed, err := svc.Confirm(ctx, 1, v.ID)
		if err != nil {
			t.Fatalf("Confirm failed: %v", err)
		}
		return confirmed.Number
	}

	payment := core.VoucherInput{
		CompanyID: 1, Type: core.VoucherPayment, Date: day("2024-02-01"),
		GrossAmount: dec("400"), NetAmount: dec("400"),
		Entries: []core.EntryInput{
			{LedgerID: 6, Debit: dec("400")},
			{LedgerID: 2, Credit: dec("400")},
		},
	}

	if got := confirm(salesInput()); got != "SAL-2024-00001" {
		t.Errorf("first sales number = %q, want SAL-2024-00001", got)
	}
	if got := confirm(salesInput()); got != "SAL-2024-00002" {
		t.Errorf("second sales number = %q, want SAL-2024-00002", got)
	}
	if got := confirm(payment); got != "PAY-2024-00001" {
		t.Errorf("payment sequence must be independent, got %q", got)
	}

	// A new year restarts the sequence.
	nextYear := salesInput()
	nextYear.Date = day("2025-01-03")
	if got := confirm(nextYear); got != "SAL-2025-00001" {
		t.Errorf("new-year sales number = %q, want SAL-2025-00001", got)
	}
}

func TestVoucherService_ListFilters(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewVoucherService(pool)
	ctx := context.Background()

	v1, err := svc.Create(ctx, salesInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Confirm(ctx, 1, v1.ID); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if _, err := svc.Create(ctx, salesInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	confirmed, err := svc.List(ctx, 1, core.VoucherFilter{Status: core.StatusConfirmed})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(confirmed) != 1 {
		t.Errorf("confirmed vouchers = %d, want 1", len(confirmed))
	}

	all, err := svc.List(ctx, 1, core.VoucherFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all vouchers = %d, want 2", len(all))
	}

	none, err := svc.List(ctx, 2, core.VoucherFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("company 2 vouchers = %d, want 0", len(none))
	}
}
