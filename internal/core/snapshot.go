package core

import (
	"sort"
	"time"
)

// Snapshot is an immutable, tenant-scoped view of one company's books, as
// returned by the persistence layer. Every engine computation runs against a
// Snapshot; no ambient "current company" state exists anywhere.
type Snapshot struct {
	CompanyID int
	Vouchers  []Voucher
	Entries   []LedgerEntry
	Ledgers   []Ledger
	Groups    []AccountGroup
}

// IndexOption configures Index construction.
type IndexOption func(*Index)

// WithStatuses overrides the set of voucher statuses included in balance and
// report aggregation. The default is Confirmed only; pass Draft and/or
// Cancelled to reproduce a books-as-entered view.
func WithStatuses(statuses ...VoucherStatus) IndexOption {
	return func(idx *Index) {
		idx.include = make(map[VoucherStatus]bool, len(statuses))
		for _, s := range statuses {
			idx.include[s] = true
		}
	}
}

// Index is the shared join structure built once per report invocation:
// voucher by id, ledger by id, group by id, and per-ledger entry lists sorted
// by voucher date (ties broken by voucher id, then entry id). All statement
// generators and the balance engine read from it.
type Index struct {
	companyID int
	vouchers  map[int]*Voucher
	ledgers   map[int]*Ledger
	groups    map[int]*AccountGroup

	byLedger map[int][]LedgerEntry

	// vouchers passing the status filter, ordered by date then id; used by
	// the voucher-classified reports (cash flow, VAT).
	orderedVouchers []*Voucher
	// ledgers ordered by name then id, for deterministic report rows.
	orderedLedgers []*Ledger

	include map[VoucherStatus]bool
	skipped int
}

// NewIndex builds the join index for one company snapshot. It fails with a
// *TenantScopeError if any record belongs to a different company, and
// excludes (but counts) entries whose voucher or ledger cannot be resolved.
func NewIndex(snap Snapshot, opts ...IndexOption) (*Index, error) {
	idx := &Index{
		companyID: snap.CompanyID,
		vouchers:  make(map[int]*Voucher, len(snap.Vouchers)),
		ledgers:   make(map[int]*Ledger, len(snap.Ledgers)),
		groups:    make(map[int]*AccountGroup, len(snap.Groups)),
		byLedger:  make(map[int][]LedgerEntry),
		include:   map[VoucherStatus]bool{StatusConfirmed: true},
	}
	for _, o := range opts {
		o(idx)
	}

	for i := range snap.Vouchers {
		v := &snap.Vouchers[i]
		if v.CompanyID != snap.CompanyID {
			return nil, &TenantScopeError{Entity: "voucher", EntityID: v.ID, EntityCompanyID: v.CompanyID, WantCompanyID: snap.CompanyID}
		}
		idx.vouchers[v.ID] = v
		if idx.include[v.Status] {
			idx.orderedVouchers = append(idx.orderedVouchers, v)
		}
	}
	for i := range snap.Ledgers {
		l := &snap.Ledgers[i]
		if l.CompanyID != snap.CompanyID {
			return nil, &TenantScopeError{Entity: "ledger", EntityID: l.ID, EntityCompanyID: l.CompanyID, WantCompanyID: snap.CompanyID}
		}
		idx.ledgers[l.ID] = l
		idx.orderedLedgers = append(idx.orderedLedgers, l)
	}
	for i := range snap.Groups {
		g := &snap.Groups[i]
		if g.CompanyID != snap.CompanyID {
			return nil, &TenantScopeError{Entity: "account group", EntityID: g.ID, EntityCompanyID: g.CompanyID, WantCompanyID: snap.CompanyID}
		}
		idx.groups[g.ID] = g
	}

	for _, e := range snap.Entries {
		v, ok := idx.vouchers[e.VoucherID]
		if !ok {
			idx.skipped++
			continue
		}
		if _, ok := idx.ledgers[e.LedgerID]; !ok {
			idx.skipped++
			continue
		}
		if !idx.include[v.Status] {
			continue
		}
		idx.byLedger[e.LedgerID] = append(idx.byLedger[e.LedgerID], e)
	}

	for id := range idx.byLedger {
		entries := idx.byLedger[id]
		sort.SliceStable(entries, func(i, j int) bool {
			vi, vj := idx.vouchers[entries[i].VoucherID], idx.vouchers[entries[j].VoucherID]
			if !vi.Date.Equal(vj.Date) {
				return vi.Date.Before(vj.Date)
			}
			if vi.ID != vj.ID {
				return vi.ID < vj.ID
			}
			return entries[i].ID < entries[j].ID
		})
	}

	sort.SliceStable(idx.orderedVouchers, func(i, j int) bool {
		if !idx.orderedVouchers[i].Date.Equal(idx.orderedVouchers[j].Date) {
			return idx.orderedVouchers[i].Date.Before(idx.orderedVouchers[j].Date)
		}
		return idx.orderedVouchers[i].ID < idx.orderedVouchers[j].ID
	})
	sort.SliceStable(idx.orderedLedgers, func(i, j int) bool {
		if idx.orderedLedgers[i].Name != idx.orderedLedgers[j].Name {
			return idx.orderedLedgers[i].Name < idx.orderedLedgers[j].Name
		}
		return idx.orderedLedgers[i].ID < idx.orderedLedgers[j].ID
	})

	return idx, nil
}

// Skipped returns the number of entries excluded because their voucher or
// ledger could not be resolved. Reports degrade gracefully; callers may log
// this as a diagnostic.
func (idx *Index) Skipped() int {
	return idx.skipped
}

// Ledger returns the ledger with the given id, if present.
func (idx *Index) Ledger(id int) (*Ledger, bool) {
	l, ok := idx.ledgers[id]
	return l, ok
}

// groupFor resolves a ledger's account group; nil when dangling.
func (idx *Index) groupFor(l *Ledger) *AccountGroup {
	return idx.groups[l.GroupID]
}

// entriesFor returns the date-ordered, status-filtered entries for a ledger.
func (idx *Index) entriesFor(ledgerID int) []LedgerEntry {
	return idx.byLedger[ledgerID]
}

// vouchersBetween returns the status-filtered vouchers dated within
// [from, to], in date order.
func (idx *Index) vouchersBetween(from, to time.Time) []*Voucher {
	var out []*Voucher
	for _, v := range idx.orderedVouchers {
		if v.Date.Before(from) || v.Date.After(to) {
			continue
		}
		out = append(out, v)
	}
	return out
}
