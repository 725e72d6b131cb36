package web

import (
	"context"
	"net/http"
	"time"

	"finbook/internal/core"

	"github.com/shopspring/decimal"
)

type entryRequest struct {
	LedgerID int             `json:"ledger_id"`
	Debit    decimal.Decimal `json:"debit_amount"`
	Credit   decimal.Decimal `json:"credit_amount"`
}

type voucherRequest struct {
	Type           string          `json:"voucher_type"`
	Date           string          `json:"date"`
	PartyLedgerID  *int            `json:"party_ledger_id"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Narration      string          `json:"narration"`
	Entries        []entryRequest  `json:"entries"`
}

func (req voucherRequest) toInput(companyID int) (core.VoucherInput, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return core.VoucherInput{}, err
	}
	entries := make([]core.EntryInput, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = core.EntryInput{LedgerID: e.LedgerID, Debit: e.Debit, Credit: e.Credit}
	}
	return core.VoucherInput{
		CompanyID:      companyID,
		Type:           core.VoucherType(req.Type),
		Date:           date,
		PartyLedgerID:  req.PartyLedgerID,
		GrossAmount:    req.GrossAmount,
		DiscountAmount: req.DiscountAmount,
		VATAmount:      req.VATAmount,
		NetAmount:      req.NetAmount,
		Narration:      req.Narration,
		Entries:        entries,
	}, nil
}

func (h *Handler) createVoucher(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req voucherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	input, err := req.toInput(companyID)
	if err != nil {
		writeError(w, r, "invalid date (use YYYY-MM-DD): "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	v, err := h.svc.CreateVoucher(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

func (h *Handler) updateVoucher(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	voucherID, err := intParam(r, "voucherID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req voucherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	input, err := req.toInput(companyID)
	if err != nil {
		writeError(w, r, "invalid date (use YYYY-MM-DD): "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	v, err := h.svc.UpdateVoucher(r.Context(), voucherID, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

func (h *Handler) confirmVoucher(w http.ResponseWriter, r *http.Request) {
	h.transitionVoucher(w, r, h.svc.ConfirmVoucher)
}

func (h *Handler) cancelVoucher(w http.ResponseWriter, r *http.Request) {
	h.transitionVoucher(w, r, h.svc.CancelVoucher)
}

func (h *Handler) transitionVoucher(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, companyID, voucherID int) (*core.Voucher, error)) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	voucherID, err := intParam(r, "voucherID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	v, err := transition(r.Context(), companyID, voucherID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

func (h *Handler) deleteVoucher(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	voucherID, err := intParam(r, "voucherID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteVoucher(r.Context(), companyID, voucherID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

func (h *Handler) getVoucher(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	voucherID, err := intParam(r, "voucherID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetVoucher(r.Context(), companyID, voucherID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) listVouchers(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	filter := core.VoucherFilter{
		Type:   core.VoucherType(r.URL.Query().Get("type")),
		Status: core.VoucherStatus(r.URL.Query().Get("status")),
	}
	if filter.From, err = queryDate(r, "from", time.Time{}); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if filter.To, err = queryDate(r, "to", time.Time{}); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	vouchers, err := h.svc.ListVouchers(r.Context(), companyID, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"vouchers": vouchers})
}
