package web

import (
	"fmt"
	"net/http"
	"time"

	"finbook/internal/app"
)

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	asOf, err := queryDate(r, "as_of", time.Now())
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetTrialBalance(r.Context(), companyID, asOf)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	asOf, err := queryDate(r, "as_of", time.Now())
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetBalanceSheet(r.Context(), companyID, asOf)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// periodParams reads the from/to query pair; from is required, to defaults to
// today.
func periodParams(r *http.Request) (time.Time, time.Time, error) {
	from, err := queryDate(r, "from", time.Time{})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("missing required parameter from (YYYY-MM-DD)")
	}
	to, err := queryDate(r, "to", time.Now())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (h *Handler) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetProfitAndLoss(r.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetCashFlow(r.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) vatComputation(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetVATComputation(r.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	ledgerID, err := intParam(r, "ledgerID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetStatement(r.Context(), companyID, ledgerID, from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) bankReconciliation(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	ledgerID, err := intParam(r, "ledgerID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	asOf, err := queryDate(r, "as_of", time.Now())
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetBankReconciliation(r.Context(), companyID, ledgerID, asOf)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

type markRequest struct {
	VoucherID    int    `json:"voucher_id"`
	LedgerID     int    `json:"ledger_id"`
	Status       string `json:"status"`        // Reconciled or Pending
	ReconciledOn string `json:"reconciled_on"` // YYYY-MM-DD, Reconciled only
}

func (h *Handler) markReconciliation(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req markRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	switch req.Status {
	case "Reconciled":
		reconciledOn := time.Now()
		if req.ReconciledOn != "" {
			if reconciledOn, err = time.Parse("2006-01-02", req.ReconciledOn); err != nil {
				writeError(w, r, "invalid reconciled_on (use YYYY-MM-DD)", "BAD_REQUEST", http.StatusBadRequest)
				return
			}
		}
		err = h.svc.MarkReconciled(r.Context(), companyID, req.VoucherID, req.LedgerID, reconciledOn)
	case "Pending":
		err = h.svc.MarkPending(r.Context(), companyID, req.VoucherID, req.LedgerID)
	default:
		writeError(w, r, fmt.Sprintf("unknown status %q (use Reconciled or Pending)", req.Status), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) exportReport(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	req := app.ExportRequest{
		CompanyID: companyID,
		Report:    q.Get("report"),
		Format:    q.Get("format"),
	}
	if raw := q.Get("ledger_id"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &req.LedgerID); err != nil {
			writeError(w, r, "invalid ledger_id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}
	if req.From, err = queryDate(r, "from", time.Time{}); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.To, err = queryDate(r, "to", time.Now()); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ExportReport(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	_, _ = w.Write(result.Data)
}
