package web

import (
	"net/http"

	"finbook/internal/core"

	"github.com/shopspring/decimal"
)

type groupRequest struct {
	Name   string `json:"name"`
	Nature string `json:"nature"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	group, err := h.svc.CreateAccountGroup(r.Context(), core.AccountGroup{
		CompanyID: companyID,
		Name:      req.Name,
		Nature:    core.GroupNature(req.Nature),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, group)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	groups, err := h.svc.ListAccountGroups(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"groups": groups})
}

type ledgerRequest struct {
	Name               string          `json:"name"`
	GroupID            int             `json:"group_id"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	OpeningBalanceType string          `json:"opening_balance_type"`
}

func (req ledgerRequest) toLedger(companyID, ledgerID int) core.Ledger {
	return core.Ledger{
		ID:                 ledgerID,
		CompanyID:          companyID,
		Name:               req.Name,
		GroupID:            req.GroupID,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: core.BalanceType(req.OpeningBalanceType),
	}
}

func (h *Handler) createLedger(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req ledgerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	ledger, err := h.svc.CreateLedger(r.Context(), req.toLedger(companyID, 0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, ledger)
}

func (h *Handler) updateLedger(w http.ResponseWriter, r *http.Request) {
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
	var req ledgerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	ledger, err := h.svc.UpdateLedger(r.Context(), req.toLedger(companyID, ledgerID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, ledger)
}

func (h *Handler) deleteLedger(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.DeleteLedger(r.Context(), companyID, ledgerID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

func (h *Handler) listLedgers(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	ledgers, err := h.svc.ListLedgers(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ledgers": ledgers})
}
