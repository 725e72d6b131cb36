package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finbook/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeServiceError maps service-layer failures onto HTTP statuses. Voucher
// validation failures are 422, tenant scope violations 403, missing records
// 404; anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var unbalanced *core.UnbalancedVoucherError
	var scope *core.TenantScopeError
	switch {
	case errors.As(err, &unbalanced):
		writeError(w, r, err.Error(), "UNBALANCED_VOUCHER", http.StatusUnprocessableEntity)
	case errors.As(err, &scope):
		writeError(w, r, err.Error(), "TENANT_SCOPE", http.StatusForbidden)
	case strings.Contains(err.Error(), "not found"):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case strings.Contains(err.Error(), "cannot be"),
		strings.Contains(err.Error(), "must be"),
		strings.Contains(err.Error(), "must have"),
		strings.Contains(err.Error(), "already"),
		strings.Contains(err.Error(), "unknown"):
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
