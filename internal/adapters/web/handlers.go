package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"finbook/internal/app"
	"finbook/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Metrics)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/companies/{companyID}", func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/", h.getCompany)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", h.listGroups)
			r.Post("/", h.createGroup)
		})

		r.Route("/ledgers", func(r chi.Router) {
			r.Get("/", h.listLedgers)
			r.Post("/", h.createLedger)
			r.Put("/{ledgerID}", h.updateLedger)
			r.Delete("/{ledgerID}", h.deleteLedger)
			r.Get("/{ledgerID}/statement", h.statement)
			r.Get("/{ledgerID}/reconciliation", h.bankReconciliation)
		})

		r.Route("/vouchers", func(r chi.Router) {
			r.Get("/", h.listVouchers)
			r.Post("/", h.createVoucher)
			r.Get("/{voucherID}", h.getVoucher)
			r.Put("/{voucherID}", h.updateVoucher)
			r.Delete("/{voucherID}", h.deleteVoucher)
			r.Post("/{voucherID}/confirm", h.confirmVoucher)
			r.Post("/{voucherID}/cancel", h.cancelVoucher)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", h.trialBalance)
			r.Get("/balance-sheet", h.balanceSheet)
			r.Get("/profit-and-loss", h.profitAndLoss)
			r.Get("/cash-flow", h.cashFlow)
			r.Get("/vat", h.vatComputation)
			r.Get("/export", h.exportReport)
		})

		r.Post("/reconciliation/mark", h.markReconciliation)
	})

	h.router = r
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := intParam(r, "companyID")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	company, err := h.svc.GetCompany(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, company)
}

// intParam parses a numeric URL parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// queryDate parses a YYYY-MM-DD query parameter; fallback is returned when the
// parameter is absent.
func queryDate(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (use YYYY-MM-DD)", name, raw)
	}
	return t, nil
}
