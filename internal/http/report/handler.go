package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/profit", h.profit)
	r.Get("/summary", h.summary)
}

type summaryResponse struct {
	Revenue decimal.Decimal `json:"revenue"`
	COGS    decimal.Decimal `json:"cogs"`
	Profit  decimal.Decimal `json:"profit"`
	Margin  decimal.Decimal `json:"margin"`

	SalesCount     int `json:"sales_count"`
	UnmatchedSales int `json:"unmatched_sales"`
}

func toResponse(sum *report.Summary) summaryResponse {
	return summaryResponse{
		Revenue:        sum.Revenue,
		COGS:           sum.COGS,
		Profit:         sum.Profit,
		Margin:         sum.Margin,
		SalesCount:     sum.SalesCount,
		UnmatchedSales: sum.UnmatchedSales,
	}
}

func (h *Handler) profit(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		start = &t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		end = &t
	}

	sum, err := h.svc.AggregateProfit(r.Context(), start, end)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// summary reports the open window: everything since the last closed cycle.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.CurrentWindowSummary(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
