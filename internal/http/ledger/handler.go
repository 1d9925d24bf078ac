package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/amount", h.amendAmount)
}

type recordRequest struct {
	ProductID       uuid.UUID         `json:"product_id"`
	Kind            ledger.Kind       `json:"kind"`
	QuantityBoxes   int               `json:"quantity_boxes"`
	QuantitySachets int               `json:"quantity_sachets"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	GiftValue       *decimal.Decimal  `json:"gift_value,omitempty"`
	CampaignTag     string            `json:"campaign_tag"`
	Notes           string            `json:"notes"`
	SaleOrigin      ledger.SaleOrigin `json:"sale_origin"`
	CustomerRef     string            `json:"customer_ref"`
	ReferrerRef     string            `json:"referrer_ref"`
	Borrower        string            `json:"borrower"`
	Date            time.Time         `json:"date"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	res, err := h.svc.Record(r.Context(), ledger.RecordParams{
		ProductID:       req.ProductID,
		Kind:            req.Kind,
		QuantityBoxes:   req.QuantityBoxes,
		QuantitySachets: req.QuantitySachets,
		TotalAmount:     req.TotalAmount,
		GiftValue:       req.GiftValue,
		CampaignTag:     req.CampaignTag,
		Notes:           req.Notes,
		SaleOrigin:      req.SaleOrigin,
		CustomerRef:     req.CustomerRef,
		ReferrerRef:     req.ReferrerRef,
		Borrower:        req.Borrower,
		Date:            req.Date,
	})
	if err != nil {
		writeRecordError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResultResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.Filter{}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind := ledger.Kind(s)
		filter.Kind = &kind
	}

	if s := r.URL.Query().Get("product_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ProductID = &id
		}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type amendAmountRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (h *Handler) amendAmount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req amendAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AmendAmount(r.Context(), id, req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			http.Error(w, "transaction not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrNotAmendable):
			http.Error(w, "only advertising amounts can be amended", http.StatusUnprocessableEntity)
		case errors.Is(err, ledger.ErrInvalidAmount):
			http.Error(w, "amount must not be negative", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeRecordError maps the ledger taxonomy onto HTTP statuses. All of
// these are recoverable, user-facing conditions.
func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrUnknownProduct):
		http.Error(w, "unknown product", http.StatusNotFound)
	case errors.Is(err, ledger.ErrInvalidQuantity):
		http.Error(w, "invalid quantity", http.StatusUnprocessableEntity)
	case errors.Is(err, ledger.ErrInvalidAmount):
		http.Error(w, "invalid amount", http.StatusUnprocessableEntity)
	case errors.Is(err, ledger.ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
	case errors.Is(err, ledger.ErrConcurrentModification):
		http.Error(w, "conflicting update, retry", http.StatusConflict)
	case errors.Is(err, loan.ErrOverRepayment):
		http.Error(w, "repayment exceeds outstanding balance", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
