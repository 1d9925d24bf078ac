package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
)

// maxUploadBytes caps a CSV upload. Real exports are well under a megabyte.
const maxUploadBytes = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/legacy", h.importLegacy)
}

type importResponse struct {
	Applied         int            `json:"applied"`
	CreatedProducts []string       `json:"created_products,omitempty"`
	Conflicts       []conflictInfo `json:"conflicts,omitempty"`
}

type conflictInfo struct {
	Date        time.Time       `json:"date"`
	Kind        ledger.Kind     `json:"kind"`
	ProductName string          `json:"product_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ExistingID  string          `json:"existing_id"`
}

// importLegacy accepts the predecessor dashboard's CSV export as a multipart
// upload under the "file" field, replays it through the ledger and reports
// what was applied. Any duplicate row aborts the whole batch.
func (h *Handler) importLegacy(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.svc.Parse(importer.SourceLegacy, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.svc.ImportBatch(r.Context(), rows)
	if err != nil {
		slog.Error("legacy import failed", "error", err)
		http.Error(w, "import failed", http.StatusInternalServerError)

		return
	}

	resp := importResponse{
		Applied:         len(result.Applied),
		CreatedProducts: result.CreatedProducts,
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictInfo{
			Date:        c.Incoming.Date,
			Kind:        c.Incoming.Kind,
			ProductName: c.Incoming.ProductName,
			TotalAmount: c.Incoming.TotalAmount,
			ExistingID:  c.Existing.ID.String(),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if len(resp.Conflicts) > 0 {
		w.WriteHeader(http.StatusConflict)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
