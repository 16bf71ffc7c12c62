package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tmachado/retailops/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/adjustments", h.adjust)
	r.Get("/ledger", h.ledger)
}

// Reference types accepted from the API. Sale entries are only written by
// the commit pipeline itself.
var manualReferenceTypes = map[inventory.ReferenceType]bool{
	inventory.RefManualUpdate: true,
	inventory.RefPurchase:     true,
	inventory.RefReturn:       true,
	inventory.RefInventory:    true,
}

type adjustRequest struct {
	ProductID     int64                   `json:"product_id"`
	Delta         int64                   `json:"delta"`
	ReferenceType inventory.ReferenceType `json:"reference_type"`
	ReferenceID   *int64                  `json:"reference_id,omitempty"`
	Note          string                  `json:"note"`
}

type adjustResponse struct {
	ProductID     int64 `json:"product_id"`
	PreviousStock int64 `json:"previous_stock"`
	NewStock      int64 `json:"new_stock"`
	AppliedDelta  int64 `json:"applied_delta"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Delta == 0 {
		http.Error(w, "delta must not be zero", http.StatusBadRequest)
		return
	}

	if req.ReferenceType == "" {
		req.ReferenceType = inventory.RefManualUpdate
	}

	if !manualReferenceTypes[req.ReferenceType] {
		http.Error(w, "invalid reference_type", http.StatusBadRequest)
		return
	}

	adj, err := h.svc.Adjust(r.Context(), inventory.AdjustParams{
		ProductID:     req.ProductID,
		Delta:         req.Delta,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, inventory.ErrInsufficientStock):
			http.Error(w, "insufficient stock", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := adjustResponse{
		ProductID:     req.ProductID,
		PreviousStock: adj.PreviousStock,
		NewStock:      adj.NewStock,
		AppliedDelta:  adj.AppliedDelta,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type ledgerEntryResponse struct {
	ID            int64                   `json:"id"`
	ProductID     int64                   `json:"product_id"`
	PreviousStock int64                   `json:"previous_stock"`
	NewStock      int64                   `json:"new_stock"`
	ChangeAmount  int64                   `json:"change_amount"`
	ReferenceType inventory.ReferenceType `json:"reference_type"`
	ReferenceID   *int64                  `json:"reference_id,omitempty"`
	Note          string                  `json:"note,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	filter := inventory.LedgerFilter{}

	if s := r.URL.Query().Get("product_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}

		filter.ProductID = &id
	}

	if s := r.URL.Query().Get("reference_type"); s != "" {
		rt := inventory.ReferenceType(s)
		filter.ReferenceType = &rt
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

	entries, err := h.svc.History(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ledgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ledgerEntryResponse{
			ID:            e.ID,
			ProductID:     e.ProductID,
			PreviousStock: e.PreviousStock,
			NewStock:      e.NewStock,
			ChangeAmount:  e.ChangeAmount,
			ReferenceType: e.ReferenceType,
			ReferenceID:   e.ReferenceID,
			Note:          e.Note,
			CreatedAt:     e.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
