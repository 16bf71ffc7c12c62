package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tmachado/retailops/internal/sale"
)

type Handler struct {
	svc *sale.Service
}

func NewHandler(svc *sale.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.commit)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type commitItemRequest struct {
	ProductID       *int64        `json:"product_id,omitempty"`
	Name            string        `json:"name"`
	UnitPrice       int64         `json:"unit_price"`
	UnitCost        *int64        `json:"unit_cost,omitempty"`
	Quantity        int64         `json:"quantity"`
	Kind            sale.ItemKind `json:"kind"`
	PriceOverridden bool          `json:"price_overridden"`
}

type commitPaymentRequest struct {
	Method sale.PaymentMethod `json:"method"`
	Amount int64              `json:"amount"`
}

type commitSaleRequest struct {
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	Channel         sale.Channel           `json:"channel"`
	Subtotal        int64                  `json:"subtotal"`
	Discount        int64                  `json:"discount"`
	DeliveryFee     int64                  `json:"delivery_fee"`
	FinalTotal      int64                  `json:"final_total"`
	Profit          int64                  `json:"profit"`
	Notes           string                 `json:"notes"`
	DeliveryAddress string                 `json:"delivery_address"`
	Items           []commitItemRequest    `json:"items"`
	Payments        []commitPaymentRequest `json:"payments"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := sale.CommitParams{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Channel:         req.Channel,
		Subtotal:        req.Subtotal,
		Discount:        req.Discount,
		DeliveryFee:     req.DeliveryFee,
		FinalTotal:      req.FinalTotal,
		Profit:          req.Profit,
		Notes:           req.Notes,
		DeliveryAddress: req.DeliveryAddress,
	}

	for _, it := range req.Items {
		params.Items = append(params.Items, sale.ItemParams{
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitPrice:       it.UnitPrice,
			UnitCost:        it.UnitCost,
			Quantity:        it.Quantity,
			Kind:            it.Kind,
			PriceOverridden: it.PriceOverridden,
		})
	}

	for _, p := range req.Payments {
		params.Payments = append(params.Payments, sale.PaymentParams{
			Method: p.Method,
			Amount: p.Amount,
		})
	}

	result, err := h.svc.Commit(r.Context(), params)
	if err != nil {
		var vErr *sale.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "sale was not recorded", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toCommitResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := sale.ListFilter{}

	if s := r.URL.Query().Get("channel"); s != "" {
		ch := sale.Channel(s)
		filter.Channel = &ch
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

	sales, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sales)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sl, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
