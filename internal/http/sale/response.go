package sale

import (
	"time"

	"github.com/tmachado/retailops/internal/sale"
)

type itemResponse struct {
	ID              int64         `json:"id"`
	ProductID       *int64        `json:"product_id,omitempty"`
	Name            string        `json:"name"`
	UnitPrice       int64         `json:"unit_price"`
	UnitCost        *int64        `json:"unit_cost,omitempty"`
	Quantity        int64         `json:"quantity"`
	Kind            sale.ItemKind `json:"kind"`
	PriceOverridden bool          `json:"price_overridden"`
}

type paymentResponse struct {
	ID     int64              `json:"id"`
	Method sale.PaymentMethod `json:"method"`
	Amount int64              `json:"amount"`
}

type saleResponse struct {
	ID              int64             `json:"id"`
	SaleNo          string            `json:"sale_no"`
	CustomerName    string            `json:"customer_name,omitempty"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	Channel         sale.Channel      `json:"channel"`
	PaymentSummary  string            `json:"payment_summary,omitempty"`
	Subtotal        int64             `json:"subtotal"`
	Discount        int64             `json:"discount"`
	DeliveryFee     int64             `json:"delivery_fee"`
	FinalTotal      int64             `json:"final_total"`
	Profit          int64             `json:"profit"`
	Notes           string            `json:"notes,omitempty"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Items           []itemResponse    `json:"items,omitempty"`
	Payments        []paymentResponse `json:"payments,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

type failureResponse struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type commitResponse struct {
	Status   sale.Status       `json:"status"`
	Sale     saleResponse      `json:"sale"`
	Failures []failureResponse `json:"failures,omitempty"`
}

func toResponse(sl *sale.Sale) saleResponse {
	resp := saleResponse{
		ID:              sl.ID,
		SaleNo:          sl.SaleNo,
		CustomerName:    sl.CustomerName,
		CustomerPhone:   sl.CustomerPhone,
		Channel:         sl.Channel,
		PaymentSummary:  sl.PaymentSummary,
		Subtotal:        sl.Subtotal,
		Discount:        sl.Discount,
		DeliveryFee:     sl.DeliveryFee,
		FinalTotal:      sl.FinalTotal,
		Profit:          sl.Profit,
		Notes:           sl.Notes,
		DeliveryAddress: sl.DeliveryAddress,
		CreatedAt:       sl.CreatedAt,
	}

	for _, it := range sl.Items {
		resp.Items = append(resp.Items, itemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitPrice:       it.UnitPrice,
			UnitCost:        it.UnitCost,
			Quantity:        it.Quantity,
			Kind:            it.Kind,
			PriceOverridden: it.PriceOverridden,
		})
	}

	for _, p := range sl.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:     p.ID,
			Method: p.Method,
			Amount: p.Amount,
		})
	}

	return resp
}

func toResponseList(sales []*sale.Sale) []saleResponse {
	resp := make([]saleResponse, len(sales))
	for i, sl := range sales {
		resp[i] = toResponse(sl)
	}

	return resp
}

func toCommitResponse(result *sale.CommitResult) commitResponse {
	resp := commitResponse{
		Status: result.Status,
		Sale:   toResponse(result.Sale),
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			Index: f.Index,
			Kind:  string(f.Kind),
			Error: f.Err.Error(),
		})
	}

	return resp
}
