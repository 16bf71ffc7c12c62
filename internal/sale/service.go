package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmachado/retailops/internal/catalog"
	"github.com/tmachado/retailops/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=sale
type Store interface {
	CreateSale(ctx context.Context, s *Sale) error
	CreateItem(ctx context.Context, item *Item) error
	CreatePayment(ctx context.Context, p *Payment) error

	GetSale(ctx context.Context, id int64) (*Sale, error)
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)
}

// Catalog resolves product-kind line items against the catalog subsystem.
type Catalog interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

// StockAdjuster is the inventory adjustment engine boundary.
type StockAdjuster interface {
	Adjust(ctx context.Context, params inventory.AdjustParams) (*inventory.Adjustment, error)
}

// Notifier is the cache/notification gateway. Implementations must not
// fail a sale that has already been committed; they log and move on.
type Notifier interface {
	SaleCommitted(ctx context.Context, saleID int64, cacheKeys []string)
	SaleFailed(ctx context.Context, reason string)
}

type Service struct {
	store    Store
	catalog  Catalog
	stock    StockAdjuster
	notifier Notifier
}

func NewService(store Store, cat Catalog, stock StockAdjuster, notifier Notifier) *Service {
	return &Service{store: store, catalog: cat, stock: stock, notifier: notifier}
}

type ItemParams struct {
	ProductID       *int64
	Name            string
	UnitPrice       int64
	UnitCost        *int64
	Quantity        int64
	Kind            ItemKind
	PriceOverridden bool
}

type PaymentParams struct {
	Method PaymentMethod
	Amount int64
}

type CommitParams struct {
	CustomerName    string
	CustomerPhone   string
	Channel         Channel
	Subtotal        int64
	Discount        int64
	DeliveryFee     int64
	FinalTotal      int64
	Profit          int64
	Notes           string
	DeliveryAddress string
	Items           []ItemParams
	Payments        []PaymentParams
}

type ListFilter struct {
	Channel   *Channel
	StartDate *time.Time
	EndDate   *time.Time
}

// Status is the overall outcome of a commit that persisted a header.
type Status string

const (
	StatusCommitted        Status = "committed"
	StatusCommittedPartial Status = "committed_partial"
)

// ItemFailure identifies one proposed item or payment that failed after the
// header was written. Index is the position in the proposed list.
type ItemFailure struct {
	Index int
	Kind  ErrorKind
	Err   error
}

type CommitResult struct {
	Status   Status
	Sale     *Sale
	Failures []ItemFailure
}

// Commit durably records a proposed sale. Validation and the header write
// are fatal: they fail the whole commit with nothing persisted. After the
// header exists, failures on individual items, stock adjustments or
// payments are recorded in the result's failure manifest and the remaining
// work proceeds, so a partially decremented sale is never left unrecorded.
func (s *Service) Commit(ctx context.Context, params CommitParams) (*CommitResult, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	// Last cancellation point; once the header is written the commit runs
	// to completion.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sl := &Sale{
		CustomerName:    params.CustomerName,
		CustomerPhone:   params.CustomerPhone,
		Channel:         params.Channel,
		PaymentSummary:  paymentSummary(params.Payments),
		Subtotal:        params.Subtotal,
		Discount:        params.Discount,
		DeliveryFee:     params.DeliveryFee,
		FinalTotal:      params.FinalTotal,
		Profit:          params.Profit,
		Notes:           params.Notes,
		DeliveryAddress: params.DeliveryAddress,
	}
	if err := s.store.CreateSale(ctx, sl); err != nil {
		s.notifier.SaleFailed(ctx, "header write failed")
		return nil, fmt.Errorf("creating sale header: %w", err)
	}

	var (
		failures   []ItemFailure
		productIDs []int64
	)

	for i, ip := range params.Items {
		item, productID, kind, err := s.persistItem(ctx, sl, ip)
		if err != nil {
			slog.Error("sale item failed",
				"sale_id", sl.ID, "index", i, "kind", kind, "error", err)

			failures = append(failures, ItemFailure{Index: i, Kind: kind, Err: err})

			continue
		}

		sl.Items = append(sl.Items, item)

		if productID != nil {
			productIDs = append(productIDs, *productID)
		}
	}

	for i, pp := range params.Payments {
		p := &Payment{SaleID: sl.ID, Method: pp.Method, Amount: pp.Amount}
		if err := s.store.CreatePayment(ctx, p); err != nil {
			slog.Error("payment write failed",
				"sale_id", sl.ID, "index", i, "error", err)

			failures = append(failures, ItemFailure{Index: i, Kind: ErrKindPaymentWrite, Err: err})

			continue
		}

		sl.Payments = append(sl.Payments, p)
	}

	status := StatusCommitted
	if len(failures) > 0 {
		status = StatusCommittedPartial
	}

	s.notifier.SaleCommitted(ctx, sl.ID, cacheKeys(productIDs))

	return &CommitResult{Status: status, Sale: sl, Failures: failures}, nil
}

// persistItem writes one line item and, for product-kind items, applies the
// stock decrement. Returns the product id whose stock changed, if any; on
// failure it also reports which stage failed.
func (s *Service) persistItem(ctx context.Context, sl *Sale, ip ItemParams) (*Item, *int64, ErrorKind, error) {
	item := &Item{
		SaleID:          sl.ID,
		ProductID:       ip.ProductID,
		Name:            ip.Name,
		UnitPrice:       ip.UnitPrice,
		UnitCost:        ip.UnitCost,
		Quantity:        ip.Quantity,
		Kind:            ip.Kind,
		PriceOverridden: ip.PriceOverridden,
	}

	if ip.Kind == KindProduct {
		product, err := s.catalog.Get(ctx, *ip.ProductID)
		if err != nil {
			return nil, nil, ErrKindItemWrite, fmt.Errorf("resolving product %d: %w", *ip.ProductID, err)
		}

		if item.Name == "" {
			item.Name = product.Name
		}

		if item.UnitCost == nil {
			item.UnitCost = product.Cost
		}
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, nil, ErrKindItemWrite, fmt.Errorf("creating sale item: %w", err)
	}

	if ip.Kind != KindProduct {
		return item, nil, "", nil
	}

	_, err := s.stock.Adjust(ctx, inventory.AdjustParams{
		ProductID:     *ip.ProductID,
		Delta:         -ip.Quantity,
		ReferenceType: inventory.RefSale,
		ReferenceID:   &sl.ID,
		Note:          "sale " + sl.SaleNo,
	})
	if err != nil {
		kind := ErrKindStockAdjustment
		if errors.Is(err, inventory.ErrLedgerAppend) {
			kind = ErrKindLedgerAppend
		}

		return nil, nil, kind, fmt.Errorf("adjusting stock for product %d: %w", *ip.ProductID, err)
	}

	return item, ip.ProductID, "", nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	return s.store.GetSale(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.store.ListSales(ctx, filter)
}

func validate(params CommitParams) error {
	if len(params.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line item required"}
	}

	for i, it := range params.Items {
		if it.Quantity < 1 {
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].quantity", i),
				Reason: "must be at least 1",
			}
		}

		if it.UnitPrice < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].unit_price", i),
				Reason: "must not be negative",
			}
		}

		switch it.Kind {
		case KindProduct:
			if it.ProductID == nil {
				return &ValidationError{
					Field:  fmt.Sprintf("items[%d].product_id", i),
					Reason: "required for product items",
				}
			}
		case KindCustom:
			if it.Name == "" {
				return &ValidationError{
					Field:  fmt.Sprintf("items[%d].name", i),
					Reason: "required for custom items",
				}
			}
		default:
			return &ValidationError{
				Field:  fmt.Sprintf("items[%d].kind", i),
				Reason: fmt.Sprintf("unknown kind %q", it.Kind),
			}
		}
	}

	var paymentsTotal int64

	for i, p := range params.Payments {
		if p.Amount < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("payments[%d].amount", i),
				Reason: "must not be negative",
			}
		}

		paymentsTotal += p.Amount
	}

	if params.Subtotal < 0 || params.Discount < 0 || params.DeliveryFee < 0 {
		return &ValidationError{Field: "totals", Reason: "amounts must not be negative"}
	}

	if params.FinalTotal != params.Subtotal-params.Discount+params.DeliveryFee {
		return &ValidationError{
			Field:  "final_total",
			Reason: "must equal subtotal - discount + delivery_fee",
		}
	}

	if paymentsTotal != params.FinalTotal {
		return &ValidationError{
			Field:  "payments",
			Reason: "payment amounts must sum to final_total",
		}
	}

	return nil
}

func paymentSummary(payments []PaymentParams) string {
	if len(payments) == 0 {
		return ""
	}

	summary := string(payments[0].Method)
	for _, p := range payments[1:] {
		summary += "+" + string(p.Method)
	}

	return summary
}

func cacheKeys(productIDs []int64) []string {
	keys := []string{"sales"}
	for _, id := range productIDs {
		keys = append(keys, fmt.Sprintf("product:%d", id))
	}

	return keys
}
