package inventory

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=inventory
type Store interface {
	// BeginAdjust opens a store transaction scoped to one product.
	// Implementations must serialize concurrent adjustments of the same
	// product: from the Stock read until Commit or Rollback, no other
	// adjustment may observe or modify the product's stock.
	BeginAdjust(ctx context.Context, productID int64) (AdjustTx, error)

	GetStock(ctx context.Context, productID int64) (int64, error)
	ListEntries(ctx context.Context, filter LedgerFilter) ([]*LedgerEntry, error)
}

// AdjustTx scopes one read-modify-write sequence against a single product.
type AdjustTx interface {
	Stock(ctx context.Context) (int64, error)
	SetStock(ctx context.Context, stock int64) error
	AppendEntry(ctx context.Context, e *LedgerEntry) error
	Commit() error
	Rollback() error
}

type Service struct {
	store  Store
	policy OversellPolicy
}

func NewService(store Store, policy OversellPolicy) *Service {
	if policy == "" {
		policy = OversellAllow
	}

	return &Service{store: store, policy: policy}
}

type AdjustParams struct {
	ProductID     int64
	Delta         int64
	ReferenceType ReferenceType
	ReferenceID   *int64
	Note          string
}

// Adjustment reports what an adjustment actually did. AppliedDelta may be
// smaller in magnitude than the requested delta when clamping kicked in.
type Adjustment struct {
	PreviousStock int64
	NewStock      int64
	AppliedDelta  int64
}

type LedgerFilter struct {
	ProductID     *int64
	ReferenceType *ReferenceType
	StartDate     *time.Time
	EndDate       *time.Time
}

// Adjust applies a signed stock delta and appends the matching ledger entry.
// Stock never goes below zero. The stock write and the ledger append commit
// together, so the ledger can never describe a transition that did not occur.
func (s *Service) Adjust(ctx context.Context, params AdjustParams) (*Adjustment, error) {
	tx, err := s.store.BeginAdjust(ctx, params.ProductID)
	if err != nil {
		return nil, fmt.Errorf("beginning stock adjustment: %w", err)
	}
	defer tx.Rollback()

	prev, err := tx.Stock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stock for product %d: %w", params.ProductID, err)
	}

	if s.policy == OversellReject && prev+params.Delta < 0 {
		return nil, fmt.Errorf("product %d has stock %d, requested delta %d: %w",
			params.ProductID, prev, params.Delta, ErrInsufficientStock)
	}

	next := prev + params.Delta
	if next < 0 {
		next = 0
	}

	if err := tx.SetStock(ctx, next); err != nil {
		return nil, fmt.Errorf("writing stock for product %d: %w", params.ProductID, err)
	}

	entry := &LedgerEntry{
		ProductID:     params.ProductID,
		PreviousStock: prev,
		NewStock:      next,
		ChangeAmount:  next - prev,
		ReferenceType: params.ReferenceType,
		ReferenceID:   params.ReferenceID,
		Note:          params.Note,
	}
	if err := tx.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerAppend, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock adjustment: %w", err)
	}

	return &Adjustment{
		PreviousStock: prev,
		NewStock:      next,
		AppliedDelta:  next - prev,
	}, nil
}

// History returns ledger entries matching the filter, newest first.
func (s *Service) History(ctx context.Context, filter LedgerFilter) ([]*LedgerEntry, error) {
	return s.store.ListEntries(ctx, filter)
}

func (s *Service) ProductStock(ctx context.Context, productID int64) (int64, error) {
	return s.store.GetStock(ctx, productID)
}
