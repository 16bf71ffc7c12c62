package inventory

import (
	"errors"
	"time"
)

// ReferenceType records what caused a stock change.
type ReferenceType string

const (
	RefSale         ReferenceType = "sale"
	RefManualUpdate ReferenceType = "manual_update"
	RefPurchase     ReferenceType = "purchase"
	RefReturn       ReferenceType = "return"
	RefInventory    ReferenceType = "inventory"
)

// OversellPolicy decides what happens when a decrement exceeds current stock.
type OversellPolicy string

const (
	// OversellAllow clamps stock at zero and records the applied delta.
	OversellAllow OversellPolicy = "allow"
	// OversellReject fails the adjustment before any write.
	OversellReject OversellPolicy = "reject"
)

// LedgerEntry is an append-only record of a single stock change.
// new_stock = previous_stock + change_amount always holds, and new_stock
// equals the product's stock at the instant the entry was written.
type LedgerEntry struct {
	ID            int64
	ProductID     int64
	PreviousStock int64
	NewStock      int64
	ChangeAmount  int64
	ReferenceType ReferenceType
	ReferenceID   *int64
	Note          string
	CreatedAt     time.Time
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLedgerAppend      = errors.New("stock ledger append failed")
)
