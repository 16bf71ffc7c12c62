package sale

import (
	"errors"
	"fmt"
	"time"
)

// Channel identifies where a sale originated.
type Channel string

const (
	ChannelStore  Channel = "store"
	ChannelOnline Channel = "online"
	ChannelPhone  Channel = "phone"
)

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	MethodCard            PaymentMethod = "card"
	MethodCash            PaymentMethod = "cash"
	MethodInstantTransfer PaymentMethod = "instant_transfer"
	MethodOther           PaymentMethod = "other"
)

// ItemKind distinguishes catalog-backed line items from free-form ones.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindCustom  ItemKind = "custom"
)

// Sale is a committed sale header. Amounts are in cents.
// final_total = subtotal - discount + delivery_fee.
type Sale struct {
	ID              int64
	SaleNo          string
	CustomerName    string
	CustomerPhone   string
	Channel         Channel
	PaymentSummary  string
	Subtotal        int64
	Discount        int64
	DeliveryFee     int64
	FinalTotal      int64
	Profit          int64
	Notes           string
	DeliveryAddress string
	Items           []*Item
	Payments        []*Payment
	CreatedAt       time.Time
}

// Item is one line of a sale. ProductID is nil for custom items. The
// referenced product may be deleted later without invalidating the line.
type Item struct {
	ID              int64
	SaleID          int64
	ProductID       *int64
	Name            string
	UnitPrice       int64
	UnitCost        *int64
	Quantity        int64
	Kind            ItemKind
	PriceOverridden bool
}

// Payment is one payment split against a sale.
type Payment struct {
	ID     int64
	SaleID int64
	Method PaymentMethod
	Amount int64
}

var ErrNotFound = errors.New("sale not found")

// ErrorKind tags where in the commit pipeline a failure happened.
type ErrorKind string

const (
	ErrKindValidation      ErrorKind = "validation"
	ErrKindHeaderWrite     ErrorKind = "header_write"
	ErrKindItemWrite       ErrorKind = "item_write"
	ErrKindStockAdjustment ErrorKind = "stock_adjustment"
	ErrKindLedgerAppend    ErrorKind = "ledger_append"
	ErrKindPaymentWrite    ErrorKind = "payment_write"
)

// ValidationError reports a structural invariant violated before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid sale: %s: %s", e.Field, e.Reason)
}
