package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeOrder is the aggregate type for orders
const AggregateTypeOrder = "Order"

// Item is a line item of an order. UnitPrice is a copy of the product
// price at the time the item was added.
type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// NewItem creates a line item snapshotting the product's current price
func NewItem(orderID uuid.UUID, product *catalog.Product, qty int) (*Item, error) {
	if product == nil {
		return nil, shared.InvalidInput("product is required")
	}
	if qty < 1 {
		return nil, shared.InvalidInput("quantity must be at least 1")
	}
	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  qty,
		UnitPrice: product.Price,
		CreatedAt: time.Now(),
	}, nil
}

// Amount returns quantity times unit price
func (i *Item) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a client's cart; once paid it is a receipt and cannot change.
type Order struct {
	shared.BaseAggregateRoot
	ClientID *uuid.UUID
	Paid     bool
	Total    decimal.Decimal
	PaidAt   *time.Time
	Items    []Item
}

// NewPendingOrder creates an unpaid order with total=0
func NewPendingOrder(clientID uuid.UUID) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.InvalidInput("client ID is required")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          &clientID,
		Total:             decimal.Zero,
		Items:             make([]Item, 0),
	}, nil
}

// ErrOrderPaid is returned for any mutation of a paid order
var ErrOrderPaid = shared.InvalidState("order is already paid and cannot be modified")

// AddLineItem adds the product to the order. Adding a product that is
// already present returns the existing item unchanged.
func (o *Order) AddLineItem(product *catalog.Product, qty int) (*Item, error) {
	if o.Paid {
		return nil, ErrOrderPaid
	}
	if product == nil {
		return nil, shared.InvalidInput("product is required")
	}
	if existing := o.FindItem(product.ID); existing != nil {
		return existing, nil
	}
	item, err := NewItem(o.ID, product, qty)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()
	return &o.Items[len(o.Items)-1], nil
}

// RemoveLineItem drops the item for productID, if present
func (o *Order) RemoveLineItem(productID uuid.UUID) error {
	if o.Paid {
		return ErrOrderPaid
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NotFound("order item")
}

// RetainOnly drops every item except the one for productID.
// Used by checkout, which charges for a single product at a time.
func (o *Order) RetainOnly(productID uuid.UUID) error {
	if o.Paid {
		return ErrOrderPaid
	}
	kept := o.Items[:0]
	for _, item := range o.Items {
		if item.ProductID == productID {
			kept = append(kept, item)
		}
	}
	if len(kept) != len(o.Items) {
		o.UpdatedAt = time.Now()
	}
	o.Items = kept
	return nil
}

// FindItem returns the line item for productID or nil
func (o *Order) FindItem(productID uuid.UUID) *Item {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// Subtotal sums the line item amounts
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range o.Items {
		sum = sum.Add(o.Items[i].Amount())
	}
	return sum
}

// Finalize closes the order with the amount actually collected
func (o *Order) Finalize(amount decimal.Decimal) error {
	if o.Paid {
		return ErrOrderPaid
	}
	if amount.IsNegative() {
		return shared.InvalidInput("order total cannot be negative")
	}
	now := time.Now()
	o.Paid = true
	o.Total = amount
	o.PaidAt = &now
	o.UpdatedAt = now
	o.BumpVersion()
	o.RecordEvent(NewOrderPaidEvent(o))
	return nil
}

// OrderPaidEvent is raised when an order is finalized
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	ClientID *uuid.UUID      `json:"client_id,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Items    []PaidItem      `json:"items"`
}

// PaidItem is a line item summary carried by OrderPaidEvent
type PaidItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// EventTypeOrderPaid is the event type for OrderPaidEvent
const EventTypeOrderPaid = "OrderPaid"

// NewOrderPaidEvent creates an OrderPaidEvent for o
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	items := make([]PaidItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = PaidItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		ClientID:        o.ClientID,
		Total:           o.Total,
		Items:           items,
	}
}
