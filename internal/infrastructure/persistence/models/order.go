package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for orders. The partial unique
// index allows at most one unpaid order per client.
type OrderModel struct {
	AggregateModel
	ClientID *uuid.UUID       `gorm:"type:uuid;index:idx_orders_client_id;uniqueIndex:idx_orders_client_pending,where:paid = false"`
	Paid     bool             `gorm:"not null;default:false"`
	Total    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAt   *time.Time       `gorm:""`
	Items    []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model and its loaded items to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i := range m.Items {
		items[i] = *m.Items[i].ToDomain()
	}
	return &order.Order{
		BaseAggregateRoot: m.ToAggregate(),
		ClientID:          m.ClientID,
		Paid:              m.Paid,
		Total:             m.Total,
		PaidAt:            m.PaidAt,
		Items:             items,
	}
}

// OrderModelFromDomain creates an OrderModel, including items, from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		ClientID: o.ClientID,
		Paid:     o.Paid,
		Total:    o.Total,
		PaidAt:   o.PaidAt,
		Items:    make([]OrderItemModel, len(o.Items)),
	}
	m.SetAggregate(o.BaseAggregateRoot)
	for i := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&o.Items[i])
	}
	return m
}

// OrderItemModel is the persistence model for order line items.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_items_order_product,priority:2"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the model to a domain Item
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates an OrderItemModel from a domain Item
func OrderItemModelFromDomain(it *order.Item) *OrderItemModel {
	return &OrderItemModel{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		CreatedAt: it.CreatedAt,
	}
}
