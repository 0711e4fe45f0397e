package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the kitchen-side status column of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks settlement independently of the kitchen status.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderType distinguishes how the order is fulfilled.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// ValidOrderType reports whether t is one of the known order types.
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case "cash", "card", "mobile":
		return true
	}
	return false
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TicketNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"ticket_number"`
	OrderType     OrderType       `gorm:"type:varchar(20);not null;default:'dine-in'" json:"order_type"`
	TableID       *uint           `gorm:"index" json:"table_id,omitempty"`
	Table         *Table          `gorm:"foreignKey:TableID" json:"table,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	Payments      []Payment       `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// Subtotal sums the line totals. The stored TotalAmount must always equal it.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.OrderItems {
		sum = sum.Add(item.TotalPrice)
	}
	return sum
}
