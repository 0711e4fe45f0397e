package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a completed payment transaction for an order.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderID       uint            `json:"order_id" gorm:"not null;index"`
	Order         Order           `json:"-" gorm:"foreignKey:OrderID"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(20);not null"`
	Status        string          `json:"status" gorm:"type:varchar(20);not null;default:'completed'"`
	ReferenceID   string          `json:"reference_id" gorm:"type:varchar(64)"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
}
