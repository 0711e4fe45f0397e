package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettledTicket is the append-only settlement record for a paid order.
// ReceiptData holds the rendered line buffer captured at settlement time;
// every reprint replays this snapshot byte for byte, it is never rebuilt
// from live order or menu data.
type SettledTicket struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TicketNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"ticket_number"`
	PaymentMethod string          `gorm:"type:varchar(20);not null" json:"payment_method"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	SettledAt     time.Time       `gorm:"not null" json:"settled_at"`
	PrintCount    int             `gorm:"not null;default:1" json:"print_count"`
	ReceiptData   string          `gorm:"type:text;not null" json:"-"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
