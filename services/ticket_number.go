package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/models"
)

const (
	ticketCounterName = "ticket_number"
	ticketPrefix      = "TKT"
	ticketMinDigits   = 4
)

// TicketNumberGenerator issues globally unique sequential ticket numbers.
// Uniqueness is delegated to an atomically incremented counter row in the
// backing store; client-side counting would collide across terminals.
type TicketNumberGenerator struct{}

// Next reserves the next sequence value inside tx and formats it as a
// ticket number (TKT0001 style, widening past four digits as needed).
// Callers must run it in the same transaction that inserts the order so
// number reservation and order commit succeed or fail together.
func (g *TicketNumberGenerator) Next(tx *gorm.DB) (string, error) {
	res := tx.Model(&models.TicketCounter{}).
		Where("name = ?", ticketCounterName).
		Update("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// Counter row missing (fresh store); seed it at 1.
		if err := tx.Create(&models.TicketCounter{Name: ticketCounterName, Value: 1}).Error; err != nil {
			return "", err
		}
	}

	var counter models.TicketCounter
	if err := tx.Where("name = ?", ticketCounterName).First(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", ticketPrefix, ticketMinDigits, counter.Value), nil
}
