package models

// TicketCounter backs ticket numbering with a single atomically
// incremented sequence row shared by all terminals.
type TicketCounter struct {
	Name  string `gorm:"primaryKey;type:varchar(50)"`
	Value int64  `gorm:"not null;default:0"`
}
