package models

import "time"

// Receipt line styles. Styling is a hint for the renderer (terminal, HTML,
// raster); layout math never depends on it.
const (
	StylePlain  = "plain"
	StyleBold   = "bold"
	StyleCenter = "center"
	StyleTotal  = "total"
)

// ReceiptLine is one fixed-width row of a rendered receipt.
type ReceiptLine struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// ReceiptMeta describes the rendering parameters of a receipt document.
// PrinterWidth is informational only; all layout is done at ContentWidth.
type ReceiptMeta struct {
	TicketNumber string    `json:"ticket_number"`
	PrintedAt    time.Time `json:"printed_at"`
	PrinterWidth int       `json:"printer_width"`
	ContentWidth int       `json:"content_width"`
}

// ReceiptDocument is the renderable line buffer for one ticket.
// It is NOT a database entity; the settled snapshot stores its JSON form.
type ReceiptDocument struct {
	Lines []ReceiptLine `json:"lines"`
	Meta  ReceiptMeta   `json:"meta"`
}
