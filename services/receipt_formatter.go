package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopos/ticket-engine/models"
)

// Thermal printer constants for 80mm receipts.
const (
	PrinterWidth = 48 // physical characters per line, metadata only
	ContentWidth = 42 // layout width (leaving margin)

	currencyGlyph   = "₹"
	maxItemNameLen  = 20
	itemNameKeepLen = 17
)

// ShopInfo is the identity block printed at the top of every receipt.
type ShopInfo struct {
	Name    string
	Address string
	City    string
	Phone   string
}

// DefaultShopInfo is used when no shop identity is configured.
var DefaultShopInfo = ShopInfo{
	Name:    "═══ RESTAURANT POS ═══",
	Address: "123 Restaurant Street",
	City:    "City, State 12345",
	Phone:   "Tel: (555) 123-4567",
}

var shopInfo = DefaultShopInfo

// SetShopInfo installs the configured shop identity. Call once at
// startup, before any receipt is rendered.
func SetShopInfo(info ShopInfo) {
	shopInfo = info
}

// Widths are measured in characters, not bytes; the currency glyph and
// the header box-drawing characters are multibyte in UTF-8.

// FormatLine lays out a left and right fragment on one row of width
// characters. With no right fragment the text is left-aligned and padded.
// When both fit, the gap between them is filled with spaces; when they
// overflow, the left fragment is truncated so exactly one space remains
// before the right fragment. The result never exceeds width.
func FormatLine(left, right string, width int) string {
	leftRunes := []rune(left)
	if right == "" {
		if len(leftRunes) >= width {
			return string(leftRunes[:width])
		}
		return left + strings.Repeat(" ", width-len(leftRunes))
	}

	rightLen := len([]rune(right))
	total := len(leftRunes) + rightLen
	if total <= width {
		return left + strings.Repeat(" ", width-total) + right
	}

	maxLeft := width - rightLen - 1
	if maxLeft < 0 {
		maxLeft = 0
	}
	if maxLeft > len(leftRunes) {
		maxLeft = len(leftRunes)
	}
	return string(leftRunes[:maxLeft]) + " " + right
}

// CenterText centers text within width, truncating if it does not fit.
// The result is always exactly width characters.
func CenterText(text string, width int) string {
	runes := []rune(text)
	if len(runes) >= width {
		return string(runes[:width])
	}
	leftPad := (width - len(runes)) / 2
	rightPad := width - leftPad - len(runes)
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// Separator returns ch repeated width times.
func Separator(ch string, width int) string {
	return strings.Repeat(ch, width)
}

// Money renders an amount with the currency glyph and exactly two decimals.
func Money(amount decimal.Decimal) string {
	return currencyGlyph + amount.StringFixed(2)
}

// truncateItemName caps item names so long names keep the row aligned.
func truncateItemName(name string) string {
	runes := []rune(name)
	if len(runes) > maxItemNameLen {
		return string(runes[:itemNameKeepLen]) + "..."
	}
	return name
}

// receiptBuilder accumulates content rows and annotates each with a
// style tag. Layout math stays in the pure helpers above; styles are
// hints for whichever renderer materializes the document.
type receiptBuilder struct {
	lines []models.ReceiptLine
}

func (b *receiptBuilder) plain(text string) {
	b.lines = append(b.lines, models.ReceiptLine{Text: text, Style: models.StylePlain})
}

func (b *receiptBuilder) center(text string) {
	b.lines = append(b.lines, models.ReceiptLine{Text: CenterText(text, ContentWidth), Style: models.StyleCenter})
}

func (b *receiptBuilder) bold(text string) {
	b.lines = append(b.lines, models.ReceiptLine{Text: text, Style: models.StyleBold})
}

func (b *receiptBuilder) total(text string) {
	b.lines = append(b.lines, models.ReceiptLine{Text: text, Style: models.StyleTotal})
}

func (b *receiptBuilder) blank() {
	b.plain("")
}

func (b *receiptBuilder) separator(ch string) {
	b.plain(Separator(ch, ContentWidth))
}

// BuildReceipt renders an order snapshot into the fixed-width line
// buffer for an 80mm thermal receipt. It is pure: same inputs, same
// lines. payment may be nil for a pre-settlement preview.
func BuildReceipt(order *models.Order, payment *models.Payment, cashier string, printedAt time.Time) models.ReceiptDocument {
	b := &receiptBuilder{}

	// Header
	b.blank()
	b.center(shopInfo.Name)
	b.center(shopInfo.Address)
	b.center(shopInfo.City)
	b.center(shopInfo.Phone)
	b.blank()
	b.separator("=")
	b.blank()

	// Ticket info
	b.bold(CenterText(fmt.Sprintf("TICKET: %s", order.TicketNumber), ContentWidth))
	b.blank()
	b.plain(FormatLine("Order Type:", strings.ToUpper(string(order.OrderType)), ContentWidth))
	if order.Table != nil {
		b.plain(FormatLine("Table:", order.Table.TableNumber, ContentWidth))
	}
	b.plain(FormatLine("Date:", order.CreatedAt.Format("02 Jan 2006"), ContentWidth))
	b.plain(FormatLine("Time:", order.CreatedAt.Format("15:04:05"), ContentWidth))
	b.blank()
	b.separator("-")
	b.blank()

	// Items
	b.plain("QTY ITEM                     TOTAL")
	b.separator("-")
	for _, item := range order.OrderItems {
		name := truncateItemName(item.MenuItemName)
		left := fmt.Sprintf("%dx  %s", item.Quantity, name)
		b.plain(FormatLine(left, Money(item.TotalPrice), ContentWidth))
		if item.Notes != "" {
			b.plain("     Note: " + item.Notes)
		}
	}
	b.blank()
	b.separator("-")

	// Totals
	b.plain(FormatLine("SUBTOTAL:", Money(order.Subtotal()), ContentWidth))
	b.blank()
	b.separator("=")
	b.blank()
	b.total(FormatLine("TOTAL:", Money(order.TotalAmount), ContentWidth))
	b.blank()
	b.separator("=")
	b.blank()

	// Payment
	if payment != nil {
		b.plain(FormatLine("Payment:", strings.ToUpper(payment.PaymentMethod), ContentWidth))
		b.plain(FormatLine("Amount Paid:", Money(payment.Amount), ContentWidth))
		if payment.PaymentMethod == "cash" && payment.Amount.GreaterThan(order.TotalAmount) {
			change := payment.Amount.Sub(order.TotalAmount)
			b.plain(FormatLine("Change:", Money(change), ContentWidth))
		}
		b.blank()
	}

	// Footer
	b.center("THANK YOU!")
	b.center("Please visit again")
	b.blank()
	if cashier == "" {
		cashier = "POS System"
	}
	b.center("Served by: " + cashier)
	b.blank()
	b.separator("-")
	b.blank()

	return models.ReceiptDocument{
		Lines: b.lines,
		Meta: models.ReceiptMeta{
			TicketNumber: order.TicketNumber,
			PrintedAt:    printedAt,
			PrinterWidth: PrinterWidth,
			ContentWidth: ContentWidth,
		},
	}
}

// RenderText materializes a document as plain text, one row per line
// with spacing preserved verbatim.
func RenderText(doc models.ReceiptDocument) string {
	var sb strings.Builder
	for _, line := range doc.Lines {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
