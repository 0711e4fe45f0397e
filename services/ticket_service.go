package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/models"
	"github.com/restopos/ticket-engine/utils"
)

const maxTicketAttempts = 5

// TicketService composes ticket numbering, the order lifecycle, receipt
// rendering and settlement against the backing store. It holds no
// mutable state of its own; every operation is an independent request.
type TicketService struct {
	DB      *gorm.DB
	Numbers *TicketNumberGenerator
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{DB: db, Numbers: &TicketNumberGenerator{}}
}

// OrderItemRequest is one requested line of a new order. UnitPrice is
// accepted from the terminal and snapshotted; the stored line never
// follows later menu price changes.
type OrderItemRequest struct {
	MenuItemID uint            `json:"menu_item_id" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Notes      string          `json:"notes"`
}

type CreateOrderRequest struct {
	TableID   *uint              `json:"table_id"`
	OrderType models.OrderType   `json:"order_type"`
	Items     []OrderItemRequest `json:"items"`
}

func (s *TicketService) validateCreate(req *CreateOrderRequest) error {
	if req.OrderType == "" {
		req.OrderType = models.OrderTypeDineIn
	}
	if !models.ValidOrderType(req.OrderType) {
		return newValidationError("order_type", "unknown order type "+string(req.OrderType))
	}
	if req.OrderType == models.OrderTypeDineIn && req.TableID == nil {
		return newValidationError("table_id", "dine-in orders require a table")
	}
	if len(req.Items) == 0 {
		return newValidationError("items", "at least one item is required")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return newValidationError("items.quantity", "quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return newValidationError("items.unit_price", "unit price cannot be negative")
		}
	}
	return nil
}

// CreateOrderWithTicket is the single entry point for order creation.
// Ticket number reservation, the order row and its lines commit as one
// transaction; on a ticket-number collision the whole unit is retried.
func (s *TicketService) CreateOrderWithTicket(req CreateOrderRequest) (*models.Order, error) {
	if err := s.validateCreate(&req); err != nil {
		return nil, err
	}

	if req.TableID != nil {
		var table models.Table
		if err := s.DB.First(&table, *req.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("table_id", "table does not exist")
			}
			return nil, err
		}
	}

	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		var order models.Order
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			number, err := s.Numbers.Next(tx)
			if err != nil {
				return err
			}

			now := time.Now()
			order = models.Order{
				TicketNumber:  number,
				OrderType:     req.OrderType,
				TableID:       req.TableID,
				Status:        models.StatusPending,
				PaymentStatus: models.PaymentPending,
				CreatedAt:     now,
				UpdatedAt:     now,
			}

			total := decimal.Zero
			for _, item := range req.Items {
				var menuItem models.MenuItem
				if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return newValidationError("items.menu_item_id", "menu item does not exist")
					}
					return err
				}
				lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
				total = total.Add(lineTotal)
				order.OrderItems = append(order.OrderItems, models.OrderItem{
					MenuItemID:   menuItem.ID,
					MenuItemName: menuItem.Name,
					Quantity:     item.Quantity,
					UnitPrice:    item.UnitPrice,
					TotalPrice:   lineTotal,
					Notes:        item.Notes,
					CreatedAt:    now,
					UpdatedAt:    now,
				})
			}
			order.TotalAmount = total

			return tx.Create(&order).Error
		})
		if err == nil {
			return s.GetOrderByTicketNumber(order.TicketNumber)
		}
		if isDuplicateTicket(err) {
			utils.ErrorLogger.Printf("ticket number collision on attempt %d, retrying", attempt+1)
			continue
		}
		return nil, err
	}
	return nil, ErrGenerationExhausted
}

// isDuplicateTicket detects a unique-index conflict on the ticket number.
func isDuplicateTicket(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// GetOrderByTicketNumber loads the full order with items, table and
// payment history.
func (s *TicketService) GetOrderByTicketNumber(ticketNumber string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("Table").
		Preload("Payments").
		Where("ticket_number = ?", ticketNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrderFilters narrows ListOrders. Empty fields match everything.
type OrderFilters struct {
	Status        models.OrderStatus
	OrderType     models.OrderType
	PaymentStatus models.PaymentStatus
}

// ListOrders returns orders with items, newest first.
func (s *TicketService) ListOrders(filters OrderFilters) ([]models.Order, error) {
	query := s.DB.Preload("OrderItems").Preload("Table").Order("created_at DESC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.OrderType != "" {
		query = query.Where("order_type = ?", filters.OrderType)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus applies one step of the lifecycle. The store update
// is a compare-and-set on the expected prior status, so two terminals
// racing the same step leave exactly one winner; the loser gets
// ErrInvalidTransition.
func (s *TicketService) UpdateOrderStatus(ticketNumber string, next models.OrderStatus) (*models.Order, error) {
	order, err := s.GetOrderByTicketNumber(ticketNumber)
	if err != nil {
		return nil, err
	}

	paid := order.PaymentStatus == models.PaymentPaid
	if err := CheckTransition(order.Status, next, paid); err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.Order{}).
		Where("ticket_number = ? AND status = ?", ticketNumber, order.Status).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race; the precondition no longer holds.
		return nil, ErrInvalidTransition
	}

	return s.GetOrderByTicketNumber(ticketNumber)
}

// ProcessPayment settles a ticket: exactly one Payment row, the payment
// status flipped to paid, and the receipt rendered and frozen as a
// SettledTicket with printCount 1, all in one transaction. A retried or
// concurrent call observes ErrAlreadySettled instead of double-charging.
func (s *TicketService) ProcessPayment(ticketNumber string, amount decimal.Decimal, method, cashier string) (*models.SettledTicket, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, newValidationError("method", "unknown payment method "+method)
	}
	if amount.IsNegative() {
		return nil, newValidationError("amount", "amount cannot be negative")
	}

	order, err := s.GetOrderByTicketNumber(ticketNumber)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusCancelled {
		return nil, ErrInvalidTransition
	}
	if amount.LessThan(order.TotalAmount) {
		return nil, newValidationError("amount", "amount is less than the order total")
	}

	var settled models.SettledTicket
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// CAS guards against a concurrent settlement of the same ticket.
		res := tx.Model(&models.Order{}).
			Where("ticket_number = ? AND payment_status = ? AND status <> ?",
				ticketNumber, models.PaymentPending, models.StatusCancelled).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentPaid,
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySettled
		}

		now := time.Now()
		payment := models.Payment{
			OrderID:       order.ID,
			Amount:        amount,
			PaymentMethod: method,
			Status:        "completed",
			ReferenceID:   uuid.NewString(),
			CreatedAt:     now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		doc := BuildReceipt(order, &payment, cashier, now)
		snapshot, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		settled = models.SettledTicket{
			TicketNumber:  ticketNumber,
			PaymentMethod: method,
			TotalAmount:   order.TotalAmount,
			SettledAt:     now,
			PrintCount:    1,
			ReceiptData:   string(snapshot),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(&settled).Error
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

// Reprint replays the stored receipt snapshot and bumps the print
// counter. It never re-renders from live order state; prices and names
// on a reprint are the ones frozen at settlement.
func (s *TicketService) Reprint(ticketNumber string) (*models.SettledTicket, *models.ReceiptDocument, error) {
	var settled models.SettledTicket
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_number = ?", ticketNumber).First(&settled).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotSettled
			}
			return err
		}
		res := tx.Model(&models.SettledTicket{}).
			Where("ticket_number = ?", ticketNumber).
			Updates(map[string]interface{}{
				"print_count": gorm.Expr("print_count + ?", 1),
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		return tx.Where("ticket_number = ?", ticketNumber).First(&settled).Error
	})
	if err != nil {
		return nil, nil, err
	}

	var doc models.ReceiptDocument
	if err := json.Unmarshal([]byte(settled.ReceiptData), &doc); err != nil {
		return nil, nil, err
	}
	return &settled, &doc, nil
}

// SettlementReport summarizes settled tickets for a reporting window.
type SettlementReport struct {
	Tickets     []models.SettledTicket `json:"tickets"`
	TicketCount int                    `json:"ticket_count"`
	GrossTotal  decimal.Decimal        `json:"gross_total"`
}

// SettledTicketsReport lists settlements in [start, end), optionally
// filtered by payment method, with a gross total for the window.
func (s *TicketService) SettledTicketsReport(start, end *time.Time, method string) (*SettlementReport, error) {
	query := s.DB.Model(&models.SettledTicket{}).Order("settled_at DESC")
	if start != nil {
		query = query.Where("settled_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("settled_at < ?", *end)
	}
	if method != "" {
		query = query.Where("payment_method = ?", method)
	}

	var tickets []models.SettledTicket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, err
	}

	report := &SettlementReport{
		Tickets:     tickets,
		TicketCount: len(tickets),
		GrossTotal:  decimal.Zero,
	}
	for _, t := range tickets {
		report.GrossTotal = report.GrossTotal.Add(t.TotalAmount)
	}
	return report, nil
}
