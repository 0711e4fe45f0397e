package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/kds"
	"github.com/restopos/ticket-engine/models"
	"github.com/restopos/ticket-engine/services"
	"github.com/restopos/ticket-engine/utils"
)

type TicketController struct {
	Service *services.TicketService
}

func NewTicketController(db *gorm.DB) *TicketController {
	return &TicketController{Service: services.NewTicketService(db)}
}

// statusForError maps the service error taxonomy onto HTTP codes.
func statusForError(err error) int {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAlreadySettled),
		errors.Is(err, services.ErrNotSettled):
		return http.StatusConflict
	case errors.Is(err, services.ErrGenerationExhausted):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// CreateOrder -> mint a ticket number and persist the order with items
func (tc *TicketController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Service.CreateOrderWithTicket(req)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	kds.BroadcastTicketCreated(order)
	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":         order,
		"ticket_number": order.TicketNumber,
	})
}

// GetAllOrders -> list orders, optionally filtered by status, order type
// or payment status
func (tc *TicketController) GetAllOrders(c *gin.Context) {
	filters := services.OrderFilters{
		Status:        models.OrderStatus(c.Query("status")),
		OrderType:     models.OrderType(c.Query("order_type")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
	}

	orders, err := tc.Service.ListOrders(filters)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByTicketNumber -> full order detail with items and payments
func (tc *TicketController) GetOrderByTicketNumber(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	order, err := tc.Service.GetOrderByTicketNumber(ticketNumber)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> apply one lifecycle transition
func (tc *TicketController) UpdateOrderStatus(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	type ReqBody struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Service.UpdateOrderStatus(ticketNumber, body.Status)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	kds.BroadcastStatusUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetNextStatus -> the next legal status, used to drive UI prompts.
// The same table is enforced server-side on every transition.
func (tc *TicketController) GetNextStatus(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	order, err := tc.Service.GetOrderByTicketNumber(ticketNumber)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	next, ok := services.NextStatus(order.Status)
	if !ok {
		utils.RespondJSON(c, http.StatusOK, "Order is in a terminal status", gin.H{
			"current": order.Status,
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Next status", gin.H{
		"current": order.Status,
		"next":    next,
	})
}
