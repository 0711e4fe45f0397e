package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/kds"
	"github.com/restopos/ticket-engine/services"
	"github.com/restopos/ticket-engine/utils"
)

type PaymentController struct {
	Service *services.TicketService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{Service: services.NewTicketService(db)}
}

// ProcessPayment -> settle a ticket. A second call for the same ticket
// gets 409 rather than a second charge.
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	type ReqBody struct {
		Amount  decimal.Decimal `json:"amount" binding:"required"`
		Method  string          `json:"method" binding:"required"`
		Cashier string          `json:"cashier"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	settled, err := pc.Service.ProcessPayment(ticketNumber, body.Amount, body.Method, body.Cashier)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("ticket %s settled via %s for %s",
		ticketNumber, settled.PaymentMethod, settled.TotalAmount.StringFixed(2))
	kds.BroadcastTicketSettled(settled)
	utils.RespondJSON(c, http.StatusCreated, "Payment processed", settled)
}

// Reprint -> replay the stored receipt snapshot and bump the counter
func (pc *PaymentController) Reprint(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	settled, doc, err := pc.Service.Reprint(ticketNumber)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	kds.BroadcastReceiptReprint(settled)
	utils.RespondJSON(c, http.StatusOK, "Receipt reprinted", gin.H{
		"settled_ticket": settled,
		"receipt":        doc,
	})
}

// GetReceiptText -> the settled receipt as a printable text artifact,
// one row per line, spacing preserved
func (pc *PaymentController) GetReceiptText(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	_, doc, err := pc.Service.Reprint(ticketNumber)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.RenderText(*doc)))
}

// SettledTicketsReport -> settlements in a date window, optionally by
// payment method
func (pc *PaymentController) SettledTicketsReport(c *gin.Context) {
	var start, end *time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		start = &t
	}
	if e := c.Query("end"); e != "" {
		t, err := time.Parse(time.RFC3339, e)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		end = &t
	}

	report, err := pc.Service.SettledTicketsReport(start, end, c.Query("method"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settled tickets report", report)
}
