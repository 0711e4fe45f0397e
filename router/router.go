package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/controllers"
	"github.com/restopos/ticket-engine/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.RateLimit(rate.Limit(50), 100))

	ticketCtrl := controllers.NewTicketController(db)
	paymentCtrl := controllers.NewPaymentController(db)

	orders := r.Group("/orders")
	{
		orders.POST("", ticketCtrl.CreateOrder)
		orders.GET("", ticketCtrl.GetAllOrders)
		orders.GET("/:ticket_number", ticketCtrl.GetOrderByTicketNumber)
		orders.GET("/:ticket_number/next-status", ticketCtrl.GetNextStatus)
		orders.PATCH("/:ticket_number/status", ticketCtrl.UpdateOrderStatus)
		orders.POST("/:ticket_number/payment", paymentCtrl.ProcessPayment)
		orders.POST("/:ticket_number/reprint", paymentCtrl.Reprint)
		orders.GET("/:ticket_number/receipt.txt", paymentCtrl.GetReceiptText)
	}

	r.GET("/reports/settled-tickets", paymentCtrl.SettledTicketsReport)
	r.GET("/ws/tickets", controllers.TicketStreamHandler)

	return r
}
