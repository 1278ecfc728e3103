package sales

import (
	"github.com/gin-gonic/gin"
)

// SetupSalesRoutes mounts the ledger under /tickets. Every route is a
// box-office action and goes through staff.
func SetupSalesRoutes(rg *gin.RouterGroup, controller *Controller, staff gin.HandlerFunc) {
	tickets := rg.Group("/tickets")
	tickets.Use(staff)
	{
		tickets.GET("", controller.ListSales)                  // GET /api/v1/tickets
		tickets.POST("", controller.RecordSale)                // POST /api/v1/tickets
		tickets.GET("/stats", controller.GetSalesStats)        // GET /api/v1/tickets/stats
		tickets.GET("/:id", controller.GetSale)                // GET /api/v1/tickets/:id
		tickets.GET("/:id/receipt.png", controller.GetReceipt) // GET /api/v1/tickets/:id/receipt.png
	}
}
