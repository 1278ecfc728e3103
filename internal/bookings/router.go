package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes. Every route is
// an operator action and goes through staff.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, staff gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(staff)
	{
		bookings.GET("", controller.ListBookings)               // GET /api/v1/bookings
		bookings.POST("", controller.CreateBooking)             // POST /api/v1/bookings
		bookings.GET("/active", controller.ListActiveBookings)  // GET /api/v1/bookings/active
		bookings.GET("/:id", controller.GetBooking)             // GET /api/v1/bookings/:id
		bookings.PUT("/:id/confirm", controller.ConfirmBooking) // PUT /api/v1/bookings/:id/confirm
		bookings.PUT("/:id/cancel", controller.CancelBooking)   // PUT /api/v1/bookings/:id/cancel
	}
}
