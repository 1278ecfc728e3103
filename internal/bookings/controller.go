package bookings

import (
	"context"
	"net/http"

	"cineops/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func bookingID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.BadRequest(ctx, "Invalid booking ID", err)
		return uuid.Nil, false
	}
	return id, true
}

// CreateBooking godoc
// @Summary  Reserve seats for a customer
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body CreateBookingRequest true "Booking"
// @Success  201 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse "capacity exceeded"
// @Router   /bookings [post]
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "Invalid request body", err)
		return
	}

	// binding has validated both as UUIDs
	sessionID := uuid.MustParse(req.SessionID)
	customerID := uuid.MustParse(req.CustomerID)

	booking, err := c.service.CreateBooking(ctx.Request.Context(), sessionID, customerID, req.TicketCount)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking created successfully", booking)
}

// ConfirmBooking handles PUT /api/v1/bookings/:id/confirm
func (c *Controller) ConfirmBooking(ctx *gin.Context) {
	c.transition(ctx, c.service.ConfirmBooking, "Booking confirmed successfully", "Booking already completed")
}

// CancelBooking handles PUT /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	c.transition(ctx, c.service.CancelBooking, "Booking cancelled successfully", "Booking already cancelled")
}

func (c *Controller) transition(ctx *gin.Context, apply func(context.Context, uuid.UUID) (*TransitionResult, error), changed, noop string) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}

	result, err := apply(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	msg := changed
	if result.Noop {
		msg = noop
	}
	response.Success(ctx, http.StatusOK, msg, result)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, ok := bookingID(ctx)
	if !ok {
		return
	}

	view, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", view)
}

// ListActiveBookings handles GET /api/v1/bookings/active
func (c *Controller) ListActiveBookings(ctx *gin.Context) {
	views, err := c.service.ListActiveBookings(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Active bookings retrieved successfully", views)
}

// ListBookings handles GET /api/v1/bookings?status=&session_id=&page=&limit=
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query ListBookingsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.BadRequest(ctx, "Invalid query parameters", err)
		return
	}

	page, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", page)
}
