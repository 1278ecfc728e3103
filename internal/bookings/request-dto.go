package bookings

import "cineops/internal/catalog"

type CreateBookingRequest struct {
	SessionID   string `json:"session_id" binding:"required,uuid"`
	CustomerID  string `json:"customer_id" binding:"required,uuid"`
	TicketCount int    `json:"ticket_count" binding:"required"`
}

type ListBookingsQuery struct {
	catalog.ListQuery
	Status    string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
}
