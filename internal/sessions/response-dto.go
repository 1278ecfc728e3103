package sessions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CapacityAndPrice is what the booking engine and sales ledger need to know
// about a session.
type CapacityAndPrice struct {
	Capacity    int             `json:"capacity"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	StartTime   time.Time       `json:"start_time"`
}

type AvailabilityResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Capacity  int       `json:"capacity"`
	Reserved  int       `json:"reserved"`
	Remaining int       `json:"remaining"`
	StartTime time.Time `json:"start_time"`
	Started   bool      `json:"started"`
}
