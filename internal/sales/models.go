package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketSale is a completed box-office sale. The total is never stored; it
// is the ticket count times the session's (immutable) price.
type TicketSale struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID   uuid.UUID  `json:"session_id" gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `json:"employee_id" gorm:"type:uuid;not null;index"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty" gorm:"type:uuid;uniqueIndex"`
	TicketCount int        `json:"ticket_count" gorm:"not null;check:ticket_count > 0"`
	SaleTime    time.Time  `json:"sale_time" gorm:"type:timestamptz;not null;index"`
}

func (TicketSale) TableName() string {
	return "ticket_sales"
}

// SaleView is a sale joined with its session, film, cinema, customer and
// employee.
type SaleView struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"session_id"`
	BookingID    *uuid.UUID      `json:"booking_id,omitempty"`
	FilmTitle    string          `json:"film_title"`
	CinemaName   string          `json:"cinema_name"`
	HallNumber   int             `json:"hall_number"`
	StartTime    time.Time       `json:"start_time"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	TicketCount  int             `json:"ticket_count"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SaleTime     time.Time       `json:"sale_time"`
}

type Stats struct {
	TotalSales            int64           `json:"total_sales"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	AverageTicketsPerSale float64         `json:"average_tickets_per_sale"`
}
