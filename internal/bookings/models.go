package bookings

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"session_id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"customer_id"`
	TicketCount int        `gorm:"not null;check:ticket_count > 0" json:"ticket_count"`
	BookingTime time.Time  `gorm:"type:timestamptz;not null;<-:create" json:"booking_time"`
	Status      Status     `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// apply moves the booking to status to, stamping the matching timestamp.
func (b *Booking) apply(to Status, now time.Time) {
	b.Status = to
	b.UpdatedAt = now
	switch to {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
}

// BookingView is a booking joined with the names a box office needs.
type BookingView struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    uuid.UUID  `json:"session_id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	FilmTitle    string     `json:"film_title"`
	CinemaName   string     `json:"cinema_name"`
	HallNumber   int        `json:"hall_number"`
	StartTime    time.Time  `json:"start_time"`
	TicketCount  int        `json:"ticket_count"`
	Status       Status     `json:"status"`
	BookingTime  time.Time  `json:"booking_time"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}
