package sessions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is one screening of a film in a cinema hall. Rows are never
// updated after creation.
type Session struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FilmID      uuid.UUID       `json:"film_id" gorm:"type:uuid;not null;index"`
	CinemaID    uuid.UUID       `json:"cinema_id" gorm:"type:uuid;not null;index"`
	HallNumber  int             `json:"hall_number" gorm:"not null;check:hall_number > 0"`
	StartTime   time.Time       `json:"start_time" gorm:"type:timestamptz;not null;index"`
	TicketPrice decimal.Decimal `json:"ticket_price" gorm:"type:numeric(10,2);not null"`
	Capacity    int             `json:"capacity" gorm:"not null;check:capacity > 0"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

// UpcomingSession is a row of the upcoming listing.
type UpcomingSession struct {
	ID             uuid.UUID       `json:"id"`
	FilmID         uuid.UUID       `json:"film_id"`
	FilmTitle      string          `json:"film_title"`
	AgeRestriction int             `json:"age_restriction"`
	CinemaID       uuid.UUID       `json:"cinema_id"`
	CinemaName     string          `json:"cinema_name"`
	HallNumber     int             `json:"hall_number"`
	StartTime      time.Time       `json:"start_time"`
	TicketPrice    decimal.Decimal `json:"ticket_price"`
	Capacity       int             `json:"capacity"`
}
