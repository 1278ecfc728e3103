package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClockLayout = "15:04:05"
	DateLayout  = "2006-01-02"
)

type Cinema struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Address       string    `json:"address" gorm:"not null;size:500"`
	EmployeeCount int       `json:"employee_count" gorm:"not null;default:0;check:employee_count >= 0"`
	HallCount     int       `json:"hall_count" gorm:"not null;check:hall_count > 0"`
	SeatsPerHall  int       `json:"seats_per_hall" gorm:"not null;check:seats_per_hall > 0"`
	OpeningTime   string    `json:"opening_time" gorm:"type:varchar(8);not null"`
	ClosingTime   string    `json:"closing_time" gorm:"type:varchar(8);not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Film struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title              string    `json:"title" gorm:"not null;size:255"`
	Slug               string    `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	AgeRestriction     int       `json:"age_restriction" gorm:"not null;default:0;check:age_restriction BETWEEN 0 AND 21"`
	IsBookingAvailable bool      `json:"is_booking_available" gorm:"not null;default:true"`
	StartDate          time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate            time.Time `json:"end_date" gorm:"type:date;not null;index"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Customer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string    `json:"first_name" gorm:"not null;size:100"`
	LastName  string    `json:"last_name" gorm:"not null;size:100"`
	Email     *string   `json:"email,omitempty" gorm:"uniqueIndex;size:255"`
	Phone     string    `json:"phone,omitempty" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Cinema) TableName() string {
	return "cinemas"
}

func (Film) TableName() string {
	return "films"
}

func (Customer) TableName() string {
	return "customers"
}

// FullName is the display name used across booking and sale views.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// IsShowing reports whether the film's run includes the given day.
func (f Film) IsShowing(day time.Time) bool {
	d := day.UTC().Truncate(24 * time.Hour)
	return !d.Before(f.StartDate.UTC()) && !d.After(f.EndDate.UTC())
}
