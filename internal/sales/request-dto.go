package sales

import (
	"time"

	"cineops/internal/catalog"
	"cineops/internal/shared/apperror"
)

type RecordSaleRequest struct {
	SessionID   string `json:"session_id" binding:"required,uuid"`
	CustomerID  string `json:"customer_id" binding:"required,uuid"`
	TicketCount int    `json:"ticket_count" binding:"required"`
	// EmployeeID is ignored when the request is authenticated.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	// BookingID makes the sale fulfil that booking instead of taking new seats.
	BookingID string `json:"booking_id" binding:"omitempty,uuid"`
}

type StatsQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type ListSalesQuery struct {
	catalog.ListQuery
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
}

// Range turns the inclusive day bounds into [from, to) in UTC. An open
// bound defaults to the other one, so a single day can be asked for with
// either parameter.
func (q StatsQuery) Range() (time.Time, time.Time, error) {
	fromDay, toDay := q.From, q.To
	if fromDay == "" {
		fromDay = toDay
	}
	if toDay == "" {
		toDay = fromDay
	}

	from, err := time.ParseInLocation(reportDayLayout, fromDay, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidInput("from must be YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(reportDayLayout, toDay, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidInput("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.InvalidInput("to must not be before from")
	}
	return from, to.AddDate(0, 0, 1), nil
}
