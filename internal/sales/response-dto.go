package sales

import (
	"github.com/shopspring/decimal"
)

type RecordSaleResponse struct {
	Sale             *TicketSale     `json:"sale"`
	TicketPrice      decimal.Decimal `json:"ticket_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	FulfilledBooking bool            `json:"fulfilled_booking"`
}

// DailyReport is the payload of the sales.daily_report event.
type DailyReport struct {
	Day   string `json:"day"`
	Stats Stats  `json:"stats"`
}
