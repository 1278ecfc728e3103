package sales

import (
	"context"
	"time"

	"cineops/internal/notifications"
	"cineops/internal/shared/apperror"
	"cineops/internal/shared/utils/response"
	"cineops/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDirectory is satisfied by catalog.Service.
type CustomerDirectory interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// EmployeeDirectory is satisfied by auth.Service.
type EmployeeDirectory interface {
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type SaleInput struct {
	SessionID   uuid.UUID
	CustomerID  uuid.UUID
	EmployeeID  uuid.UUID
	TicketCount int
	BookingID   *uuid.UUID
}

type Service interface {
	RecordSale(ctx context.Context, in SaleInput) (*RecordSaleResponse, error)
	GetSalesStats(ctx context.Context) (*Stats, error)
	GetSalesStatsBetween(ctx context.Context, from, to time.Time) (*Stats, error)
	GetSale(ctx context.Context, id uuid.UUID) (*SaleView, error)
	ListSales(ctx context.Context, query ListSalesQuery) (*response.Page, error)
	GetSaleReceiptQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo      Repository
	customers CustomerDirectory
	employees EmployeeDirectory
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerDirectory, employees EmployeeDirectory, publisher notifications.Publisher) Service {
	return &service{
		repo:      repo,
		customers: customers,
		employees: employees,
		publisher: publisher,
		log:       logger.GetDefault(),
		now:       time.Now,
	}
}

// RecordSale checks the customer and employee up front. The session is
// checked by the repository when it takes the inventory lock.
func (s *service) RecordSale(ctx context.Context, in SaleInput) (*RecordSaleResponse, error) {
	if in.TicketCount <= 0 {
		return nil, apperror.InvalidInput("ticket_count must be greater than zero")
	}

	exists, err := s.customers.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("customer")
	}

	exists, err = s.employees.EmployeeExists(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("employee")
	}

	sale := &TicketSale{
		SessionID:   in.SessionID,
		CustomerID:  in.CustomerID,
		EmployeeID:  in.EmployeeID,
		BookingID:   in.BookingID,
		TicketCount: in.TicketCount,
	}
	recorded, err := s.repo.RecordWithCapacityCheck(ctx, sale, s.now().UTC())
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindCapacityExceeded {
			s.log.LogCapacityRejected(ctx, in.SessionID.String(), in.TicketCount, appErr.Remaining)
		}
		return nil, apperror.FromDB(err, "sale")
	}

	total := recorded.TicketPrice.Mul(decimal.NewFromInt(int64(in.TicketCount)))
	s.log.LogSaleRecorded(ctx, sale.ID.String(), in.SessionID.String(), in.EmployeeID.String(), in.TicketCount, total.StringFixed(2))

	payload := map[string]interface{}{
		"session_id":   in.SessionID.String(),
		"customer_id":  in.CustomerID.String(),
		"employee_id":  in.EmployeeID.String(),
		"ticket_count": in.TicketCount,
		"total_price":  total.StringFixed(2),
	}
	if in.BookingID != nil {
		payload["booking_id"] = in.BookingID.String()
	}
	notifications.PublishAfterCommit(ctx, s.publisher, notifications.NewEvent(
		notifications.EventSaleRecorded, sale.ID.String(), payload))

	return &RecordSaleResponse{
		Sale:             sale,
		TicketPrice:      recorded.TicketPrice,
		TotalPrice:       total,
		FulfilledBooking: recorded.FulfilledBooking,
	}, nil
}

func (s *service) GetSalesStats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx, nil, nil)
	if err != nil {
		return nil, apperror.FromDB(err, "sale")
	}
	return stats, nil
}

// GetSalesStatsBetween covers sales in [from, to).
func (s *service) GetSalesStatsBetween(ctx context.Context, from, to time.Time) (*Stats, error) {
	if !to.After(from) {
		return nil, apperror.InvalidInput("the end of the range must be after its start")
	}
	stats, err := s.repo.Stats(ctx, &from, &to)
	if err != nil {
		return nil, apperror.FromDB(err, "sale")
	}
	return stats, nil
}

func (s *service) GetSale(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "sale")
	}
	return view, nil
}

func (s *service) ListSales(ctx context.Context, query ListSalesQuery) (*response.Page, error) {
	query.Normalize()

	views, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apperror.FromDB(err, "sale")
	}
	if views == nil {
		views = []SaleView{}
	}

	p := response.NewPage(views, query.Page, query.Limit, total)
	return &p, nil
}

func (s *service) GetSaleReceiptQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	view, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return ReceiptPNG(view, receiptSize)
}
