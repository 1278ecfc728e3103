package bookings

import (
	"context"
	"time"

	"cineops/internal/notifications"
	"cineops/internal/shared/apperror"
	"cineops/internal/shared/utils/response"
	"cineops/pkg/logger"

	"github.com/google/uuid"
)

// CustomerDirectory answers whether a customer exists (catalog.Service).
type CustomerDirectory interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service interface {
	CreateBooking(ctx context.Context, sessionID, customerID uuid.UUID, ticketCount int) (*Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*TransitionResult, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*TransitionResult, error)
	ListActiveBookings(ctx context.Context) ([]BookingView, error)
	ListBookings(ctx context.Context, query ListBookingsQuery) (*response.Page, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type service struct {
	repo      Repository
	customers CustomerDirectory
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerDirectory, publisher notifications.Publisher) Service {
	return &service{
		repo:      repo,
		customers: customers,
		publisher: publisher,
		log:       logger.GetDefault(),
		now:       time.Now,
	}
}

func (s *service) CreateBooking(ctx context.Context, sessionID, customerID uuid.UUID, ticketCount int) (*Booking, error) {
	if ticketCount <= 0 {
		return nil, apperror.InvalidInput("ticket_count must be greater than zero")
	}

	exists, err := s.customers.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("customer")
	}

	booking := &Booking{
		SessionID:   sessionID,
		CustomerID:  customerID,
		TicketCount: ticketCount,
	}
	if err := s.repo.CreateWithCapacityCheck(ctx, booking, s.now().UTC()); err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindCapacityExceeded {
			s.log.LogCapacityRejected(ctx, sessionID.String(), ticketCount, appErr.Remaining)
		}
		return nil, apperror.FromDB(err, "booking")
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), sessionID.String(), customerID.String(), ticketCount)
	notifications.PublishAfterCommit(ctx, s.publisher, notifications.NewEvent(
		notifications.EventBookingCreated, booking.ID.String(), map[string]interface{}{
			"session_id":   sessionID.String(),
			"customer_id":  customerID.String(),
			"ticket_count": ticketCount,
		}))

	return booking, nil
}

func (s *service) ConfirmBooking(ctx context.Context, id uuid.UUID) (*TransitionResult, error) {
	return s.transition(ctx, id, ActionConfirm, notifications.EventBookingConfirmed)
}

// CancelBooking frees the booking's seats: cancelled bookings are not
// counted by the session inventory.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID) (*TransitionResult, error) {
	return s.transition(ctx, id, ActionCancel, notifications.EventBookingCancelled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, action Action, eventType notifications.EventType) (*TransitionResult, error) {
	result, err := s.repo.ApplyAction(ctx, id, action, s.now().UTC())
	if err != nil {
		return nil, apperror.FromDB(err, "booking")
	}

	s.log.LogBookingTransition(ctx, id.String(), string(result.From), string(result.Booking.Status), result.Noop)
	if !result.Noop {
		notifications.PublishAfterCommit(ctx, s.publisher, notifications.NewEvent(
			eventType, id.String(), map[string]interface{}{
				"session_id":      result.Booking.SessionID.String(),
				"ticket_count":    result.Booking.TicketCount,
				"previous_status": string(result.From),
			}))
	}
	return result, nil
}

func (s *service) ListActiveBookings(ctx context.Context) ([]BookingView, error) {
	views, err := s.repo.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, apperror.FromDB(err, "booking")
	}
	if views == nil {
		views = []BookingView{}
	}
	return views, nil
}

func (s *service) ListBookings(ctx context.Context, query ListBookingsQuery) (*response.Page, error) {
	query.Normalize()

	views, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apperror.FromDB(err, "booking")
	}
	if views == nil {
		views = []BookingView{}
	}

	p := response.NewPage(views, query.Page, query.Limit, total)
	return &p, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "booking")
	}
	return view, nil
}
