package bookings

import (
	"context"
	"time"

	"cineops/internal/sessions"
	"cineops/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateWithCapacityCheck inserts booking as active if the session has
	// not started and has room for it.
	CreateWithCapacityCheck(ctx context.Context, booking *Booking, now time.Time) error
	ApplyAction(ctx context.Context, id uuid.UUID, action Action, now time.Time) (*TransitionResult, error)
	GetView(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListActive(ctx context.Context, now time.Time) ([]BookingView, error)
	List(ctx context.Context, query ListBookingsQuery) ([]BookingView, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithCapacityCheck(ctx context.Context, booking *Booking, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := sessions.LockInventory(tx, booking.SessionID)
		if err != nil {
			return apperror.FromDB(err, "session")
		}
		if inv.HasStarted(now) {
			return apperror.InvalidInput("session already started")
		}
		if err := inv.Reserve(booking.TicketCount); err != nil {
			return err
		}

		booking.Status = StatusActive
		booking.BookingTime = now
		booking.UpdatedAt = now
		return tx.Create(booking).Error
	})
}

// LockBooking reads a booking FOR UPDATE inside tx.
func LockBooking(tx *gorm.DB, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, apperror.FromDB(err, "booking")
	}
	return &booking, nil
}

func saveStatus(tx *gorm.DB, booking *Booking) error {
	return tx.Model(&Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"status":       booking.Status,
		"completed_at": booking.CompletedAt,
		"cancelled_at": booking.CancelledAt,
		"updated_at":   booking.UpdatedAt,
	}).Error
}

func (r *repository) ApplyAction(ctx context.Context, id uuid.UUID, action Action, now time.Time) (*TransitionResult, error) {
	var result *TransitionResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := LockBooking(tx, id)
		if err != nil {
			return err
		}

		from := booking.Status
		to, noop, err := Transition(from, action)
		if err != nil {
			return err
		}

		result = &TransitionResult{Booking: booking, From: from, Noop: noop}
		if noop {
			return nil
		}

		booking.apply(to, now)
		return saveStatus(tx, booking)
	})
	return result, err
}

// FulfillBooking completes an active booking as part of a sale. It must run
// inside tx after the session inventory has been locked.
func FulfillBooking(tx *gorm.DB, id, sessionID, customerID uuid.UUID, ticketCount int, now time.Time) (*Booking, error) {
	booking, err := LockBooking(tx, id)
	if err != nil {
		return nil, err
	}

	if booking.SessionID != sessionID || booking.CustomerID != customerID {
		return nil, apperror.InvalidInput("booking does not belong to this session and customer")
	}
	if booking.TicketCount != ticketCount {
		return nil, apperror.InvalidInput("booking holds %d tickets, not %d", booking.TicketCount, ticketCount)
	}
	// a completed booking has already been sold
	if booking.Status != StatusActive {
		return nil, apperror.InvalidTransition(string(booking.Status), "sell")
	}

	booking.apply(StatusCompleted, now)
	if err := saveStatus(tx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *repository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(`b.id, b.session_id, b.customer_id,
			cu.first_name || ' ' || cu.last_name AS customer_name,
			f.title AS film_title, c.name AS cinema_name,
			s.hall_number, s.start_time,
			b.ticket_count, b.status, b.booking_time, b.completed_at, b.cancelled_at`).
		Joins("JOIN sessions s ON s.id = b.session_id").
		Joins("JOIN films f ON f.id = s.film_id").
		Joins("JOIN cinemas c ON c.id = s.cinema_id").
		Joins("JOIN customers cu ON cu.id = b.customer_id")
}

func (r *repository) GetView(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	var view BookingView
	if err := r.viewQuery(ctx).Where("b.id = ?", id).Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *repository) ListActive(ctx context.Context, now time.Time) ([]BookingView, error) {
	var views []BookingView
	err := r.viewQuery(ctx).
		Where("b.status = ?", StatusActive).
		Where("s.start_time > ?", now).
		Order("s.start_time ASC, b.booking_time ASC").
		Scan(&views).Error
	return views, err
}

func (r *repository) List(ctx context.Context, query ListBookingsQuery) ([]BookingView, int64, error) {
	var total int64
	count := r.db.WithContext(ctx).Model(&Booking{})
	rows := r.viewQuery(ctx)

	if query.Status != "" {
		count = count.Where("status = ?", query.Status)
		rows = rows.Where("b.status = ?", query.Status)
	}
	if query.SessionID != "" {
		count = count.Where("session_id = ?", query.SessionID)
		rows = rows.Where("b.session_id = ?", query.SessionID)
	}

	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []BookingView
	err := rows.Order("b.booking_time DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Scan(&views).Error
	return views, total, err
}

