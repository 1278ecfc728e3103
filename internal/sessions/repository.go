package sessions

import (
	"context"
	"errors"
	"time"

	"cineops/internal/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReferenced is returned by Delete when bookings or sales point at the session.
var ErrReferenced = errors.New("session is referenced by bookings or sales")

type Repository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	List(ctx context.Context, query catalog.ListQuery) ([]Session, int64, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]UpcomingSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Inventory(ctx context.Context, id uuid.UUID) (*Inventory, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) List(ctx context.Context, query catalog.ListQuery) ([]Session, int64, error) {
	var sessions []Session
	var total int64

	db := r.db.WithContext(ctx).Model(&Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("start_time DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]UpcomingSession, error) {
	var rows []UpcomingSession
	err := r.db.WithContext(ctx).
		Table("sessions AS s").
		Select(`s.id, s.film_id, f.title AS film_title, f.age_restriction,
			s.cinema_id, c.name AS cinema_name, s.hall_number, s.start_time,
			s.ticket_price, s.capacity`).
		Joins("JOIN films f ON f.id = s.film_id").
		Joins("JOIN cinemas c ON c.id = s.cinema_id").
		Where("s.start_time > ?", now).
		Order("s.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

// Delete removes the session unless anything references it. The row lock
// keeps a concurrent booking from slipping in between the check and the delete.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&session).Error; err != nil {
			return err
		}

		var referenced bool
		err := tx.Raw(`SELECT EXISTS (SELECT 1 FROM bookings WHERE session_id = @id)
			OR EXISTS (SELECT 1 FROM ticket_sales WHERE session_id = @id)`,
			map[string]interface{}{"id": id}).Scan(&referenced).Error
		if err != nil {
			return err
		}
		if referenced {
			return ErrReferenced
		}

		return tx.Delete(&session).Error
	})
}

func (r *repository) Inventory(ctx context.Context, id uuid.UUID) (*Inventory, error) {
	return ReadInventory(r.db.WithContext(ctx), id)
}
