package sales

import (
	"context"
	"database/sql"
	"time"

	"cineops/internal/bookings"
	"cineops/internal/sessions"
	"cineops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recorded is what RecordWithCapacityCheck read under the session lock.
type Recorded struct {
	TicketPrice      decimal.Decimal
	FulfilledBooking bool
}

type Repository interface {
	// RecordWithCapacityCheck inserts sale either as a walk-in that takes new
	// seats or as the fulfilment of sale.BookingID.
	RecordWithCapacityCheck(ctx context.Context, sale *TicketSale, now time.Time) (*Recorded, error)
	// Stats aggregates sales with sale_time in [from, to). Nil bounds are open.
	Stats(ctx context.Context, from, to *time.Time) (*Stats, error)
	GetView(ctx context.Context, id uuid.UUID) (*SaleView, error)
	List(ctx context.Context, query ListSalesQuery) ([]SaleView, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordWithCapacityCheck(ctx context.Context, sale *TicketSale, now time.Time) (*Recorded, error) {
	var recorded *Recorded
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := sessions.LockInventory(tx, sale.SessionID)
		if err != nil {
			return apperror.FromDB(err, "session")
		}

		if sale.BookingID != nil {
			if _, err := bookings.FulfillBooking(tx, *sale.BookingID, sale.SessionID, sale.CustomerID, sale.TicketCount, now); err != nil {
				return err
			}
		} else if err := inv.Reserve(sale.TicketCount); err != nil {
			return err
		}

		sale.SaleTime = now
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		recorded = &Recorded{
			TicketPrice:      inv.TicketPrice,
			FulfilledBooking: sale.BookingID != nil,
		}
		return nil
	})
	return recorded, err
}

const statsSelect = `COUNT(*) AS total_sales,
	COALESCE(SUM(t.ticket_count * s.ticket_price), 0) AS total_revenue,
	COALESCE(AVG(t.ticket_count), 0)::float8 AS average_tickets_per_sale`

func (r *repository) Stats(ctx context.Context, from, to *time.Time) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Table("ticket_sales AS t").
			Select(statsSelect).
			Joins("JOIN sessions s ON s.id = t.session_id")
		if from != nil {
			q = q.Where("t.sale_time >= ?", *from)
		}
		if to != nil {
			q = q.Where("t.sale_time < ?", *to)
		}
		return q.Scan(&stats).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("ticket_sales AS t").
		Select(`t.id, t.session_id, t.booking_id,
			f.title AS film_title, c.name AS cinema_name,
			s.hall_number, s.start_time,
			t.customer_id, cu.first_name || ' ' || cu.last_name AS customer_name,
			t.employee_id, e.first_name || ' ' || e.last_name AS employee_name,
			t.ticket_count, s.ticket_price,
			t.ticket_count * s.ticket_price AS total_price,
			t.sale_time`).
		Joins("JOIN sessions s ON s.id = t.session_id").
		Joins("JOIN films f ON f.id = s.film_id").
		Joins("JOIN cinemas c ON c.id = s.cinema_id").
		Joins("JOIN customers cu ON cu.id = t.customer_id").
		Joins("JOIN employees e ON e.id = t.employee_id")
}

func (r *repository) GetView(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	var view SaleView
	if err := r.viewQuery(ctx).Where("t.id = ?", id).Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *repository) List(ctx context.Context, query ListSalesQuery) ([]SaleView, int64, error) {
	var total int64
	count := r.db.WithContext(ctx).Model(&TicketSale{})
	rows := r.viewQuery(ctx)

	if query.SessionID != "" {
		count = count.Where("session_id = ?", query.SessionID)
		rows = rows.Where("t.session_id = ?", query.SessionID)
	}

	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []SaleView
	err := rows.Order("t.sale_time DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Scan(&views).Error
	return views, total, err
}
