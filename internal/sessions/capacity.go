package sessions

import (
	"time"

	"cineops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Inventory is the seat accounting of one session at a point in time.
type Inventory struct {
	SessionID   uuid.UUID       `json:"session_id"`
	Capacity    int             `json:"capacity"`
	Reserved    int             `json:"reserved"`
	StartTime   time.Time       `json:"start_time"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
}

// Remaining never goes below zero, even if capacity was oversold by hand.
func (inv *Inventory) Remaining() int {
	if r := inv.Capacity - inv.Reserved; r > 0 {
		return r
	}
	return 0
}

// Reserve claims n seats or fails with CapacityExceeded.
func (inv *Inventory) Reserve(n int) error {
	if n > inv.Remaining() {
		return apperror.CapacityExceeded(inv.Remaining())
	}
	inv.Reserved += n
	return nil
}

func (inv *Inventory) HasStarted(now time.Time) bool {
	return !inv.StartTime.After(now)
}

// reservedSQL counts seats held by live bookings plus walk-in sales. A sale
// that fulfils a booking is already counted through the booking.
const reservedSQL = `SELECT
	COALESCE((SELECT SUM(ticket_count) FROM bookings
		WHERE session_id = @id AND status IN ('active', 'completed')), 0)
	+ COALESCE((SELECT SUM(ticket_count) FROM ticket_sales
		WHERE session_id = @id AND booking_id IS NULL), 0)`

// LockInventory locks the session row FOR UPDATE and reads its reservations.
// It must run inside a transaction; the lock is held until the caller commits.
func LockInventory(tx *gorm.DB, sessionID uuid.UUID) (*Inventory, error) {
	return readInventory(tx.Clauses(clause.Locking{Strength: "UPDATE"}), tx, sessionID)
}

// ReadInventory is LockInventory without the lock, for reporting.
func ReadInventory(db *gorm.DB, sessionID uuid.UUID) (*Inventory, error) {
	return readInventory(db, db, sessionID)
}

func readInventory(rowQuery, sumQuery *gorm.DB, sessionID uuid.UUID) (*Inventory, error) {
	var session Session
	if err := rowQuery.Where("id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}

	var reserved int
	if err := sumQuery.Raw(reservedSQL, map[string]interface{}{"id": sessionID}).Scan(&reserved).Error; err != nil {
		return nil, err
	}

	return &Inventory{
		SessionID:   session.ID,
		Capacity:    session.Capacity,
		Reserved:    reserved,
		StartTime:   session.StartTime,
		TicketPrice: session.TicketPrice,
	}, nil
}
