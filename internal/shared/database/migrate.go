package database

import (
	"fmt"

	"cineops/internal/bookings"
	"cineops/internal/catalog"
	"cineops/internal/sales"
	"cineops/internal/sessions"
	"cineops/internal/users"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&catalog.Cinema{},
		&catalog.Film{},
		&catalog.Customer{},
		&users.Employee{},
		&sessions.Session{},
		&bookings.Booking{},
		&sales.TicketSale{},
	}
}

// Migrate creates or updates the schema and then adds the constraints
// AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return MigrateConstraints(db)
}
