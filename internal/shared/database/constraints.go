package database

import (
	"fmt"

	"gorm.io/gorm"
)

// addConstraint ignores the error raised when the constraint already exists,
// since ALTER TABLE ... ADD CONSTRAINT has no IF NOT EXISTS form.
func addConstraint(table, name, definition string) string {
	return fmt.Sprintf(`DO $$ BEGIN
	ALTER TABLE %s ADD CONSTRAINT %s %s;
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`, table, name, definition)
}

// Foreign keys are declared here rather than through gorm associations so
// the models stay free of back references. None cascade: a referenced
// session, film, cinema, customer or employee cannot be deleted.
var constraintStatements = []string{
	addConstraint("sessions", "fk_sessions_film",
		"FOREIGN KEY (film_id) REFERENCES films (id) ON DELETE RESTRICT"),
	addConstraint("sessions", "fk_sessions_cinema",
		"FOREIGN KEY (cinema_id) REFERENCES cinemas (id) ON DELETE RESTRICT"),
	addConstraint("employees", "fk_employees_cinema",
		"FOREIGN KEY (cinema_id) REFERENCES cinemas (id) ON DELETE SET NULL"),
	addConstraint("bookings", "fk_bookings_session",
		"FOREIGN KEY (session_id) REFERENCES sessions (id) ON DELETE RESTRICT"),
	addConstraint("bookings", "fk_bookings_customer",
		"FOREIGN KEY (customer_id) REFERENCES customers (id) ON DELETE RESTRICT"),
	addConstraint("bookings", "chk_bookings_status",
		"CHECK (status IN ('active', 'completed', 'cancelled'))"),
	addConstraint("ticket_sales", "fk_ticket_sales_session",
		"FOREIGN KEY (session_id) REFERENCES sessions (id) ON DELETE RESTRICT"),
	addConstraint("ticket_sales", "fk_ticket_sales_customer",
		"FOREIGN KEY (customer_id) REFERENCES customers (id) ON DELETE RESTRICT"),
	addConstraint("ticket_sales", "fk_ticket_sales_employee",
		"FOREIGN KEY (employee_id) REFERENCES employees (id) ON DELETE RESTRICT"),
	addConstraint("ticket_sales", "fk_ticket_sales_booking",
		"FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE RESTRICT"),
	addConstraint("films", "chk_films_run",
		"CHECK (end_date >= start_date)"),

	// capacity sums filter on (session_id, status)
	`CREATE INDEX IF NOT EXISTS idx_bookings_session_status ON bookings (session_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_sales_walk_in ON ticket_sales (session_id) WHERE booking_id IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_hall_start ON sessions (cinema_id, hall_number, start_time)`,
}

// MigrateConstraints adds foreign keys, checks and indexes. It is safe to
// run on every start.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
