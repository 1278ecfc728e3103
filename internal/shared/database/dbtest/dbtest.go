// Package dbtest opens the integration-test database. Tests that use it are
// skipped unless CINEOPS_TEST_DATABASE_DSN is set.
package dbtest

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"cineops/internal/catalog"
	"cineops/internal/sessions"
	"cineops/internal/shared/config"
	"cineops/internal/shared/database"
	"cineops/internal/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DSNEnv = "CINEOPS_TEST_DATABASE_DSN"

// migrationLockKey serializes migrations when several test binaries start
// against the same database.
const migrationLockKey = 7316001

var (
	once    sync.Once
	shared  *gorm.DB
	openErr error
)

// Open returns a migrated handle shared by every test in the binary. Tests
// never truncate; each builds its own fixtures and asserts on them only.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", DSNEnv)
	}

	once.Do(func() { shared, openErr = open(dsn) })
	require.NoError(t, openErr)
	return shared
}

func open(dsn string) (*gorm.DB, error) {
	cfg := &config.Config{
		GinMode: "test",
		Database: config.DatabaseConfig{
			DSN:             dsn,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
			SlowQuery:       time.Second,
		},
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	err = db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrationLockKey).Error; err != nil {
			return err
		}
		defer conn.Exec("SELECT pg_advisory_unlock(?)", migrationLockKey)
		return database.Migrate(conn)
	})
	return db, err
}

// Fixture is one cinema, film, customer and employee, all freshly created.
type Fixture struct {
	Cinema   catalog.Cinema
	Film     catalog.Film
	Customer catalog.Customer
	Employee users.Employee

	sessions []uuid.UUID
}

func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()
	suffix := uuid.NewString()[:8]
	today := time.Now().UTC().Truncate(24 * time.Hour)

	f := &Fixture{
		Cinema: catalog.Cinema{
			Name:         "Test Cinema " + suffix,
			Slug:         "test-cinema-" + suffix,
			Address:      "1 Test Street",
			HallCount:    4,
			SeatsPerHall: 100,
			OpeningTime:  "09:00:00",
			ClosingTime:  "23:30:00",
		},
		Film: catalog.Film{
			Title:              "Test Film " + suffix,
			Slug:               "test-film-" + suffix,
			IsBookingAvailable: true,
			StartDate:          today.AddDate(0, 0, -7),
			EndDate:            today.AddDate(0, 0, 30),
		},
		Customer: catalog.Customer{FirstName: "Test", LastName: "Customer " + suffix},
	}
	require.NoError(t, db.Create(&f.Cinema).Error)
	require.NoError(t, db.Create(&f.Film).Error)
	require.NoError(t, db.Create(&f.Customer).Error)

	f.Employee = users.Employee{
		FirstName:    "Test",
		LastName:     "Cashier " + suffix,
		Email:        "cashier-" + suffix + "@cineops.test",
		PasswordHash: "not-a-real-hash",
		Role:         users.RoleCashier,
		CinemaID:     &f.Cinema.ID,
	}
	require.NoError(t, db.Create(&f.Employee).Error)
	return f
}

// Session inserts a session directly, so tests can place it in the past.
func (f *Fixture) Session(t testing.TB, db *gorm.DB, capacity int, price string, start time.Time) *sessions.Session {
	t.Helper()
	s := &sessions.Session{
		FilmID:      f.Film.ID,
		CinemaID:    f.Cinema.ID,
		HallNumber:  1,
		StartTime:   start.UTC(),
		TicketPrice: decimal.RequireFromString(price),
		Capacity:    capacity,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

// UpcomingSession starts a day from now, offset to keep halls distinct.
func (f *Fixture) UpcomingSession(t testing.TB, db *gorm.DB, capacity int, price string) *sessions.Session {
	t.Helper()
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second).Add(time.Duration(len(f.sessions)) * time.Hour)
	s := f.Session(t, db, capacity, price, start)
	f.sessions = append(f.sessions, s.ID)
	return s
}

// Inventory reads the current seat accounting of a session.
func Inventory(t testing.TB, db *gorm.DB, sessionID uuid.UUID) *sessions.Inventory {
	t.Helper()
	inv, err := sessions.ReadInventory(db.WithContext(context.Background()), sessionID)
	require.NoError(t, err)
	return inv
}
