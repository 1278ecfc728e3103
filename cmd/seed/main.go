package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cineops/internal/auth"
	"cineops/internal/bookings"
	"cineops/internal/catalog"
	"cineops/internal/notifications"
	"cineops/internal/sales"
	"cineops/internal/sessions"
	"cineops/internal/shared/config"
	"cineops/internal/shared/database"
	"cineops/internal/users"
	"cineops/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Seeder struct {
	db  *database.DB
	now time.Time
}

func main() {
	fmt.Println("🌱 Starting CineOps Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, now: time.Now().UTC()}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Log in as admin@cineops.local / qwerty123")
}

// CleanDatabase truncates all tables, dependents first.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"ticket_sales",
		"bookings",
		"sessions",
		"employees",
		"customers",
		"films",
		"cinemas",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	cinemas, err := s.SeedCinemas()
	if err != nil {
		return fmt.Errorf("failed to seed cinemas: %w", err)
	}

	employees, err := s.SeedEmployees(cinemas[0].ID)
	if err != nil {
		return fmt.Errorf("failed to seed employees: %w", err)
	}

	films, err := s.SeedFilms()
	if err != nil {
		return fmt.Errorf("failed to seed films: %w", err)
	}

	customers, err := s.SeedCustomers()
	if err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	screenings, err := s.SeedSessions(cinemas, films)
	if err != nil {
		return fmt.Errorf("failed to seed sessions: %w", err)
	}

	if err := s.SeedBookingsAndSales(ctx, screenings, customers, employees["cashier"]); err != nil {
		return fmt.Errorf("failed to seed bookings and sales: %w", err)
	}

	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

func (s *Seeder) SeedCinemas() ([]catalog.Cinema, error) {
	fmt.Println("  🏢 Seeding cinemas...")

	data := []struct {
		name, address string
		halls, seats  int
	}{
		{"Riverside Picturehouse", "12 Quay Street", 4, 120},
		{"Northgate Cinema", "88 Northgate Road", 2, 60},
	}

	cinemas := make([]catalog.Cinema, 0, len(data))
	for _, d := range data {
		cinema := catalog.Cinema{
			Name:          d.name,
			Slug:          slug.Make(d.name),
			Address:       d.address,
			EmployeeCount: 12,
			HallCount:     d.halls,
			SeatsPerHall:  d.seats,
			OpeningTime:   "09:00:00",
			ClosingTime:   "23:30:00",
		}
		if err := s.db.PostgreSQL.Create(&cinema).Error; err != nil {
			return nil, fmt.Errorf("failed to create cinema %s: %w", d.name, err)
		}
		cinemas = append(cinemas, cinema)
		fmt.Printf("    ✅ Created cinema: %s (%d halls x %d seats)\n", cinema.Name, cinema.HallCount, cinema.SeatsPerHall)
	}
	return cinemas, nil
}

// SeedEmployees creates one admin and one cashier, both with password "qwerty123".
func (s *Seeder) SeedEmployees(cinemaID uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding employees...")

	hashed, err := bcrypt.GenerateFromPassword([]byte("qwerty123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	data := []struct {
		key, firstName, lastName, email string
		role                            users.Role
	}{
		{"admin", "Ada", "Manager", "admin@cineops.local", users.RoleAdmin},
		{"cashier", "Ben", "Till", "cashier@cineops.local", users.RoleCashier},
	}

	ids := make(map[string]uuid.UUID, len(data))
	for _, d := range data {
		employee := users.Employee{
			FirstName:    d.firstName,
			LastName:     d.lastName,
			Email:        d.email,
			PasswordHash: string(hashed),
			Role:         d.role,
			CinemaID:     &cinemaID,
		}
		if err := s.db.PostgreSQL.Create(&employee).Error; err != nil {
			return nil, fmt.Errorf("failed to create employee %s: %w", d.email, err)
		}
		ids[d.key] = employee.ID
		fmt.Printf("    ✅ Created employee: %s (%s)\n", employee.Email, employee.Role)
	}
	return ids, nil
}

func (s *Seeder) SeedFilms() ([]catalog.Film, error) {
	fmt.Println("  🎬 Seeding films...")

	today := s.now.Truncate(24 * time.Hour)
	data := []struct {
		title string
		age   int
		runs  int // days from today
	}{
		{"The Long Harbour", 12, 28},
		{"Paper Comets", 0, 21},
		{"Midnight Ledger", 16, 14},
	}

	films := make([]catalog.Film, 0, len(data))
	for _, d := range data {
		film := catalog.Film{
			Title:              d.title,
			Slug:               slug.Make(d.title),
			AgeRestriction:     d.age,
			IsBookingAvailable: true,
			StartDate:          today.AddDate(0, 0, -3),
			EndDate:            today.AddDate(0, 0, d.runs),
		}
		if err := s.db.PostgreSQL.Create(&film).Error; err != nil {
			return nil, fmt.Errorf("failed to create film %s: %w", d.title, err)
		}
		films = append(films, film)
		fmt.Printf("    ✅ Created film: %s (%d+)\n", film.Title, film.AgeRestriction)
	}
	return films, nil
}

func (s *Seeder) SeedCustomers() ([]catalog.Customer, error) {
	fmt.Println("  🙋 Seeding customers...")

	names := [][2]string{{"Carla", "Diaz"}, {"Dev", "Patel"}, {"Erin", "Walsh"}, {"Femi", "Ade"}}

	customers := make([]catalog.Customer, 0, len(names))
	for _, n := range names {
		customer := catalog.Customer{FirstName: n[0], LastName: n[1]}
		if err := s.db.PostgreSQL.Create(&customer).Error; err != nil {
			return nil, fmt.Errorf("failed to create customer %s %s: %w", n[0], n[1], err)
		}
		customers = append(customers, customer)
	}
	fmt.Printf("    ✅ Created %d customers\n", len(customers))
	return customers, nil
}

// SeedSessions schedules each film on each of the next three evenings,
// staggered by an hour per film.
func (s *Seeder) SeedSessions(cinemas []catalog.Cinema, films []catalog.Film) ([]sessions.Session, error) {
	fmt.Println("  🕖 Seeding sessions...")

	prices := []string{"9.50", "12.50", "14.00"}
	evening := s.now.Truncate(24 * time.Hour).Add(19 * time.Hour)

	var out []sessions.Session
	for i, film := range films {
		for day := 1; day <= 3; day++ {
			cinema := cinemas[(i+day)%len(cinemas)]
			session := sessions.Session{
				FilmID:      film.ID,
				CinemaID:    cinema.ID,
				HallNumber:  i%cinema.HallCount + 1,
				StartTime:   evening.AddDate(0, 0, day).Add(time.Duration(i) * time.Hour),
				TicketPrice: decimal.RequireFromString(prices[i%len(prices)]),
				Capacity:    cinema.SeatsPerHall,
			}
			if err := s.db.PostgreSQL.Create(&session).Error; err != nil {
				return nil, fmt.Errorf("failed to create session for %s: %w", film.Title, err)
			}
			out = append(out, session)
		}
	}
	fmt.Printf("    ✅ Created %d sessions\n", len(out))
	return out, nil
}

// SeedBookingsAndSales goes through the services so capacity is enforced
// the same way as in the API.
func (s *Seeder) SeedBookingsAndSales(ctx context.Context, screenings []sessions.Session, customers []catalog.Customer, cashierID uuid.UUID) error {
	fmt.Println("  🎟️  Seeding bookings and sales...")

	pg := s.db.PostgreSQL
	publisher := notifications.NewLogPublisher(logger.GetDefault())
	catalogRepo := catalog.NewRepository(pg)
	engine := bookings.NewService(bookings.NewRepository(pg), catalogRepo, publisher)
	ledger := sales.NewService(sales.NewRepository(pg), catalogRepo, auth.NewRepository(pg), publisher)

	var booked, sold int
	for i, screening := range screenings {
		customer := customers[i%len(customers)]

		booking, err := engine.CreateBooking(ctx, screening.ID, customer.ID, 2)
		if err != nil {
			return err
		}
		booked++

		// every other booking is collected at the box office
		if i%2 == 0 {
			if _, err := ledger.RecordSale(ctx, sales.SaleInput{
				SessionID:   screening.ID,
				CustomerID:  customer.ID,
				EmployeeID:  cashierID,
				TicketCount: booking.TicketCount,
				BookingID:   &booking.ID,
			}); err != nil {
				return err
			}
			sold++
		}

		// and one walk-in per session
		walkIn := customers[(i+1)%len(customers)]
		if _, err := ledger.RecordSale(ctx, sales.SaleInput{
			SessionID:   screening.ID,
			CustomerID:  walkIn.ID,
			EmployeeID:  cashierID,
			TicketCount: 1,
		}); err != nil {
			return err
		}
		sold++
	}

	fmt.Printf("    ✅ Created %d bookings and %d sales\n", booked, sold)
	return nil
}
