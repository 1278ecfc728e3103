package sessions

import (
	"context"
	"errors"
	"time"

	"cineops/internal/catalog"
	"cineops/internal/shared/apperror"
	"cineops/internal/shared/utils/response"
	"cineops/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartTimeLayout is accepted alongside RFC 3339 and is always read as UTC.
const StartTimeLayout = "2006-01-02 15:04:05"

type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, query catalog.ListQuery) (*response.Page, error)
	ListUpcomingSessions(ctx context.Context) ([]UpcomingSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// GetSessionCapacityAndPrice always reads the stored row.
	GetSessionCapacityAndPrice(ctx context.Context, id uuid.UUID) (*CapacityAndPrice, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
	log     *logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, catalogService catalog.Service) Service {
	return &service{
		repo:    repo,
		catalog: catalogService,
		log:     logger.GetDefault(),
		now:     time.Now,
	}
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	filmID, err := uuid.Parse(req.FilmID)
	if err != nil {
		return nil, apperror.InvalidInput("film_id must be a UUID")
	}
	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, apperror.InvalidInput("cinema_id must be a UUID")
	}

	price, err := decimal.NewFromString(req.TicketPrice)
	if err != nil || price.IsNegative() {
		return nil, apperror.InvalidInput("ticket_price must be a non-negative amount")
	}

	start, err := ParseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	if !start.After(s.now()) {
		return nil, apperror.InvalidInput("start_time must be in the future")
	}

	film, err := s.catalog.LookupFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if !film.IsBookingAvailable {
		return nil, apperror.InvalidInput("film %q is not available for booking", film.Title)
	}
	if !film.IsShowing(start) {
		return nil, apperror.InvalidInput("session date is outside the film's run")
	}

	cinema, err := s.catalog.LookupCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	if req.HallNumber > cinema.HallCount {
		return nil, apperror.InvalidInput("hall_number must be between 1 and %d", cinema.HallCount)
	}

	capacity := cinema.SeatsPerHall
	if req.Capacity != nil {
		if *req.Capacity > cinema.SeatsPerHall {
			return nil, apperror.InvalidInput("capacity must not exceed %d seats", cinema.SeatsPerHall)
		}
		capacity = *req.Capacity
	}

	session := &Session{
		FilmID:      filmID,
		CinemaID:    cinemaID,
		HallNumber:  req.HallNumber,
		StartTime:   start,
		TicketPrice: price.Round(2),
		Capacity:    capacity,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, apperror.FromDB(err, "session")
	}

	s.log.InfoWithContext(ctx, "Session Created", map[string]interface{}{
		"session_id": session.ID.String(),
		"film_id":    filmID.String(),
		"cinema_id":  cinemaID.String(),
		"capacity":   capacity,
	})
	return session, nil
}

// ParseStartTime accepts RFC 3339 or StartTimeLayout.
func ParseStartTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(StartTimeLayout, value, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.InvalidInput("start_time must be RFC 3339 or YYYY-MM-DD HH:MM:SS")
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "session")
	}
	return session, nil
}

func (s *service) ListSessions(ctx context.Context, query catalog.ListQuery) (*response.Page, error) {
	query.Normalize()

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apperror.FromDB(err, "session")
	}

	p := response.NewPage(items, query.Page, query.Limit, total)
	return &p, nil
}

func (s *service) ListUpcomingSessions(ctx context.Context) ([]UpcomingSession, error) {
	rows, err := s.repo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, apperror.FromDB(err, "session")
	}
	if rows == nil {
		rows = []UpcomingSession{}
	}
	return rows, nil
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrReferenced) {
		return apperror.Conflict("session has bookings or sales and cannot be deleted")
	}
	if err != nil {
		return apperror.FromDBDelete(err, "session")
	}
	return nil
}

func (s *service) GetSessionCapacityAndPrice(ctx context.Context, id uuid.UUID) (*CapacityAndPrice, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "session")
	}
	return &CapacityAndPrice{
		Capacity:    session.Capacity,
		TicketPrice: session.TicketPrice,
		StartTime:   session.StartTime,
	}, nil
}

func (s *service) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	inv, err := s.repo.Inventory(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "session")
	}
	return &AvailabilityResponse{
		SessionID: inv.SessionID,
		Capacity:  inv.Capacity,
		Reserved:  inv.Reserved,
		Remaining: inv.Remaining(),
		StartTime: inv.StartTime,
		Started:   inv.HasStarted(s.now()),
	}, nil
}
