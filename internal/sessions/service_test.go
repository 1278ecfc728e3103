package sessions

import (
	"context"
	"testing"
	"time"

	"cineops/internal/catalog"
	"cineops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, session *Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, query catalog.ListQuery) ([]Session, int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]Session), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) ListUpcoming(ctx context.Context, now time.Time) ([]UpcomingSession, error) {
	args := m.Called(ctx, now)
	rows, _ := args.Get(0).([]UpcomingSession)
	return rows, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) Inventory(ctx context.Context, id uuid.UUID) (*Inventory, error) {
	args := m.Called(ctx, id)
	if inv, ok := args.Get(0).(*Inventory); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubCatalog serves fixed films and cinemas.
type stubCatalog struct {
	catalog.Service
	films   map[uuid.UUID]*catalog.Film
	cinemas map[uuid.UUID]*catalog.Cinema
}

func (s *stubCatalog) LookupFilm(_ context.Context, id uuid.UUID) (*catalog.Film, error) {
	if f, ok := s.films[id]; ok {
		return f, nil
	}
	return nil, apperror.NotFound("film")
}

func (s *stubCatalog) LookupCinema(_ context.Context, id uuid.UUID) (*catalog.Cinema, error) {
	if c, ok := s.cinemas[id]; ok {
		return c, nil
	}
	return nil, apperror.NotFound("cinema")
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo   *mockRepository
	svc    *service
	film   *catalog.Film
	cinema *catalog.Cinema
}

func newFixture() *fixture {
	film := &catalog.Film{
		ID:                 uuid.New(),
		Title:              "Arrival",
		IsBookingAvailable: true,
		StartDate:          time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	cinema := &catalog.Cinema{ID: uuid.New(), Name: "Odeon", HallCount: 3, SeatsPerHall: 100}

	repo := new(mockRepository)
	svc := NewService(repo, &stubCatalog{
		films:   map[uuid.UUID]*catalog.Film{film.ID: film},
		cinemas: map[uuid.UUID]*catalog.Cinema{cinema.ID: cinema},
	}).(*service)
	svc.now = func() time.Time { return fixedNow }

	return &fixture{repo: repo, svc: svc, film: film, cinema: cinema}
}

func (f *fixture) request() CreateSessionRequest {
	return CreateSessionRequest{
		FilmID:      f.film.ID.String(),
		CinemaID:    f.cinema.ID.String(),
		HallNumber:  2,
		StartTime:   "2026-06-02 19:00:00",
		TicketPrice: "12.50",
	}
}

func TestCreateSessionDefaultsCapacityToHall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("Create", ctx, mock.AnythingOfType("*sessions.Session")).Return(nil)

	session, err := f.svc.CreateSession(ctx, f.request())

	require.NoError(t, err)
	assert.Equal(t, 100, session.Capacity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(session.TicketPrice))
	assert.Equal(t, time.Date(2026, 6, 2, 19, 0, 0, 0, time.UTC), session.StartTime)
}

func TestCreateSessionCapacityOverride(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("Create", ctx, mock.AnythingOfType("*sessions.Session")).Return(nil)

	req := f.request()
	small := 40
	req.Capacity = &small
	session, err := f.svc.CreateSession(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 40, session.Capacity)

	big := 101
	req.Capacity = &big
	_, err = f.svc.CreateSession(ctx, req)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}

func TestCreateSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, r *CreateSessionRequest)
		kind   apperror.Kind
	}{
		{"unknown film", func(_ *fixture, r *CreateSessionRequest) { r.FilmID = uuid.NewString() }, apperror.KindNotFound},
		{"unknown cinema", func(_ *fixture, r *CreateSessionRequest) { r.CinemaID = uuid.NewString() }, apperror.KindNotFound},
		{"hall out of range", func(_ *fixture, r *CreateSessionRequest) { r.HallNumber = 4 }, apperror.KindInvalidInput},
		{"negative price", func(_ *fixture, r *CreateSessionRequest) { r.TicketPrice = "-1" }, apperror.KindInvalidInput},
		{"bad price", func(_ *fixture, r *CreateSessionRequest) { r.TicketPrice = "cheap" }, apperror.KindInvalidInput},
		{"past start", func(_ *fixture, r *CreateSessionRequest) { r.StartTime = "2026-05-31 19:00:00" }, apperror.KindInvalidInput},
		{"outside run", func(_ *fixture, r *CreateSessionRequest) { r.StartTime = "2026-07-02 19:00:00" }, apperror.KindInvalidInput},
		{"booking closed", func(f *fixture, _ *CreateSessionRequest) { f.film.IsBookingAvailable = false }, apperror.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := f.request()
			tt.mutate(f, &req)

			_, err := f.svc.CreateSession(context.Background(), req)

			assert.Equal(t, tt.kind, apperror.KindOf(err))
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteReferencedSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()
	f.repo.On("Delete", ctx, id).Return(ErrReferenced)

	err := f.svc.DeleteSession(ctx, id)

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestDeleteMissingSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()
	f.repo.On("Delete", ctx, id).Return(gorm.ErrRecordNotFound)

	err := f.svc.DeleteSession(ctx, id)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetAvailability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()
	f.repo.On("Inventory", ctx, id).Return(&Inventory{
		SessionID: id,
		Capacity:  100,
		Reserved:  37,
		StartTime: fixedNow.Add(time.Hour),
	}, nil)

	got, err := f.svc.GetAvailability(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, 63, got.Remaining)
	assert.False(t, got.Started)
}

func TestGetSessionCapacityAndPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()
	f.repo.On("Get", ctx, id).Return(&Session{ID: id, Capacity: 80, TicketPrice: decimal.NewFromInt(9)}, nil)
	missing := uuid.New()
	f.repo.On("Get", ctx, missing).Return(nil, gorm.ErrRecordNotFound)

	got, err := f.svc.GetSessionCapacityAndPrice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 80, got.Capacity)
	assert.Equal(t, "9", got.TicketPrice.String())

	_, err = f.svc.GetSessionCapacityAndPrice(ctx, missing)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListUpcomingNeverNil(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("ListUpcoming", ctx, fixedNow).Return(nil, nil)

	rows, err := f.svc.ListUpcomingSessions(ctx)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
