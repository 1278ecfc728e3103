package sales

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"cineops/internal/notifications"
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

func (m *mockRepository) RecordWithCapacityCheck(ctx context.Context, sale *TicketSale, now time.Time) (*Recorded, error) {
	args := m.Called(ctx, sale, now)
	if r, ok := args.Get(0).(*Recorded); ok {
		sale.ID = uuid.New()
		sale.SaleTime = now
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Stats(ctx context.Context, from, to *time.Time) (*Stats, error) {
	args := m.Called(ctx, from, to)
	if s, ok := args.Get(0).(*Stats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetView(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*SaleView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, query ListSalesQuery) ([]SaleView, int64, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]SaleView)
	return views, args.Get(1).(int64), args.Error(2)
}

type idSet map[uuid.UUID]bool

func (s idSet) CustomerExists(_ context.Context, id uuid.UUID) (bool, error) { return s[id], nil }
func (s idSet) EmployeeExists(_ context.Context, id uuid.UUID) (bool, error) { return s[id], nil }

type recordingPublisher struct {
	events []*notifications.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e *notifications.DomainEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(known idSet) (*service, *mockRepository, *recordingPublisher) {
	repo := new(mockRepository)
	pub := &recordingPublisher{}
	svc := NewService(repo, known, known, pub).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, pub
}

func TestRecordWalkInSale(t *testing.T) {
	customer, employee, session := uuid.New(), uuid.New(), uuid.New()
	svc, repo, pub := newTestService(idSet{customer: true, employee: true})
	ctx := context.Background()

	repo.On("RecordWithCapacityCheck", ctx, mock.MatchedBy(func(s *TicketSale) bool {
		return s.SessionID == session && s.BookingID == nil && s.TicketCount == 3
	}), fixedNow).Return(&Recorded{TicketPrice: decimal.RequireFromString("12.50")}, nil)

	result, err := svc.RecordSale(ctx, SaleInput{
		SessionID: session, CustomerID: customer, EmployeeID: employee, TicketCount: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "37.50", result.TotalPrice.StringFixed(2))
	assert.False(t, result.FulfilledBooking)
	assert.Equal(t, fixedNow, result.Sale.SaleTime)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notifications.EventSaleRecorded, pub.events[0].Type)
	assert.Equal(t, "37.50", pub.events[0].Payload["total_price"])
	assert.NotContains(t, pub.events[0].Payload, "booking_id")
}

func TestRecordSaleFulfillingBooking(t *testing.T) {
	customer, employee := uuid.New(), uuid.New()
	booking := uuid.New()
	svc, repo, pub := newTestService(idSet{customer: true, employee: true})

	repo.On("RecordWithCapacityCheck", mock.Anything, mock.MatchedBy(func(s *TicketSale) bool {
		return s.BookingID != nil && *s.BookingID == booking
	}), fixedNow).Return(&Recorded{TicketPrice: decimal.NewFromInt(10), FulfilledBooking: true}, nil)

	result, err := svc.RecordSale(context.Background(), SaleInput{
		SessionID: uuid.New(), CustomerID: customer, EmployeeID: employee, TicketCount: 2, BookingID: &booking,
	})

	require.NoError(t, err)
	assert.True(t, result.FulfilledBooking)
	assert.Equal(t, booking.String(), pub.events[0].Payload["booking_id"])
}

func TestRecordSaleValidation(t *testing.T) {
	customer, employee := uuid.New(), uuid.New()

	tests := []struct {
		name string
		in   SaleInput
		kind apperror.Kind
	}{
		{"zero tickets", SaleInput{CustomerID: customer, EmployeeID: employee}, apperror.KindInvalidInput},
		{"negative tickets", SaleInput{CustomerID: customer, EmployeeID: employee, TicketCount: -1}, apperror.KindInvalidInput},
		{"unknown customer", SaleInput{CustomerID: uuid.New(), EmployeeID: employee, TicketCount: 1}, apperror.KindNotFound},
		{"unknown employee", SaleInput{CustomerID: customer, EmployeeID: uuid.New(), TicketCount: 1}, apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := newTestService(idSet{customer: true, employee: true})

			_, err := svc.RecordSale(context.Background(), tt.in)

			assert.Equal(t, tt.kind, apperror.KindOf(err))
			repo.AssertNotCalled(t, "RecordWithCapacityCheck", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, pub.events)
		})
	}
}

func TestRecordSaleCapacityExceeded(t *testing.T) {
	customer, employee := uuid.New(), uuid.New()
	svc, repo, pub := newTestService(idSet{customer: true, employee: true})

	repo.On("RecordWithCapacityCheck", mock.Anything, mock.Anything, fixedNow).
		Return(nil, apperror.CapacityExceeded(1))

	_, err := svc.RecordSale(context.Background(), SaleInput{
		SessionID: uuid.New(), CustomerID: customer, EmployeeID: employee, TicketCount: 4,
	})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindCapacityExceeded, appErr.Kind)
	assert.Equal(t, 1, appErr.Remaining)
	assert.Empty(t, pub.events)
}

func TestRecordSaleUnknownSession(t *testing.T) {
	customer, employee := uuid.New(), uuid.New()
	svc, repo, _ := newTestService(idSet{customer: true, employee: true})

	repo.On("RecordWithCapacityCheck", mock.Anything, mock.Anything, fixedNow).
		Return(nil, apperror.NotFound("session"))

	_, err := svc.RecordSale(context.Background(), SaleInput{
		SessionID: uuid.New(), CustomerID: customer, EmployeeID: employee, TicketCount: 1,
	})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "session not found", err.Error())
}

func TestGetSalesStatsEmptyLedger(t *testing.T) {
	svc, repo, _ := newTestService(idSet{})
	var noBound *time.Time

	repo.On("Stats", mock.Anything, noBound, noBound).Return(&Stats{TotalRevenue: decimal.Zero}, nil)

	stats, err := svc.GetSalesStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalSales)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Zero(t, stats.AverageTicketsPerSale)
}

func TestGetSalesStatsBetweenRejectsEmptyRange(t *testing.T) {
	svc, repo, _ := newTestService(idSet{})

	_, err := svc.GetSalesStatsBetween(context.Background(), fixedNow, fixedNow)

	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	repo.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSaleNotFound(t *testing.T) {
	svc, repo, _ := newTestService(idSet{})
	id := uuid.New()

	repo.On("GetView", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetSale(context.Background(), id)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListSalesNormalizesPaging(t *testing.T) {
	svc, repo, _ := newTestService(idSet{})

	repo.On("List", mock.Anything, mock.MatchedBy(func(q ListSalesQuery) bool {
		return q.Page == 1 && q.Limit == 20
	})).Return(nil, int64(0), nil)

	page, err := svc.ListSales(context.Background(), ListSalesQuery{})

	require.NoError(t, err)
	assert.Equal(t, []SaleView{}, page.Items)
}

func TestGetSaleReceiptQR(t *testing.T) {
	svc, repo, _ := newTestService(idSet{})
	view := &SaleView{ID: uuid.New(), SessionID: uuid.New(), TicketCount: 2, TotalPrice: decimal.RequireFromString("19")}

	repo.On("GetView", mock.Anything, view.ID).Return(view, nil)

	data, err := svc.GetSaleReceiptQR(context.Background(), view.ID)

	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, receiptSize, img.Bounds().Dx())
	assert.Contains(t, ReceiptContent(view), "total=19.00")
}
