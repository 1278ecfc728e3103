package sales

import (
	"context"
	"testing"
	"time"

	"cineops/internal/notifications"
	"cineops/internal/shared/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("00:05")
	require.NoError(t, err)
	assert.Equal(t, uint(0), h)
	assert.Equal(t, uint(5), m)

	for _, bad := range []string{"", "5", "24:00", "12:60", "ab:cd", "1:2:3"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestPreviousDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 2026-06-01 01:30 local
	now := time.Date(2026, 5, 31, 18, 30, 0, 0, time.UTC)

	from, to := PreviousDay(now, loc)

	assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, loc), to)
}

type statsService struct {
	Service
	from, to time.Time
	stats    *Stats
}

func (s *statsService) GetSalesStatsBetween(_ context.Context, from, to time.Time) (*Stats, error) {
	s.from, s.to = from, to
	return s.stats, nil
}

func TestReporterRunOncePublishesReport(t *testing.T) {
	svc := &statsService{stats: &Stats{TotalSales: 4, TotalRevenue: decimal.RequireFromString("88.5"), AverageTicketsPerSale: 2.25}}
	pub := &recordingPublisher{}

	reporter, err := NewReporter(svc, pub, config.SchedulerConfig{SalesReportAt: "00:05", Timezone: "UTC"})
	require.NoError(t, err)

	report, err := reporter.RunOnce(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "2026-05-31", report.Day)
	assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), svc.from)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), svc.to)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, notifications.EventSalesDailyReport, event.Type)
	assert.Equal(t, "2026-05-31", event.AggregateID)
	assert.Equal(t, "88.50", event.Payload["total_revenue"])
	assert.Equal(t, int64(4), event.Payload["total_sales"])
}

func TestNewReporterRejectsBadConfig(t *testing.T) {
	_, err := NewReporter(&statsService{}, nil, config.SchedulerConfig{SalesReportAt: "00:05", Timezone: "Mars/Olympus"})
	assert.Error(t, err)

	_, err = NewReporter(&statsService{}, nil, config.SchedulerConfig{SalesReportAt: "late", Timezone: "UTC"})
	assert.Error(t, err)
}
